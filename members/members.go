// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package members keeps the operator-provisioned member directory and checks
// login credentials against it.
package members

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/volunteer-portal/auth"
	"github.com/danielhkuo/volunteer-portal/docstore"
	"github.com/danielhkuo/volunteer-portal/models"
)

const Collection = "members"

var (
	ErrNotFound           = errors.New("member not found")
	ErrMobileTaken        = errors.New("mobile number already registered")
	ErrInvalidMember      = errors.New("invalid member")
	ErrInvalidCredentials = errors.New("invalid mobile or password")
	ErrNotApproved        = errors.New("account not approved")
	ErrBlocked            = errors.New("account blocked")
)

type Directory struct {
	store *docstore.Store
	now   func() time.Time
}

func NewDirectory(store *docstore.Store) *Directory {
	return &Directory{store: store, now: time.Now}
}

// ByMobile finds the member registered under a mobile number.
func (d *Directory) ByMobile(ctx context.Context, mobile string) (models.Member, error) {
	docs, err := d.store.Query(ctx, Collection, docstore.Eq("mobile", strings.TrimSpace(mobile)))
	if err != nil {
		return models.Member{}, fmt.Errorf("failed to look up member: %w", err)
	}
	if len(docs) == 0 {
		return models.Member{}, ErrNotFound
	}

	var m models.Member
	if err := docs[0].Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

func (d *Directory) ByID(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	err := d.store.Get(ctx, Collection, id, &m)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("failed to load member: %w", err)
	}
	return m, nil
}

// Create stores a new member with a bcrypt hash of password. The mobile
// number must not already be registered.
func (d *Directory) Create(ctx context.Context, m models.Member, password string) (models.Member, error) {
	m.Mobile = strings.TrimSpace(m.Mobile)
	m.Name = strings.TrimSpace(m.Name)
	if m.Mobile == "" || m.Name == "" || password == "" {
		return models.Member{}, fmt.Errorf("%w: mobile, name and password are required", ErrInvalidMember)
	}
	if m.Role != models.RoleAdmin && m.Role != models.RoleMember {
		return models.Member{}, fmt.Errorf("%w: role %q", ErrInvalidMember, m.Role)
	}

	if _, err := d.ByMobile(ctx, m.Mobile); err == nil {
		return models.Member{}, ErrMobileTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.Member{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Member{}, err
	}
	m.ID = uuid.NewString()
	m.PasswordHash = hash
	m.CreatedAt = d.now().UTC()

	if err := d.store.Create(ctx, Collection, m.ID, m); err != nil {
		return models.Member{}, fmt.Errorf("failed to save member: %w", err)
	}
	return m, nil
}

// Authenticate checks a login attempt. Unknown numbers and wrong passwords
// both return ErrInvalidCredentials.
func (d *Directory) Authenticate(ctx context.Context, mobile, password string) (models.Member, error) {
	m, err := d.ByMobile(ctx, mobile)
	if errors.Is(err, ErrNotFound) {
		return models.Member{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Member{}, err
	}

	if !auth.CheckPassword(m.PasswordHash, password) {
		return models.Member{}, ErrInvalidCredentials
	}
	if m.IsBlocked {
		return models.Member{}, ErrBlocked
	}
	if !m.IsApproved {
		return models.Member{}, ErrNotApproved
	}
	return m, nil
}

// EnsureAdmin provisions the bootstrap administrator if no member holds
// its mobile number yet. An existing member is left untouched.
func (d *Directory) EnsureAdmin(ctx context.Context, mobile, password, name string) (models.Member, bool, error) {
	existing, err := d.ByMobile(ctx, mobile)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			slog.Warn("bootstrap admin mobile belongs to a non-admin member", "member_id", existing.ID)
		}
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Member{}, false, err
	}

	m, err := d.Create(ctx, models.Member{
		Mobile:     mobile,
		Name:       name,
		Role:       models.RoleAdmin,
		IsApproved: true,
	}, password)
	if err != nil {
		return models.Member{}, false, err
	}

	slog.Info("bootstrap admin created", "member_id", m.ID, "name", m.Name)
	return m, true, nil
}
