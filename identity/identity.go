// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity resolves who is acting on a request.
//
// A participant is either an authenticated member, keyed by their stable
// member id, or an anonymous participant keyed by the name they typed.
// Self-declared names are a weak identity: anyone can type someone else's
// name, and two different people with the same name share one key.
package identity

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/danielhkuo/volunteer-portal/models"
)

// Key prefixes keep member ids and typed names in separate key spaces.
const (
	memberPrefix = "member:"
	namePrefix   = "name:"
)

type Identity struct {
	Key           string
	DisplayName   string
	Authenticated bool
	Role          string
}

// Member returns the identity of an authenticated member.
func Member(id, name, role string) Identity {
	return Identity{
		Key:           memberPrefix + id,
		DisplayName:   name,
		Authenticated: true,
		Role:          role,
	}
}

// SelfDeclared returns the identity of an anonymous participant. The key is
// built from the trimmed, case-folded name, so "Alice " and "alice" are the
// same person.
func SelfDeclared(name string) Identity {
	trimmed := strings.TrimSpace(name)
	id := Identity{DisplayName: trimmed}
	if folded := NormalizeName(trimmed); folded != "" {
		id.Key = namePrefix + folded
	}
	return id
}

// NormalizeName folds case and trims surrounding whitespace.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Valid reports whether the identity can be used as a dedup key.
func (i Identity) Valid() bool {
	return i.Key != ""
}

// IsAdmin reports whether the identity holds the administrative role.
func (i Identity) IsAdmin() bool {
	return i.Authenticated && i.Role == models.RoleAdmin
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by the session middleware.
// ok is false for anonymous requests.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.Authenticated
}

// Resolve picks the acting identity: the authenticated member if there is
// one, otherwise the self-declared name.
func Resolve(ctx context.Context, declaredName string) Identity {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return SelfDeclared(declaredName)
}
