// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential checks, session tokens, and key derivation.

# Passwords

Member passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Session Tokens

Login issues an HS256 JWT carrying the member id, display name, and role:

	token, err := auth.MakeToken(member.ID, member.Name, member.Role, secret)
	claims, err := auth.ParseToken(token, secret)

Tokens expire after TokenTTL. ParseToken rejects any non-HMAC algorithm.

# Document Keys

Ballots and attendance records use a deterministic id so a second
submission from the same identity collides on the primary key:

	id, err := auth.DocumentKey(meetingID, identityKey)

# IP Hashing

For privacy-preserving auditing of ballots:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
