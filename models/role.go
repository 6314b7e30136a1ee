// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Role is the closed set of authorization roles an account can hold.
//
// The canonical serialised form is the upper-case name returned by
// [Role.String]. The same form is used in JWT claims, in the "role" database
// column, and in API responses.
type Role string

const (
	RoleAnonymous     Role = "ANONYMOUS"
	RoleAuthenticated Role = "AUTHENTICATED"
	RoleManager       Role = "MANAGER"
	RoleAdmin         Role = "ADMIN"
)

// ErrUnknownRole is returned when a value cannot be mapped onto a [Role].
var ErrUnknownRole = errors.New("unknown role")

// knownRoles is ordered from the least to the most privileged role.
var knownRoles = []Role{RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin}

// ParseRole maps s onto a [Role], ignoring case and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range knownRoles {
		if r == candidate {
			return r, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// NormalizeRole accepts either a [Role] or a plain string and returns the
// canonical upper-case role.
func NormalizeRole(v any) (Role, error) {
	switch value := v.(type) {
	case Role:
		return ParseRole(string(value))
	case *Role:
		if value == nil {
			return "", ErrUnknownRole
		}
		return ParseRole(string(*value))
	case string:
		return ParseRole(value)
	case fmt.Stringer:
		return ParseRole(value.String())
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrUnknownRole, v)
	}
}

func (r Role) String() string {
	return strings.ToUpper(string(r))
}

// IsElevated reports whether the role grants administrative operations.
func (r Role) IsElevated() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanAssign reports whether a caller holding r may give target to an
// account. Only MANAGER and ADMIN assign roles, and never one above their
// own, so a MANAGER cannot create or become an ADMIN.
func (r Role) CanAssign(target Role) bool {
	return r.IsElevated() && slices.Index(knownRoles, target) <= slices.Index(knownRoles, r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Value implements [driver.Valuer].
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
	}
	return r.String(), nil
}

// Scan implements [sql.Scanner].
func (r *Role) Scan(src any) error {
	var raw string
	switch value := src.(type) {
	case string:
		raw = value
	case []byte:
		raw = string(value)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnknownRole, src)
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes the canonical name; the zero Role is written as "".
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts any letter case. "" decodes to the zero Role so that
// MarshalJSON output always reads back.
func (r *Role) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*r = ""
		return nil
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
