package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is a bit-flag set of permission levels. A principal may hold several
// roles at once and an endpoint may require any of a set, checked with a
// bitwise intersection.
type Role uint8

const (
	RoleNone               Role = 0
	RoleUser               Role = 1
	RoleAdministrator      Role = 2
	RoleSuperAdministrator Role = 4

	roleAll = RoleUser | RoleAdministrator | RoleSuperAdministrator
)

var roleNames = []struct {
	role Role
	name string
}{
	{RoleUser, "User"},
	{RoleAdministrator, "Administrator"},
	{RoleSuperAdministrator, "SuperAdministrator"},
}

// Intersects reports whether any role bit is shared with other.
func (r Role) Intersects(other Role) bool {
	return r&other != 0
}

// Has reports whether every bit of other is held.
func (r Role) Has(other Role) bool {
	return r&other == other
}

// Valid reports whether r contains only known role bits. RoleNone is valid.
func (r Role) Valid() bool {
	return r&^roleAll == 0
}

// String renders the set as its member names joined with "|", or "None".
func (r Role) String() string {
	if r == RoleNone {
		return "None"
	}
	var parts []string
	for _, rn := range roleNames {
		if r.Has(rn.role) {
			parts = append(parts, rn.name)
		}
	}
	if rest := r &^ roleAll; rest != 0 {
		parts = append(parts, strconv.Itoa(int(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseRole parses the textual form produced by String, or a decimal bitmask.
// Values with bits outside the known enumeration are rejected.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleNone, fmt.Errorf("empty role")
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		r := Role(n)
		if !r.Valid() {
			return RoleNone, fmt.Errorf("unknown role bits in %q", s)
		}
		return r, nil
	}
	if s == "None" {
		return RoleNone, nil
	}
	var r Role
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		matched := false
		for _, rn := range roleNames {
			if part == rn.name {
				r |= rn.role
				matched = true
				break
			}
		}
		if !matched {
			return RoleNone, fmt.Errorf("unknown role %q", part)
		}
	}
	return r, nil
}
