package constants

import (
	"database/sql/driver"
	"fmt"
)

// MemberRole mirrors the Postgres ENUM 'member_role'
type MemberRole string

const (
	RoleStudent    MemberRole = "student"
	RoleInstructor MemberRole = "instructor"
	RoleStaff      MemberRole = "staff"
	RoleAdmin      MemberRole = "admin"
)

func (r MemberRole) String() string { return string(r) }

// StaffLevel reports whether the role may manage maintenance and member data.
func (r MemberRole) StaffLevel() bool {
	return r == RoleStaff || r == RoleAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *MemberRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = MemberRole(v)
	case []byte:
		*r = MemberRole(v)
	default:
		return fmt.Errorf("MemberRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r MemberRole) Value() (driver.Value, error) { return string(r), nil }
