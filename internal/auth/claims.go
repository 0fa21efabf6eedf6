package auth

import "skybound/flightline/internal/constants"

// UserClaims is what the middleware attaches to every authenticated request:
// who is calling, for which school, and through which credential.
type UserClaims interface {
	MemberID() string
	Role() string
	Source() string
	HasPermission(action string) bool
	SchoolID() string
}

// LinkClaims carries the identity decoded from a signed statement link.
type LinkClaims struct {
	MemberUUID string
	SchoolUUID string
}

func (c *LinkClaims) MemberID() string          { return c.MemberUUID }
func (c *LinkClaims) Role() string              { return string(constants.RoleStudent) }
func (c *LinkClaims) SchoolID() string          { return c.SchoolUUID }
func (c *LinkClaims) Source() string            { return "SIGNED_LINK" }
func (c *LinkClaims) HasPermission(string) bool { return false }

// APIKeyClaims carries the identity resolved from an api_keys row plus the
// optional member header.
type APIKeyClaims struct {
	MemberUUID string
	RoleValue  constants.MemberRole
	SchoolUUID string
}

func (c *APIKeyClaims) MemberID() string          { return c.MemberUUID }
func (c *APIKeyClaims) Role() string              { return string(c.RoleValue) }
func (c *APIKeyClaims) SchoolID() string          { return c.SchoolUUID }
func (c *APIKeyClaims) Source() string            { return "API_KEY" }
func (c *APIKeyClaims) HasPermission(string) bool { return true }
