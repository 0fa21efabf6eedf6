package auth

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/db/repositories"
	"skybound/flightline/internal/logging"
)

// MakeClaimsFromApi resolves the acting member for an API-key request. The
// member header is optional; service accounts act with the staff role.
func MakeClaimsFromApi(ctx context.Context, repo *repositories.MemberRepository, schoolID, memberID string) *APIKeyClaims {

	claims := &APIKeyClaims{
		SchoolUUID: schoolID,
		RoleValue:  constants.RoleStaff,
	}

	if memberID == "" {
		return claims
	}

	member, err := repo.FindByID(ctx, memberID)
	if err != nil {
		logging.Warn("member lookup failed for API key request", "member_id", memberID, "error", err)
		return claims
	}

	if member.SchoolID != schoolID {
		logging.Warn("member belongs to a different school", "member_id", memberID)
		return claims
	}

	claims.MemberUUID = member.ID
	claims.RoleValue = member.Role
	return claims
}
