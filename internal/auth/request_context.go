package auth

import (
	"context"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"
var viewerSessionKey contextKey = "viewer_session"

func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) UserClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(UserClaims); ok {
		return claims
	}
	return nil
}

// SetViewerSession stores the redeemed statement-link session for handlers
func SetViewerSession(ctx context.Context, session interface{}) context.Context {
	return context.WithValue(ctx, viewerSessionKey, session)
}

// GetViewerSession retrieves the statement-link session from context
func GetViewerSession(ctx context.Context) interface{} {
	return ctx.Value(viewerSessionKey)
}
