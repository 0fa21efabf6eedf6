package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/models/dtos"
)

const viewerSessionCookie = "viewer_session"

// GetStatementHandler handles GET /api/v1/members/{member_id}/statement
//
// @Summary      Build a member statement
// @Description  Assembles the dated charge/payment lines with a running balance for the requested range.
// @Tags         Statements
// @Produce      json
// @Param        from  query  string  true  "Range start (YYYY-MM-DD)"
// @Param        to    query  string  true  "Range end (YYYY-MM-DD)"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/members/{member_id}/statement [get]
func GetStatementHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		stmt, err := deps.Services.Statements.Build(
			r.Context(),
			claims.SchoolID(),
			chi.URLParam(r, "member_id"),
			r.URL.Query().Get("from"),
			r.URL.Query().Get("to"),
		)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.StatementsBuiltTotal.Inc()
		}

		common.RespondSuccess(w, initTime, "Statement built", stmt)
	}
}

// ShareStatementHandler handles POST /api/v1/statements/share
//
// Staff mails the returned link to members without portal access.
func ShareStatementHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.ShareStatementReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		link, err := deps.Services.Statements.Share(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Share link generated", link, http.StatusCreated)
	}
}

// RevokeShareLinkHandler handles POST /api/v1/statements/revoke
//
// Revocation outlives the cache: the token ID stays blacklisted until the
// link would have expired anyway.
func RevokeShareLinkHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}

		decoded, err := deps.Services.URLSigner.ValidateToken(r.Context(), req.Token)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid or already revoked token", http.StatusBadRequest)
			return
		}

		ttl := time.Until(decoded.ExpiresAt)
		if err := deps.Services.URLSigner.RevokeToken(r.Context(), decoded.TokenID, ttl); err != nil {
			common.RespondError(w, initTime, err, "Failed to revoke link", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Share link revoked", nil)
	}
}

// SharedStatementHandler handles GET /api/v1/statements/shared
//
// Public entry point for emailed links. A valid token mints a short-lived
// viewer session cookie; subsequent requests may come in on the cookie alone.
func SharedStatementHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")

		if token == "" {
			serveStatementFromSession(deps, w, r)
			return
		}

		stmt, sessionID, err := deps.Services.Statements.Redeem(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired link")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     viewerSessionCookie,
			Value:    sessionID,
			Path:     "/api/v1/statements",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		if deps.Metrics != nil {
			deps.Metrics.StatementsBuiltTotal.Inc()
		}

		respondWithSuccess(w, http.StatusOK, stmt)
	}
}

func serveStatementFromSession(deps *Dependencies, w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(viewerSessionCookie)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	session, err := deps.Services.Session.GetSession(r.Context(), cookie.Value)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Session expired")
		return
	}

	stmt, err := deps.Services.Statements.Build(r.Context(), session.SchoolID, session.MemberID, session.From, session.To)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build statement")
		return
	}

	// Sliding expiry while the viewer keeps the page open.
	_ = deps.Services.Session.RefreshSession(r.Context(), cookie.Value)

	respondWithSuccess(w, http.StatusOK, stmt)
}

func (h *Handlers) GetStatement() http.HandlerFunc    { return GetStatementHandler(h.deps) }
func (h *Handlers) ShareStatement() http.HandlerFunc  { return ShareStatementHandler(h.deps) }
func (h *Handlers) RevokeShareLink() http.HandlerFunc { return RevokeShareLinkHandler(h.deps) }
func (h *Handlers) SharedStatement() http.HandlerFunc { return SharedStatementHandler(h.deps) }
