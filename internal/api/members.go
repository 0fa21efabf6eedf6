package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/dtos"
)

// decodeAndValidate pulls the JSON body into req and runs its tag rules.
func decodeAndValidate[T interface{ Validate() error }](r *http.Request, req T) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	return req.Validate()
}

// ListMembersHandler handles GET /api/v1/members
func ListMembersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		members, err := deps.Services.Members.List(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch members", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Members fetched", members)
	}
}

// GetMemberProfileHandler handles GET /api/v1/members/{member_id}
//
// @Summary      Member profile
// @Description  Returns the member with memberships, credentials and enrollments in one payload.
// @Tags         Members
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/members/{member_id} [get]
func GetMemberProfileHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		profile, err := deps.Services.Members.Profile(r.Context(), claims.SchoolID(), chi.URLParam(r, "member_id"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgMemberNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Member profile fetched", profile)
	}
}

// CreateMemberHandler handles POST /api/v1/members
func CreateMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateMemberReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		member, err := deps.Services.Members.Create(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Member created", member, http.StatusCreated)
	}
}

// UpdateMemberHandler handles PATCH /api/v1/members/{member_id}
func UpdateMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateMemberReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		member, err := deps.Services.Members.Update(r.Context(), claims.SchoolID(), chi.URLParam(r, "member_id"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Member updated", member)
	}
}

// AddMembershipHandler handles POST /api/v1/memberships
func AddMembershipHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateMembershipReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		membership, err := deps.Services.Members.AddMembership(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Membership added", membership, http.StatusCreated)
	}
}

// ListMembershipsHandler handles GET /api/v1/memberships
func ListMembershipsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		memberships, err := deps.Services.Members.ListMemberships(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch memberships", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Memberships fetched", memberships)
	}
}

// UpdateMembershipHandler handles PATCH /api/v1/memberships/{membership_id}
func UpdateMembershipHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateMembershipReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		membership, err := deps.Services.Members.UpdateMembership(r.Context(), claims.SchoolID(), chi.URLParam(r, "membership_id"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Membership updated", membership)
	}
}

// ListCredentialsHandler handles GET /api/v1/members/{member_id}/credentials
func ListCredentialsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		creds, err := deps.Services.Members.ListCredentials(r.Context(), claims.SchoolID(), chi.URLParam(r, "member_id"))
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Credentials fetched", creds)
	}
}

// AddCredentialHandler handles POST /api/v1/credentials
func AddCredentialHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateCredentialReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		cred, err := deps.Services.Members.AddCredential(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Credential added", cred, http.StatusCreated)
	}
}

// UpdateCredentialHandler handles PATCH /api/v1/credentials/{credential_id}
func UpdateCredentialHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateCredentialReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		cred, err := deps.Services.Members.UpdateCredential(r.Context(), claims.SchoolID(), chi.URLParam(r, "credential_id"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Credential updated", cred)
	}
}

// ListEnrollmentsHandler handles GET /api/v1/enrollments
func ListEnrollmentsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		enrollments, err := deps.Services.Members.ListEnrollments(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch enrollments", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Enrollments fetched", enrollments)
	}
}

// AddEnrollmentHandler handles POST /api/v1/enrollments
func AddEnrollmentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateEnrollmentReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		enrollment, err := deps.Services.Members.AddEnrollment(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Enrollment created", enrollment, http.StatusCreated)
	}
}

// UpdateEnrollmentHandler handles PATCH /api/v1/enrollments/{enrollment_id}
func UpdateEnrollmentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateEnrollmentReq
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		enrollment, err := deps.Services.Members.UpdateEnrollment(r.Context(), claims.SchoolID(), chi.URLParam(r, "enrollment_id"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Enrollment updated", enrollment)
	}
}

func (h *Handlers) ListMembers() http.HandlerFunc      { return ListMembersHandler(h.deps) }
func (h *Handlers) GetMemberProfile() http.HandlerFunc { return GetMemberProfileHandler(h.deps) }
func (h *Handlers) CreateMember() http.HandlerFunc     { return CreateMemberHandler(h.deps) }
func (h *Handlers) UpdateMember() http.HandlerFunc     { return UpdateMemberHandler(h.deps) }
