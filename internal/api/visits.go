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

// LogVisitHandler handles POST /api/v1/visits
//
// @Summary      Log a maintenance visit
// @Description  Records a visit and, when tied to a component, rolls it forward to its next cycle in the same transaction.
// @Tags         Visits
// @Accept       json
// @Produce      json
// @Param        X-API-Key    header  string             true  "API KEY"
// @Param        X-Member-Id  header  string             true  "Member ID"
// @Param        input        body    dtos.LogVisitReq   true  "Visit payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/visits [post]
func LogVisitHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.LogVisitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := deps.Services.Visits.LogVisit(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.VisitsLoggedTotal.Inc()
		}

		common.RespondSuccess(w, initTime, constants.StatusComponentLogged, resp, http.StatusCreated)
	}
}

// PreviewNextDueHandler handles GET /api/v1/components/{component_id}/next-due
//
// Dry-run projection: ?visit_date=YYYY-MM-DD, defaulting to today.
func PreviewNextDueHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		visitDate := r.URL.Query().Get("visit_date")
		if visitDate == "" {
			visitDate = time.Now().UTC().Format("2006-01-02")
		}

		preview, err := deps.Services.Visits.PreviewNextDue(r.Context(), claims.SchoolID(), chi.URLParam(r, "component_id"), visitDate)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Next cycle projected", preview)
	}
}

// ListVisitsHandler handles GET /api/v1/aircraft/{aircraft_id}/visits
func ListVisitsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		aircraftID := chi.URLParam(r, "aircraft_id")
		ac, err := deps.Repo.Aircraft.FindByID(r.Context(), aircraftID)
		if err != nil || ac.SchoolID != claims.SchoolID() {
			common.RespondError(w, initTime, err, constants.MsgAircraftNotFound, http.StatusNotFound)
			return
		}

		// Optional component filter keeps one endpoint for both history views.
		var visits any
		if componentID := r.URL.Query().Get("component_id"); componentID != "" {
			visits, err = deps.Repo.Visits.ListByComponent(r.Context(), componentID)
		} else {
			visits, err = deps.Repo.Visits.ListByAircraft(r.Context(), aircraftID)
		}
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch visits", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Visits fetched", visits)
	}
}

func (h *Handlers) LogVisit() http.HandlerFunc       { return LogVisitHandler(h.deps) }
func (h *Handlers) PreviewNextDue() http.HandlerFunc { return PreviewNextDueHandler(h.deps) }
func (h *Handlers) ListVisits() http.HandlerFunc     { return ListVisitsHandler(h.deps) }
