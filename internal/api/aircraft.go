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
	"skybound/flightline/internal/models/entities"
)

// ListAircraftHandler handles GET /api/v1/aircraft
//
// @Summary      List aircraft
// @Description  Returns the school's fleet with current meter readings.
// @Tags         Aircraft
// @Produce      json
// @Param        X-API-Key    header  string  true  "API KEY"
// @Param        X-Member-Id  header  string  true  "Member ID"
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/aircraft [get]
func ListAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		fleet, err := deps.Repo.Aircraft.ListBySchool(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch aircraft", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft fetched", fleet)
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{aircraft_id}
func GetAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		ac, err := deps.Repo.Aircraft.FindByID(r.Context(), chi.URLParam(r, "aircraft_id"))
		if err != nil || ac.SchoolID != claims.SchoolID() {
			common.RespondError(w, initTime, err, constants.MsgAircraftNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft fetched", ac)
	}
}

// CreateAircraftHandler handles POST /api/v1/aircraft
//
// @Summary      Register an aircraft
// @Tags         Aircraft
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateAircraftReq  true  "Aircraft payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/aircraft [post]
func CreateAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateAircraftReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		ac := &entities.Aircraft{
			SchoolID:     claims.SchoolID(),
			TailNumber:   req.TailNumber,
			Model:        req.Model,
			CurrentHours: req.CurrentHours,
			IsActive:     true,
		}
		if err := deps.Repo.Aircraft.Insert(r.Context(), ac); err != nil {
			common.RespondError(w, initTime, err, constants.StatusInsertFailed, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft registered", ac, http.StatusCreated)
	}
}

// UpdateAircraftHoursHandler handles PATCH /api/v1/aircraft/{aircraft_id}/hours
//
// The meter only moves forward; a reading below the current one is rejected
// so due calculations cannot silently regress.
func UpdateAircraftHoursHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateAircraftHoursReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "aircraft_id")
		ac, err := deps.Repo.Aircraft.FindByID(r.Context(), id)
		if err != nil || ac.SchoolID != claims.SchoolID() {
			common.RespondError(w, initTime, err, constants.MsgAircraftNotFound, http.StatusNotFound)
			return
		}
		if ac.CurrentHours != nil && req.CurrentHours < *ac.CurrentHours {
			common.RespondError(w, initTime, nil, "current_hours cannot decrease", http.StatusBadRequest)
			return
		}

		updated, err := deps.Repo.Aircraft.UpdateHours(r.Context(), id, req.CurrentHours)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft hours updated", updated)
	}
}

func (h *Handlers) ListAircraft() http.HandlerFunc        { return ListAircraftHandler(h.deps) }
func (h *Handlers) GetAircraft() http.HandlerFunc         { return GetAircraftHandler(h.deps) }
func (h *Handlers) CreateAircraft() http.HandlerFunc      { return CreateAircraftHandler(h.deps) }
func (h *Handlers) UpdateAircraftHours() http.HandlerFunc { return UpdateAircraftHoursHandler(h.deps) }
