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

// ListComponentsHandler handles GET /api/v1/aircraft/{aircraft_id}/components
//
// @Summary      List components with due status
// @Description  Returns the aircraft's tracked components, each evaluated against the current meter and school clock.
// @Tags         Components
// @Produce      json
// @Param        X-API-Key    header  string  true  "API KEY"
// @Param        X-Member-Id  header  string  true  "Member ID"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/aircraft/{aircraft_id}/components [get]
func ListComponentsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		list, err := deps.Services.Components.ListForAircraft(r.Context(), claims.SchoolID(), chi.URLParam(r, "aircraft_id"))
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Components fetched", list)
	}
}

// FleetStatusHandler handles GET /api/v1/fleet/status
//
// @Summary      Fleet due-status rollup
// @Description  Evaluates every active component in the school and returns the rows plus a per-status summary.
// @Tags         Components
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/fleet/status [get]
func FleetStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		rows, summary, err := deps.Services.Components.FleetStatus(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to evaluate fleet", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fleet status evaluated", map[string]any{
			"summary":    summary,
			"components": rows,
		})
	}
}

// GetComponentHandler handles GET /api/v1/components/{component_id}
func GetComponentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		row, err := deps.Services.Components.Get(r.Context(), claims.SchoolID(), chi.URLParam(r, "component_id"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgComponentNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Component fetched", row)
	}
}

// CreateComponentHandler handles POST /api/v1/components
func CreateComponentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateComponentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		comp, err := deps.Services.Components.Create(r.Context(), claims.SchoolID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Component created", comp, http.StatusCreated)
	}
}

// UpdateComponentHandler handles PATCH /api/v1/components/{component_id}
func UpdateComponentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateComponentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		comp, err := deps.Services.Components.Update(r.Context(), claims.SchoolID(), chi.URLParam(r, "component_id"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusUpdateFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Component updated", comp)
	}
}

// SetExtensionHandler handles PATCH /api/v1/components/{component_id}/extension
//
// @Summary      Extend or revert a component's due point
// @Description  Sets the regulatory extension percent. A null percent reverts the component to its base due values.
// @Tags         Components
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.SetExtensionReq  true  "Extension payload"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/components/{component_id}/extension [patch]
func SetExtensionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.SetExtensionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidExtension, http.StatusBadRequest)
			return
		}

		comp, err := deps.Services.Components.SetExtension(r.Context(), claims.SchoolID(), chi.URLParam(r, "component_id"), req.Percent)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		message := "Extension applied"
		if req.Percent == nil {
			message = "Extension reverted"
		}
		common.RespondSuccess(w, initTime, message, comp)
	}
}

// DeleteComponentHandler handles DELETE /api/v1/components/{component_id}
func DeleteComponentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Components.Delete(r.Context(), claims.SchoolID(), chi.URLParam(r, "component_id")); err != nil {
			common.RespondError(w, initTime, err, constants.StatusDeleteFailed, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Component removed", nil)
	}
}

func (h *Handlers) ListComponents() http.HandlerFunc  { return ListComponentsHandler(h.deps) }
func (h *Handlers) GetComponent() http.HandlerFunc    { return GetComponentHandler(h.deps) }
func (h *Handlers) FleetStatus() http.HandlerFunc     { return FleetStatusHandler(h.deps) }
func (h *Handlers) CreateComponent() http.HandlerFunc { return CreateComponentHandler(h.deps) }
func (h *Handlers) UpdateComponent() http.HandlerFunc { return UpdateComponentHandler(h.deps) }
func (h *Handlers) SetExtension() http.HandlerFunc    { return SetExtensionHandler(h.deps) }
func (h *Handlers) DeleteComponent() http.HandlerFunc { return DeleteComponentHandler(h.deps) }
