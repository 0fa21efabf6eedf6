package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/common"
)

// GetSchoolConfigsHandler handles GET /api/v1/school/configs
func GetSchoolConfigsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		configs, err := deps.Services.Conf.GetAllConfigValues(r.Context(), claims.SchoolID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch configs", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Configs fetched", configs)
	}
}

// ListSchoolConfigKeysHandler handles GET /api/v1/school/configs/keys
func ListSchoolConfigKeysHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Allowed config keys", deps.Services.Conf.ListPossibleKeys())
	}
}

// SetSchoolConfigsHandler handles POST /api/v1/school/configs
//
// Accepts a flat key/value map; unknown keys are rejected per entry.
func SetSchoolConfigsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req) == 0 {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}

		var configs map[string]string
		for key, value := range req {
			updated, err := deps.Services.Conf.SetConfig(r.Context(), claims.SchoolID(), key, value)
			if err != nil {
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
				return
			}
			configs = updated
		}

		common.RespondSuccess(w, initTime, "Configs updated", configs)
	}
}

func (h *Handlers) GetSchoolConfigs() http.HandlerFunc { return GetSchoolConfigsHandler(h.deps) }
func (h *Handlers) SetSchoolConfigs() http.HandlerFunc { return SetSchoolConfigsHandler(h.deps) }
