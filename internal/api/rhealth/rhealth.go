package rhealth

import (
	"net/http"

	"tidytodo/server/internal/api"
	"tidytodo/server/internal/api/respond"
)

type HealthAPI struct{}

func New() *HealthAPI {
	return &HealthAPI{}
}

func CreateServices(h *HealthAPI) []api.Service {
	return []api.Service{
		{Path: "GET /api/health", Handler: http.HandlerFunc(h.Check)},
	}
}

func (h *HealthAPI) Check(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
