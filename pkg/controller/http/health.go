package http

import (
	"net/http"

	"github.com/m-mizutani/md5calc/pkg/domain/model"
	"github.com/m-mizutani/md5calc/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "md5calc",
		Version: types.Version,
	}

	writeJSON(w, r, status, http.StatusOK)
}
