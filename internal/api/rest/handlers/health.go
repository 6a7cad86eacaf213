package handlers

import (
	"net/http"

	"github.com/CameronXie/mealserve/internal/api/rest/response"
)

// HealthHandler reports that the process is serving requests.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}
