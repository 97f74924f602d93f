package handler

import "net/http"

// HandleHealthz reports process liveness.
// GET /healthz
func HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
