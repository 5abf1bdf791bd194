package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeJSONError writes the {"error": message} body handlers use, for rejections that happen before a handler runs
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
