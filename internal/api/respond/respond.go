package respond

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// JSON writes v with the given status. Encoding failures surface as a
// truncated body; headers are already gone by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads the request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
