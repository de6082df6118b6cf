package httpcommon

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSONResponse(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONError(w http.ResponseWriter, code int, err error) {
	JSONResponse(w, code, errorResponse{Error: err.Error()})
}

func EmptyResponse(w http.ResponseWriter, code int) {
	w.WriteHeader(code)
}
