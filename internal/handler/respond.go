package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"skillsense-go/internal/errs"
)

// writeJSON 写JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handler] failed to encode response: %v", err)
	}
}

// writeError 按错误类型映射HTTP状态码
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.InvalidInput, errs.EmptyInput:
		status = http.StatusBadRequest
	case errs.ParseError:
		status = http.StatusUnprocessableEntity
	case errs.MissingProfile:
		status = http.StatusNotFound
	case errs.ConfigError:
		status = http.StatusServiceUnavailable
	case errs.UpstreamError, errs.GatewayError, errs.MalformedResponse:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// userID 从请求中取用户标识，POST请求体里的user_id优先
func userID(r *http.Request) string {
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}
