// Package ping contains handlers for pinging the server
package ping

import (
	"io"
	"net/http"
)

const message = "API is running"

// HandlePing godoc
//
//	@Summary	Liveness check.
//	@Tags		Ping
//	@Produce	plain
//	@Success	200	{string}	string	"API is running"
//	@Router		/ [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, message)
}
