package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	goStudio "github.com/MrEthical07/goStudio"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

var errBadID = fmt.Errorf("%w: id must be an integer", goStudio.ErrMalformed)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, goStudio.ErrUnauthenticated), errors.Is(err, goStudio.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, goStudio.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, goStudio.ErrConflict), errors.Is(err, goStudio.ErrMalformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status. Internal failures are logged and never
// echoed to the client.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusUnauthorized:
		writeMessage(w, status, "Error: Unauthorized")
	case http.StatusNotFound:
		writeMessage(w, status, "Not found")
	case http.StatusBadRequest:
		writeMessage(w, status, err.Error())
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeMessage(w, status, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", goStudio.ErrMalformed)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}

func principal(r *http.Request) *goStudio.Principal {
	p, _ := goStudio.PrincipalFrom(r.Context())
	return p
}
