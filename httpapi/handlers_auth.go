package httpapi

import (
	"errors"
	"net/http"

	goStudio "github.com/MrEthical07/goStudio"
)

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, goStudio.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jwtResponse{
		Token:     res.Token,
		Type:      "Bearer",
		ID:        res.Principal.ID,
		Username:  res.Principal.Identifier,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		Admin:     res.Principal.Admin,
	})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	_, err := h.engine.Register(r.Context(), goStudio.RegisterRequest{
		Identifier: req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		if errors.Is(err, goStudio.ErrIdentifierTaken) {
			writeMessage(w, http.StatusBadRequest, "Error: Email is already taken!")
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "User registered successfully!")
}
