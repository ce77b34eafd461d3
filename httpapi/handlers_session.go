package httpapi

import (
	"net/http"
)

func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.engine.Sessions(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionDTO(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.engine.Session(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	s, err := h.engine.CreateSession(r.Context(), principal(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *handler) updateSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	s, err := h.engine.UpdateSession(r.Context(), principal(r), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.engine.DeleteSession(r.Context(), principal(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) participate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.membershipIDs(w, r)
	if !ok {
		return
	}
	if err := h.engine.JoinSession(r.Context(), sessionID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) noLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := h.membershipIDs(w, r)
	if !ok {
		return
	}
	if err := h.engine.LeaveSession(r.Context(), sessionID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) membershipIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	sessionID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return 0, 0, false
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		h.writeError(w, r, err)
		return 0, 0, false
	}
	return sessionID, userID, true
}
