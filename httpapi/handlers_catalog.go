package httpapi

import "net/http"

func (h *handler) listTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.engine.Teachers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]teacherDTO, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	t, err := h.engine.Teacher(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeacherDTO(t))
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.engine.User(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// deleteUser lets a user delete only their own account.
func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.engine.DeleteAccount(r.Context(), principal(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
