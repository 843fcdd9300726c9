package media

import (
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

type Handler struct{ storage *Storage }

func NewHandler(s *Storage) *Handler { return &Handler{storage: s} }

// Serve redirects to a short-lived presigned URL for the stored object.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) error {
	key := r.PathValue("key")
	if key == "" {
		return apperr.Validation("missing media key")
	}
	u, err := h.storage.PresignGet(r.Context(), key)
	if err != nil {
		return err
	}
	http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
	return nil
}
