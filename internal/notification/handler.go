package notification

import (
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	items, err := h.svc.List(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(r.Context(), uid); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"msg": "Updated unread notification status"}, http.StatusOK)
	return nil
}
