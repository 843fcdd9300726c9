package follow

import (
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) FollowOrUnfollow(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	_, followers, err := h.svc.FollowOrUnfollow(r.Context(), uid, r.PathValue("userId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, followers, http.StatusOK)
	return nil
}

func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) error {
	followers, err := h.svc.Followers(r.Context(), r.PathValue("userId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, followers, http.StatusOK)
	return nil
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) error {
	following, err := h.svc.Following(r.Context(), r.PathValue("userId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, following, http.StatusOK)
	return nil
}
