package profile

import (
	"encoding/json"
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Own(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	p, err := h.svc.Own(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) ByUsername(w http.ResponseWriter, r *http.Request) error {
	p, err := h.svc.ByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

type updateBody struct {
	Bio       string            `json:"bio"`
	TechStack []string          `json:"techStack"`
	Social    map[string]string `json:"social"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	var body updateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	p, err := h.svc.Update(r.Context(), uid, body.Bio, body.TechStack, body.Social)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Followings(w http.ResponseWriter, r *http.Request) error {
	profiles, err := h.svc.FollowingsProfiles(r.Context(), r.PathValue("username"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, profiles, http.StatusOK)
	return nil
}

func (h *Handler) AwardBadge(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	var body struct {
		Badge string `json:"badge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	p, err := h.svc.AwardBadge(r.Context(), uid, r.PathValue("username"), body.Badge)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}
