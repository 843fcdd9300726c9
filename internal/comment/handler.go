package comment

import (
	"encoding/json"
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

type textBody struct {
	Text string `json:"text"`
}

func decodeText(r *http.Request) (string, error) {
	var body textBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", apperr.Validation("bad json")
	}
	return body.Text, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	comments, err := h.svc.List(r.Context(), r.PathValue("postId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	text, err := decodeText(r)
	if err != nil {
		return err
	}
	c, err := h.svc.AddComment(r.Context(), r.PathValue("postId"), uid, text)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	comments, err := h.svc.RemoveComment(r.Context(), r.PathValue("postId"), r.PathValue("commentId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}

func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	text, err := decodeText(r)
	if err != nil {
		return err
	}
	reply, err := h.svc.AddReply(r.Context(), r.PathValue("postId"), r.PathValue("commentId"), uid, text)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, reply, http.StatusCreated)
	return nil
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	comments, err := h.svc.RemoveReply(r.Context(),
		r.PathValue("postId"), r.PathValue("commentId"), r.PathValue("replyId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}

func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	comments, _, err := h.svc.ToggleCommentLike(r.Context(),
		r.PathValue("postId"), r.PathValue("commentId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}

func (h *Handler) ToggleReplyLike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	comments, _, err := h.svc.ToggleReplyLike(r.Context(),
		r.PathValue("postId"), r.PathValue("commentId"), r.PathValue("replyId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}
