package user

import (
	"encoding/json"
	"net/http"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	u, tok, err := h.svc.Signup(r.Context(), body.Name, body.Username, body.Email, body.Password)
	if err != nil {
		return err
	}
	// Email delivery is a collaborator's job; the verification token is
	// returned directly so onboarding can proceed without it.
	httpx.WriteJSON(w, map[string]any{
		"message":           "Registration Successful! Please activate your email to start.",
		"user":              u,
		"token":             tok,
		"verificationToken": u.VerificationToken,
	}, http.StatusCreated)
	return nil
}

func (h *Handler) CompleteOnboard(w http.ResponseWriter, r *http.Request) error {
	var in OnboardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return apperr.Validation("bad json")
	}
	tok, err := h.svc.CompleteOnboard(r.Context(), r.PathValue("token"), in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{
		"msg":   "User verified and onboarded",
		"token": tok,
	}, http.StatusOK)
	return nil
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	tok, err := h.svc.Signin(r.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"token": tok}, http.StatusOK)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	u, err := h.svc.Me(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"user": u}, http.StatusOK)
	return nil
}

func (h *Handler) UpdateInfo(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	var body struct {
		Name          string `json:"name"`
		Username      string `json:"username"`
		ProfilePicURL string `json:"profilePicUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	u, err := h.svc.UpdateInfo(r.Context(), uid, body.Name, body.Username, body.ProfilePicURL)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperr.Validation("bad json")
	}
	if err := h.svc.UpdatePassword(r.Context(), uid, body.CurrentPassword, body.NewPassword); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"msg": "Password updated"}, http.StatusOK)
	return nil
}
