package post

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

const maxUploadBytes = 32 << 20

// Uploader persists uploaded post images and returns a servable URL.
// Implemented by the media storage.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type Handler struct {
	svc    Service
	images Uploader
}

func NewHandler(s Service, images Uploader) *Handler {
	return &Handler{svc: s, images: images}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return apperr.Validation("bad multipart form")
	}

	files := r.MultipartForm.File["images"]
	if len(files) < 1 {
		return apperr.Validation("At least one image is required")
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return apperr.Validation("unreadable image")
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return apperr.Validation("unreadable image")
		}
		url, err := h.images.Upload(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
		if err != nil {
			return err
		}
		urls = append(urls, url)
	}

	in := CreateInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Images:      urls,
		LiveDemo:    r.FormValue("liveDemo"),
		SourceCode:  r.FormValue("sourceCode"),
		TechStack:   r.MultipartForm.Value["techStack"],
	}
	p, err := h.svc.CreatePost(r.Context(), uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pg, err := h.svc.ListPosts(r.Context(), page, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, pg, http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	p, err := h.svc.GetPost(r.Context(), r.PathValue("postId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePost(r.Context(), r.PathValue("postId"), uid); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"msg": "Post deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) Likers(w http.ResponseWriter, r *http.Request) error {
	likes, err := h.svc.Likers(r.Context(), r.PathValue("postId"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, likes, http.StatusOK)
	return nil
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	p, _, err := h.svc.ToggleLike(r.Context(), r.PathValue("postId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	p, _, err := h.svc.ToggleSave(r.Context(), r.PathValue("postId"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) FollowingFeed(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pg, err := h.svc.FollowingFeed(r.Context(), uid, page, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, pg, http.StatusOK)
	return nil
}

func (h *Handler) Saved(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	posts, err := h.svc.SavedPosts(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, posts, http.StatusOK)
	return nil
}
