package comment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	// EnsureThread creates the post's empty thread document if absent.
	// Called from post creation; safe to repeat.
	EnsureThread(ctx context.Context, postID string) error
	ByPost(ctx context.Context, postID string) (Thread, error)
	// Save writes the whole tree back; every thread mutation is a
	// read-modify-write over the full document.
	Save(ctx context.Context, t *Thread) error
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) EnsureThread(ctx context.Context, postID string) error {
	var t Thread
	err := r.store.FindOne(ctx, store.ColComments, bson.M{"post": postID}, &t)
	if err == nil {
		return nil
	}
	if !apperr.IsNotFound(err) {
		return err
	}
	return r.store.Save(ctx, store.ColComments, bson.M{"post": postID},
		Thread{Post: postID, Comments: []Comment{}})
}

func (r *repository) ByPost(ctx context.Context, postID string) (Thread, error) {
	var t Thread
	err := r.store.FindOne(ctx, store.ColComments, bson.M{"post": postID}, &t)
	if apperr.IsNotFound(err) {
		return t, apperr.NotFound("Post not found")
	}
	return t, err
}

func (r *repository) Save(ctx context.Context, t *Thread) error {
	return r.store.Save(ctx, store.ColComments, bson.M{"post": t.Post}, t)
}
