package post

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	ByID(ctx context.Context, id string) (Post, error)
	// Save writes the whole document back; every mutation here is a
	// read-modify-write sequence with no version check.
	Save(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, skip, limit int64) ([]Post, error)
	CountAll(ctx context.Context) (int64, error)
	ListByUsers(ctx context.Context, userIDs []string, skip, limit int64) ([]Post, error)
	CountByUsers(ctx context.Context, userIDs []string) (int64, error)
	SavedBy(ctx context.Context, userID string) ([]Post, error)

	// Consumed by the notification read path and the comment service.
	PostExists(ctx context.Context, id string) (bool, error)
	Owner(ctx context.Context, id string) (string, error)
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	return r.store.Save(ctx, store.ColPosts, bson.M{"_id": p.ID}, p)
}

func (r *repository) ByID(ctx context.Context, id string) (Post, error) {
	var p Post
	err := r.store.FindOne(ctx, store.ColPosts, bson.M{"_id": id}, &p)
	if apperr.IsNotFound(err) {
		return p, apperr.NotFound("Post not found")
	}
	return p, err
}

func (r *repository) Save(ctx context.Context, p *Post) error {
	return r.store.Save(ctx, store.ColPosts, bson.M{"_id": p.ID}, p)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteOne(ctx, store.ColPosts, bson.M{"_id": id})
}

func (r *repository) List(ctx context.Context, skip, limit int64) ([]Post, error) {
	var out []Post
	err := r.store.FindMany(ctx, store.ColPosts, bson.M{}, store.FindOpts{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	}, &out)
	return out, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, store.ColPosts, bson.M{})
}

func (r *repository) ListByUsers(ctx context.Context, userIDs []string, skip, limit int64) ([]Post, error) {
	var out []Post
	err := r.store.FindMany(ctx, store.ColPosts, bson.M{"user": bson.M{"$in": userIDs}}, store.FindOpts{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Skip:  skip,
		Limit: limit,
	}, &out)
	return out, err
}

func (r *repository) CountByUsers(ctx context.Context, userIDs []string) (int64, error) {
	return r.store.Count(ctx, store.ColPosts, bson.M{"user": bson.M{"$in": userIDs}})
}

func (r *repository) SavedBy(ctx context.Context, userID string) ([]Post, error) {
	var out []Post
	err := r.store.FindMany(ctx, store.ColPosts, bson.M{"saves.user": userID}, store.FindOpts{}, &out)
	return out, err
}

func (r *repository) PostExists(ctx context.Context, id string) (bool, error) {
	_, err := r.ByID(ctx, id)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) Owner(ctx context.Context, id string) (string, error) {
	p, err := r.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.User, nil
}
