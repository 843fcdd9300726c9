package notification

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	// EnsureFeed creates the user's empty feed document if it does not
	// exist yet. Called once at onboarding; safe to repeat.
	EnsureFeed(ctx context.Context, userID string) error
	Feed(ctx context.Context, userID string) (Feed, error)
	// Push prepends one entry to the user's feed (most-recent-first).
	Push(ctx context.Context, userID string, n Notification) error
	// PullMatching removes every entry matching the tuple in one call.
	PullMatching(ctx context.Context, userID string, t Tuple) error
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) EnsureFeed(ctx context.Context, userID string) error {
	var f Feed
	err := r.store.FindOne(ctx, store.ColNotifications, bson.M{"user": userID}, &f)
	if err == nil {
		return nil
	}
	if !apperr.IsNotFound(err) {
		return err
	}
	return r.store.Save(ctx, store.ColNotifications, bson.M{"user": userID},
		Feed{User: userID, Notifications: []Notification{}})
}

func (r *repository) Feed(ctx context.Context, userID string) (Feed, error) {
	var f Feed
	err := r.store.FindOne(ctx, store.ColNotifications, bson.M{"user": userID}, &f)
	return f, err
}

func (r *repository) Push(ctx context.Context, userID string, n Notification) error {
	f, err := r.Feed(ctx, userID)
	if err != nil {
		return err
	}
	f.Notifications = append([]Notification{n}, f.Notifications...)
	return r.store.Save(ctx, store.ColNotifications, bson.M{"user": userID}, f)
}

func (r *repository) PullMatching(ctx context.Context, userID string, t Tuple) error {
	match := bson.M{"type": t.Kind, "user": t.Actor}
	if t.Post != "" {
		match["post"] = t.Post
	}
	if t.CommentID != "" {
		match["commentId"] = t.CommentID
	}
	return r.store.DeleteMatching(ctx, store.ColNotifications,
		bson.M{"user": userID}, "notifications", match)
}
