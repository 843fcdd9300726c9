package follow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	// EnsureGraph creates the user's empty graph document if absent.
	// Called once at onboarding; safe to repeat.
	EnsureGraph(ctx context.Context, userID string) error
	ByUser(ctx context.Context, userID string) (Graph, error)
	Save(ctx context.Context, g *Graph) error

	// Following returns the ids a user follows; consumed by the post
	// feed.
	Following(ctx context.Context, userID string) ([]string, error)
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) EnsureGraph(ctx context.Context, userID string) error {
	var g Graph
	err := r.store.FindOne(ctx, store.ColFollowers, bson.M{"user": userID}, &g)
	if err == nil {
		return nil
	}
	if !apperr.IsNotFound(err) {
		return err
	}
	return r.store.Save(ctx, store.ColFollowers, bson.M{"user": userID},
		Graph{User: userID, Followers: []Entry{}, Following: []Entry{}})
}

func (r *repository) ByUser(ctx context.Context, userID string) (Graph, error) {
	var g Graph
	err := r.store.FindOne(ctx, store.ColFollowers, bson.M{"user": userID}, &g)
	if apperr.IsNotFound(err) {
		return g, apperr.NotFound("User not found")
	}
	return g, err
}

func (r *repository) Save(ctx context.Context, g *Graph) error {
	return r.store.Save(ctx, store.ColFollowers, bson.M{"user": g.User}, g)
}

func (r *repository) Following(ctx context.Context, userID string) ([]string, error) {
	g, err := r.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(g.Following))
	for _, e := range g.Following {
		ids = append(ids, e.User)
	}
	return ids, nil
}
