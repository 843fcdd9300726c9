package profile

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	Init(ctx context.Context, userID, bio string, techStack []string, social map[string]string) error
	ByUser(ctx context.Context, userID string) (Profile, error)
	Save(ctx context.Context, p *Profile) error
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) Init(ctx context.Context, userID, bio string, techStack []string, social map[string]string) error {
	p := Profile{
		User:      userID,
		Bio:       bio,
		TechStack: techStack,
		Social:    socialFromMap(social),
		Badges:    []string{},
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return r.store.Save(ctx, store.ColProfiles, bson.M{"user": userID}, p)
}

func (r *repository) ByUser(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := r.store.FindOne(ctx, store.ColProfiles, bson.M{"user": userID}, &p)
	if apperr.IsNotFound(err) {
		return p, apperr.NotFound("Profile not found")
	}
	return p, err
}

func (r *repository) Save(ctx context.Context, p *Profile) error {
	return r.store.Save(ctx, store.ColProfiles, bson.M{"user": p.User}, p)
}

func socialFromMap(m map[string]string) Social {
	return Social{
		Github:    m["github"],
		Website:   m["website"],
		Linkedin:  m["linkedin"],
		Twitter:   m["twitter"],
		Instagram: m["instagram"],
		Youtube:   m["youtube"],
	}
}
