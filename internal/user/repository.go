package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/store"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	ByID(ctx context.Context, id string) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
	ByUsername(ctx context.Context, username string) (User, error)
	ByVerificationToken(ctx context.Context, token string) (User, error)
	Save(ctx context.Context, u *User) error

	// Consumed by the notification dispatcher and read path.
	UserExists(ctx context.Context, id string) (bool, error)
	UnreadFlag(ctx context.Context, id string) (bool, error)
	SetUnreadFlag(ctx context.Context, id string, v bool) error

	// Consumed by ownership/role checks in post and comment services.
	Role(ctx context.Context, id string) (string, error)

	// Consumed by the profile service.
	IDByUsername(ctx context.Context, username string) (string, error)
}

type repository struct {
	store *store.Client
}

func NewRepository(s *store.Client) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.store.Save(ctx, store.ColUsers, bson.M{"_id": u.ID}, u)
}

func (r *repository) ByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.store.FindOne(ctx, store.ColUsers, bson.M{"_id": id}, &u)
	return u, err
}

func (r *repository) ByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.store.FindOne(ctx, store.ColUsers, bson.M{"email": email}, &u)
	return u, err
}

func (r *repository) ByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := r.store.FindOne(ctx, store.ColUsers, bson.M{"username": username}, &u)
	return u, err
}

func (r *repository) ByVerificationToken(ctx context.Context, token string) (User, error) {
	var u User
	err := r.store.FindOne(ctx, store.ColUsers, bson.M{"verificationToken": token}, &u)
	return u, err
}

func (r *repository) Save(ctx context.Context, u *User) error {
	return r.store.Save(ctx, store.ColUsers, bson.M{"_id": u.ID}, u)
}

func (r *repository) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := r.ByID(ctx, id)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) UnreadFlag(ctx context.Context, id string) (bool, error) {
	u, err := r.ByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.UnreadNotification, nil
}

func (r *repository) SetUnreadFlag(ctx context.Context, id string, v bool) error {
	return r.store.UpdateOne(ctx, store.ColUsers, bson.M{"_id": id},
		bson.M{"$set": bson.M{"unreadNotification": v}})
}

func (r *repository) Role(ctx context.Context, id string) (string, error) {
	u, err := r.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (r *repository) IDByUsername(ctx context.Context, username string) (string, error) {
	u, err := r.ByUsername(ctx, username)
	if apperr.IsNotFound(err) {
		return "", apperr.NotFound("User not found")
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
