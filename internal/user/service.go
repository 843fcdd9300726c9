package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/jwt"
)

const tokenTTL = 7 * 24 * time.Hour

// GraphInitializer, FeedInitializer and ProfileInitializer seed the
// per-user documents created at onboarding. Implemented by the follow,
// notification and profile packages.
type GraphInitializer interface {
	EnsureGraph(ctx context.Context, userID string) error
}

type FeedInitializer interface {
	EnsureFeed(ctx context.Context, userID string) error
}

type ProfileInitializer interface {
	Init(ctx context.Context, userID, bio string, techStack []string, social map[string]string) error
}

type OnboardInput struct {
	Bio       string            `json:"bio"`
	TechStack []string          `json:"techStack"`
	Social    map[string]string `json:"social"`
}

type Service interface {
	Signup(ctx context.Context, name, username, email, password string) (User, string, error)
	CompleteOnboard(ctx context.Context, token string, in OnboardInput) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, id string) (User, error)
	UpdateInfo(ctx context.Context, id, name, username, picURL string) (User, error)
	UpdatePassword(ctx context.Context, id, current, next string) error
}

type service struct {
	repo     Repository
	graphs   GraphInitializer
	feeds    FeedInitializer
	profiles ProfileInitializer
}

func NewService(repo Repository, graphs GraphInitializer, feeds FeedInitializer, profiles ProfileInitializer) Service {
	return &service{repo: repo, graphs: graphs, feeds: feeds, profiles: profiles}
}

// Signup registers an unverified account and returns it with an auth
// token. The verification token is returned on the user document;
// delivering it (email or otherwise) is a collaborator's job.
func (s *service) Signup(ctx context.Context, name, username, email, password string) (User, string, error) {
	if len(password) < 6 {
		return User{}, "", apperr.Validation("Password must be atleast 6 characters long")
	}
	email = strings.ToLower(email)
	username = strings.ToLower(username)

	if _, err := s.repo.ByEmail(ctx, email); err == nil {
		return User{}, "", apperr.Validation("You are already registered")
	} else if !apperr.IsNotFound(err) {
		return User{}, "", err
	}
	if _, err := s.repo.ByUsername(ctx, username); err == nil {
		return User{}, "", apperr.Validation("Username is already taken")
	} else if !apperr.IsNotFound(err) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	u := User{
		ID:                uuid.NewString(),
		Name:              name,
		Username:          username,
		Email:             email,
		Password:          string(hash),
		VerificationToken: newVerificationToken(),
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, "", err
	}

	tok, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// CompleteOnboard verifies the account and seeds the user's profile,
// social-graph entry and notification feed.
func (s *service) CompleteOnboard(ctx context.Context, token string, in OnboardInput) (string, error) {
	u, err := s.repo.ByVerificationToken(ctx, token)
	if apperr.IsNotFound(err) {
		return "", apperr.Validation("Invalid or expired token")
	}
	if err != nil {
		return "", err
	}

	u.IsVerified = true
	u.VerificationToken = ""
	if err := s.repo.Save(ctx, &u); err != nil {
		return "", err
	}

	if err := s.profiles.Init(ctx, u.ID, in.Bio, in.TechStack, in.Social); err != nil {
		return "", err
	}
	if err := s.graphs.EnsureGraph(ctx, u.ID); err != nil {
		return "", err
	}
	if err := s.feeds.EnsureFeed(ctx, u.ID); err != nil {
		return "", err
	}

	return jwt.Sign(u.ID, tokenTTL)
}

func (s *service) Signin(ctx context.Context, email, password string) (string, error) {
	if len(password) < 6 {
		return "", apperr.Validation("Password must be atleast 6 characters long")
	}
	u, err := s.repo.ByEmail(ctx, strings.ToLower(email))
	if apperr.IsNotFound(err) {
		return "", apperr.Validation("Invalid credentials")
	}
	if err != nil {
		return "", err
	}
	if !u.IsVerified {
		return "", apperr.Validation("Please verify your email before trying to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", apperr.Validation("Invalid credentials")
	}
	return jwt.Sign(u.ID, tokenTTL)
}

func (s *service) Me(ctx context.Context, id string) (User, error) {
	return s.repo.ByID(ctx, id)
}

func (s *service) UpdateInfo(ctx context.Context, id, name, username, picURL string) (User, error) {
	if username != "" {
		username = strings.ToLower(username)
		other, err := s.repo.ByUsername(ctx, username)
		if err == nil && other.ID != id {
			return User{}, apperr.Validation("Username is already taken")
		}
		if err != nil && !apperr.IsNotFound(err) {
			return User{}, err
		}
	}

	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if name != "" {
		u.Name = name
	}
	if username != "" {
		u.Username = username
	}
	if picURL != "" {
		u.ProfilePicURL = picURL
	}
	if err := s.repo.Save(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *service) UpdatePassword(ctx context.Context, id, current, next string) error {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return apperr.Forbidden("Incorrect password")
	}
	if len(next) < 6 {
		return apperr.Validation("Password must be atleast 6 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return s.repo.Save(ctx, &u)
}

func newVerificationToken() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
