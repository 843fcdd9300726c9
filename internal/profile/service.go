package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
)

// UserReader resolves usernames to ids. Implemented by the user
// repository.
type UserReader interface {
	IDByUsername(ctx context.Context, username string) (string, error)
	Role(ctx context.Context, userID string) (string, error)
}

// GraphReader exposes following lists for the followings-profiles read.
type GraphReader interface {
	Following(ctx context.Context, userID string) ([]string, error)
}

type Service interface {
	Own(ctx context.Context, userID string) (Profile, error)
	ByUsername(ctx context.Context, username string) (Profile, error)
	Update(ctx context.Context, userID, bio string, techStack []string, social map[string]string) (Profile, error)
	FollowingsProfiles(ctx context.Context, username string) ([]Profile, error)
	// AwardBadge appends a badge and drops a badge notification into the
	// recipient's feed. Root only.
	AwardBadge(ctx context.Context, requesterID, username, badge string) (Profile, error)
}

type service struct {
	repo     Repository
	users    UserReader
	graph    GraphReader
	notifier notification.Dispatcher
}

func NewService(repo Repository, users UserReader, graph GraphReader, notifier notification.Dispatcher) Service {
	return &service{repo: repo, users: users, graph: graph, notifier: notifier}
}

func (s *service) Own(ctx context.Context, userID string) (Profile, error) {
	return s.repo.ByUser(ctx, userID)
}

func (s *service) ByUsername(ctx context.Context, username string) (Profile, error) {
	uid, err := s.users.IDByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return Profile{}, err
	}
	return s.repo.ByUser(ctx, uid)
}

func (s *service) Update(ctx context.Context, userID, bio string, techStack []string, social map[string]string) (Profile, error) {
	p, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p.Bio = bio
	p.TechStack = techStack
	p.Social = socialFromMap(social)
	if err := s.repo.Save(ctx, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// FollowingsProfiles returns the profiles of everyone the named user
// follows, skipping users who have not onboarded a profile yet.
func (s *service) FollowingsProfiles(ctx context.Context, username string) ([]Profile, error) {
	uid, err := s.users.IDByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	ids, err := s.graph.Following(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		p, err := s.repo.ByUser(ctx, id)
		if apperr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) AwardBadge(ctx context.Context, requesterID, username, badge string) (Profile, error) {
	role, err := s.users.Role(ctx, requesterID)
	if err != nil {
		return Profile{}, err
	}
	if role != user.RoleRoot {
		return Profile{}, apperr.Forbidden("You are not authorized to award badges")
	}
	if badge == "" {
		return Profile{}, apperr.Validation("Badge name is required")
	}

	uid, err := s.users.IDByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return Profile{}, err
	}
	p, err := s.repo.ByUser(ctx, uid)
	if err != nil {
		return Profile{}, err
	}
	p.Badges = append(p.Badges, badge)
	if err := s.repo.Save(ctx, &p); err != nil {
		return Profile{}, err
	}

	s.notifier.NotifyBadge(ctx, uid, fmt.Sprintf("You earned the %s badge", badge))
	return p, nil
}
