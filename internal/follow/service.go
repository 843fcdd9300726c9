package follow

import (
	"context"

	"github.com/Olori-Ebi/Eyi-media/internal/metrics"
	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

type Service interface {
	// FollowOrUnfollow toggles the follow edge between the two users and
	// returns whether the caller now follows the target, plus the
	// target's follower list.
	FollowOrUnfollow(ctx context.Context, followerID, targetID string) (bool, []Entry, error)
	Followers(ctx context.Context, userID string) ([]Entry, error)
	Following(ctx context.Context, userID string) ([]Entry, error)
}

type service struct {
	repo     Repository
	notifier notification.Dispatcher
}

func NewService(repo Repository, notifier notification.Dispatcher) Service {
	return &service{repo: repo, notifier: notifier}
}

// FollowOrUnfollow performs the symmetric pair of list mutations as two
// independent saves; there is no cross-document transaction. Each step
// is individually idempotent (removal filters by id, insertion is
// guarded against duplicates), so retrying a half-applied toggle
// converges instead of double-inserting.
func (s *service) FollowOrUnfollow(ctx context.Context, followerID, targetID string) (bool, []Entry, error) {
	// Both sides of a self-follow live in the same document; the two
	// whole-document saves below would clobber each other and leave the
	// lists asymmetric.
	if followerID == targetID {
		return false, nil, apperr.Validation("You cannot follow yourself")
	}

	follower, err := s.repo.ByUser(ctx, followerID)
	if err != nil {
		return false, nil, err
	}
	target, err := s.repo.ByUser(ctx, targetID)
	if err != nil {
		return false, nil, err
	}

	isFollowing := indexOf(follower.Following, targetID) >= 0

	if isFollowing {
		follower.Following = removeEntry(follower.Following, targetID)
		if err := s.repo.Save(ctx, &follower); err != nil {
			return false, nil, err
		}
		target.Followers = removeEntry(target.Followers, followerID)
		if err := s.repo.Save(ctx, &target); err != nil {
			return false, nil, err
		}

		s.notifier.RetractFollow(ctx, targetID, followerID)
		metrics.Engagements.WithLabelValues("unfollow").Inc()
		return false, target.Followers, nil
	}

	follower.Following = prependIfAbsent(follower.Following, targetID)
	if err := s.repo.Save(ctx, &follower); err != nil {
		return false, nil, err
	}
	target.Followers = prependIfAbsent(target.Followers, followerID)
	if err := s.repo.Save(ctx, &target); err != nil {
		return false, nil, err
	}

	s.notifier.NotifyFollow(ctx, targetID, followerID)
	metrics.Engagements.WithLabelValues("follow").Inc()
	return true, target.Followers, nil
}

func (s *service) Followers(ctx context.Context, userID string) ([]Entry, error) {
	g, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.Followers, nil
}

func (s *service) Following(ctx context.Context, userID string) ([]Entry, error) {
	g, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.Following, nil
}

func removeEntry(entries []Entry, userID string) []Entry {
	if i := indexOf(entries, userID); i >= 0 {
		return append(entries[:i], entries[i+1:]...)
	}
	return entries
}

func prependIfAbsent(entries []Entry, userID string) []Entry {
	if indexOf(entries, userID) >= 0 {
		return entries
	}
	return append([]Entry{{User: userID}}, entries...)
}
