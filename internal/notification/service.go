package notification

import "context"

// ActorResolver and PostResolver answer "does this document still
// exist". Implemented by the user and post repositories.
type ActorResolver interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type PostResolver interface {
	PostExists(ctx context.Context, postID string) (bool, error)
}

type Service interface {
	// List returns the feed with structurally invalid entries dropped:
	// the actor or post behind an entry may have been deleted since the
	// entry was created, and the feed does not cascade-delete, so
	// filtering at read time is the repair strategy.
	List(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	flags  FlagStore
	actors ActorResolver
	posts  PostResolver
}

func NewService(repo Repository, flags FlagStore, actors ActorResolver, posts PostResolver) Service {
	return &service{repo: repo, flags: flags, actors: actors, posts: posts}
}

func (s *service) List(ctx context.Context, userID string) ([]Notification, error) {
	feed, err := s.repo.Feed(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Notification, 0, len(feed.Notifications))
	for _, n := range feed.Notifications {
		ok, err := s.valid(ctx, n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *service) valid(ctx context.Context, n Notification) (bool, error) {
	switch n.Type {
	case KindLike, KindComment, KindReply:
		actorOK, err := s.actors.UserExists(ctx, n.User)
		if err != nil || !actorOK {
			return false, err
		}
		return s.posts.PostExists(ctx, n.Post)
	case KindFollow:
		return s.actors.UserExists(ctx, n.User)
	case KindBadge:
		return true, nil
	default:
		return false, nil
	}
}

func (s *service) MarkRead(ctx context.Context, userID string) error {
	set, err := s.flags.UnreadFlag(ctx, userID)
	if err != nil {
		return err
	}
	if !set {
		return nil
	}
	return s.flags.SetUnreadFlag(ctx, userID, false)
}
