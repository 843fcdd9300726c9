package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Olori-Ebi/Eyi-media/internal/metrics"
	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
)

// PostReader resolves a post's owner for fan-out targeting. Implemented
// by the post repository.
type PostReader interface {
	Owner(ctx context.Context, postID string) (string, error)
}

// RoleReader answers elevated-role checks for removals. Implemented by
// the user repository.
type RoleReader interface {
	Role(ctx context.Context, userID string) (string, error)
}

type Service interface {
	List(ctx context.Context, postID string) ([]Comment, error)

	AddComment(ctx context.Context, postID, authorID, text string) (Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]Comment, error)
	AddReply(ctx context.Context, postID, commentID, authorID, text string) (Reply, error)
	RemoveReply(ctx context.Context, postID, commentID, replyID, requesterID string) ([]Comment, error)

	ToggleCommentLike(ctx context.Context, postID, commentID, userID string) ([]Comment, bool, error)
	ToggleReplyLike(ctx context.Context, postID, commentID, replyID, userID string) ([]Comment, bool, error)
}

type service struct {
	repo     Repository
	posts    PostReader
	roles    RoleReader
	notifier notification.Dispatcher
	now      func() time.Time
}

func NewService(repo Repository, posts PostReader, roles RoleReader, notifier notification.Dispatcher) Service {
	return &service{repo: repo, posts: posts, roles: roles, notifier: notifier, now: time.Now}
}

func (s *service) List(ctx context.Context, postID string) ([]Comment, error) {
	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return t.Comments, nil
}

// AddComment prepends a fresh comment and notifies the post owner
// (unless the author comments on their own post).
func (s *service) AddComment(ctx context.Context, postID, authorID, text string) (Comment, error) {
	if len(text) < 1 {
		return Comment{}, apperr.Validation("Comment must be atleast 1 character long")
	}

	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:      uuid.NewString(),
		User:    authorID,
		Text:    text,
		Date:    s.now().UTC(),
		Likes:   []Like{},
		Replies: []Reply{},
	}
	t.Comments = append([]Comment{c}, t.Comments...)
	if err := s.repo.Save(ctx, &t); err != nil {
		return Comment{}, err
	}

	owner, err := s.posts.Owner(ctx, postID)
	if err == nil && owner != authorID {
		s.notifier.NotifyComment(ctx, owner, authorID, postID, c.ID, text)
	}
	metrics.Engagements.WithLabelValues("comment").Inc()
	return c, nil
}

func (s *service) RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]Comment, error) {
	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	i := t.find(commentID)
	if i < 0 {
		return nil, apperr.NotFound("Comment not found")
	}
	c := t.Comments[i]

	if err := s.authorize(ctx, c.User, requesterID, "You are not authorized to delete this comment"); err != nil {
		return nil, err
	}

	t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
	if err := s.repo.Save(ctx, &t); err != nil {
		return nil, err
	}

	owner, err := s.posts.Owner(ctx, postID)
	if err == nil && owner != requesterID {
		s.notifier.RetractComment(ctx, owner, requesterID, postID, c.ID)
	}
	return t.Comments, nil
}

// AddReply appends (not prepends) to the parent comment's reply list and
// notifies the comment's author.
func (s *service) AddReply(ctx context.Context, postID, commentID, authorID, text string) (Reply, error) {
	if len(text) < 1 {
		return Reply{}, apperr.Validation("Reply must be atleast 1 character long")
	}

	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return Reply{}, err
	}
	i := t.find(commentID)
	if i < 0 {
		return Reply{}, apperr.NotFound("Comment not found")
	}

	reply := Reply{
		ID:    uuid.NewString(),
		User:  authorID,
		Text:  text,
		Date:  s.now().UTC(),
		Likes: []Like{},
	}
	t.Comments[i].Replies = append(t.Comments[i].Replies, reply)
	if err := s.repo.Save(ctx, &t); err != nil {
		return Reply{}, err
	}

	if parent := t.Comments[i]; parent.User != authorID {
		s.notifier.NotifyReply(ctx, parent.User, authorID, postID, reply.ID, text)
	}
	metrics.Engagements.WithLabelValues("reply").Inc()
	return reply, nil
}

func (s *service) RemoveReply(ctx context.Context, postID, commentID, replyID, requesterID string) ([]Comment, error) {
	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ci := t.find(commentID)
	if ci < 0 {
		return nil, apperr.NotFound("Comment not found")
	}
	parent := &t.Comments[ci]
	ri := parent.findReply(replyID)
	if ri < 0 {
		return nil, apperr.NotFound("Reply not found")
	}
	reply := parent.Replies[ri]

	if err := s.authorize(ctx, reply.User, requesterID, "You are not authorized to delete this reply"); err != nil {
		return nil, err
	}

	parent.Replies = append(parent.Replies[:ri], parent.Replies[ri+1:]...)
	if err := s.repo.Save(ctx, &t); err != nil {
		return nil, err
	}

	if parent.User != requesterID {
		s.notifier.RetractReply(ctx, parent.User, requesterID, postID, reply.ID)
	}
	return t.Comments, nil
}

// ToggleCommentLike toggles the caller's like on a comment. The
// resulting notification is a like-kind tuple carrying the post id only,
// addressed to the comment's author.
func (s *service) ToggleCommentLike(ctx context.Context, postID, commentID, userID string) ([]Comment, bool, error) {
	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	ci := t.find(commentID)
	if ci < 0 {
		return nil, false, apperr.NotFound("Comment not found")
	}
	c := &t.Comments[ci]

	liked := false
	if i := likedIndex(c.Likes, userID); i >= 0 {
		c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
	} else {
		c.Likes = append([]Like{{User: userID}}, c.Likes...)
		liked = true
	}
	if err := s.repo.Save(ctx, &t); err != nil {
		return nil, false, err
	}

	if c.User != userID {
		if liked {
			s.notifier.NotifyLike(ctx, c.User, userID, postID)
		} else {
			s.notifier.RetractLike(ctx, c.User, userID, postID)
		}
	}
	metrics.Engagements.WithLabelValues("comment_like").Inc()
	return t.Comments, liked, nil
}

func (s *service) ToggleReplyLike(ctx context.Context, postID, commentID, replyID, userID string) ([]Comment, bool, error) {
	t, err := s.repo.ByPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	ci := t.find(commentID)
	if ci < 0 {
		return nil, false, apperr.NotFound("Comment not found")
	}
	ri := t.Comments[ci].findReply(replyID)
	if ri < 0 {
		return nil, false, apperr.NotFound("Reply not found")
	}
	reply := &t.Comments[ci].Replies[ri]

	liked := false
	if i := likedIndex(reply.Likes, userID); i >= 0 {
		reply.Likes = append(reply.Likes[:i], reply.Likes[i+1:]...)
	} else {
		reply.Likes = append([]Like{{User: userID}}, reply.Likes...)
		liked = true
	}
	if err := s.repo.Save(ctx, &t); err != nil {
		return nil, false, err
	}

	if reply.User != userID {
		if liked {
			s.notifier.NotifyLike(ctx, reply.User, userID, postID)
		} else {
			s.notifier.RetractLike(ctx, reply.User, userID, postID)
		}
	}
	metrics.Engagements.WithLabelValues("reply_like").Inc()
	return t.Comments, liked, nil
}

func (s *service) authorize(ctx context.Context, ownerID, requesterID, msg string) error {
	if ownerID == requesterID {
		return nil
	}
	role, err := s.roles.Role(ctx, requesterID)
	if err != nil {
		return err
	}
	if role != user.RoleRoot {
		return apperr.Forbidden(msg)
	}
	return nil
}
