package post

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Olori-Ebi/Eyi-media/internal/metrics"
	"github.com/Olori-Ebi/Eyi-media/internal/notification"
	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
)

const (
	defaultPageSize  = 12
	followingFeedTTL = 30 * time.Second
)

// ThreadInitializer creates the empty comment-thread document that pairs
// 1:1 with every post. Implemented by the comment repository.
type ThreadInitializer interface {
	EnsureThread(ctx context.Context, postID string) error
}

// GraphReader exposes who a user follows. Implemented by the follow
// repository.
type GraphReader interface {
	Following(ctx context.Context, userID string) ([]string, error)
}

// RoleReader answers elevated-role checks. Implemented by the user
// repository.
type RoleReader interface {
	Role(ctx context.Context, userID string) (string, error)
}

type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	LiveDemo    string   `json:"liveDemo"`
	SourceCode  string   `json:"sourceCode"`
	TechStack   []string `json:"techStack"`
}

type Page struct {
	Posts []Post `json:"posts"`
	Next  *int   `json:"next"`
}

type Service interface {
	CreatePost(ctx context.Context, authorID string, in CreateInput) (Post, error)
	ListPosts(ctx context.Context, page, limit int) (Page, error)
	GetPost(ctx context.Context, id string) (Post, error)
	DeletePost(ctx context.Context, id, requesterID string) error
	Likers(ctx context.Context, postID string) ([]Like, error)

	ToggleLike(ctx context.Context, postID, userID string) (Post, bool, error)
	ToggleSave(ctx context.Context, postID, userID string) (Post, bool, error)

	FollowingFeed(ctx context.Context, userID string, page, limit int) (Page, error)
	SavedPosts(ctx context.Context, userID string) ([]Post, error)
}

type service struct {
	repo     Repository
	threads  ThreadInitializer
	graph    GraphReader
	roles    RoleReader
	notifier notification.Dispatcher
	cache    *redis.Client // optional; nil disables feed caching
}

func NewService(repo Repository, threads ThreadInitializer, graph GraphReader, roles RoleReader, notifier notification.Dispatcher, cache *redis.Client) Service {
	return &service{repo: repo, threads: threads, graph: graph, roles: roles, notifier: notifier, cache: cache}
}

func (s *service) CreatePost(ctx context.Context, authorID string, in CreateInput) (Post, error) {
	if len(in.Images) < 1 {
		return Post{}, apperr.Validation("At least one image is required")
	}

	p := Post{
		ID:          uuid.NewString(),
		User:        authorID,
		Title:       in.Title,
		Description: in.Description,
		Images:      in.Images,
		LiveDemo:    in.LiveDemo,
		SourceCode:  in.SourceCode,
		TechStack:   in.TechStack,
		Likes:       []Like{},
		Saves:       []Save{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Post{}, err
	}
	if err := s.threads.EnsureThread(ctx, p.ID); err != nil {
		return Post{}, err
	}
	metrics.Engagements.WithLabelValues("post_create").Inc()
	return p, nil
}

func (s *service) ListPosts(ctx context.Context, page, limit int) (Page, error) {
	page, limit = normalize(page, limit)
	posts, err := s.repo.List(ctx, int64((page-1)*limit), int64(limit))
	if err != nil {
		return Page{}, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return Page{}, err
	}
	return paged(posts, page, limit, total), nil
}

// GetPost bumps the view counter as part of the read. Two concurrent
// reads can lose an increment; accepted, same as every other
// read-modify-write here.
func (s *service) GetPost(ctx context.Context, id string) (Post, error) {
	p, err := s.repo.ByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	p.Views++
	if err := s.repo.Save(ctx, &p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *service) DeletePost(ctx context.Context, id, requesterID string) error {
	p, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if p.User != requesterID {
		role, err := s.roles.Role(ctx, requesterID)
		if err != nil {
			return err
		}
		if role != user.RoleRoot {
			return apperr.Forbidden("You are not authorized to delete this post")
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Likers(ctx context.Context, postID string) ([]Like, error) {
	p, err := s.repo.ByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// ToggleLike removes the caller's like if present, else prepends one.
// The owner is notified on like and the notification retracted on
// unlike, unless the caller likes their own post.
func (s *service) ToggleLike(ctx context.Context, postID, userID string) (Post, bool, error) {
	p, err := s.repo.ByID(ctx, postID)
	if err != nil {
		return Post{}, false, err
	}

	liked := false
	if i := p.likedBy(userID); i >= 0 {
		p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
	} else {
		p.Likes = append([]Like{{User: userID}}, p.Likes...)
		liked = true
	}
	if err := s.repo.Save(ctx, &p); err != nil {
		return Post{}, false, err
	}

	if p.User != userID {
		if liked {
			s.notifier.NotifyLike(ctx, p.User, userID, postID)
		} else {
			s.notifier.RetractLike(ctx, p.User, userID, postID)
		}
	}
	metrics.Engagements.WithLabelValues("like").Inc()
	return p, liked, nil
}

// ToggleSave mirrors ToggleLike over the saves list. Saves never
// generate notifications.
func (s *service) ToggleSave(ctx context.Context, postID, userID string) (Post, bool, error) {
	p, err := s.repo.ByID(ctx, postID)
	if err != nil {
		return Post{}, false, err
	}

	saved := false
	if i := p.savedBy(userID); i >= 0 {
		p.Saves = append(p.Saves[:i], p.Saves[i+1:]...)
	} else {
		p.Saves = append([]Save{{User: userID}}, p.Saves...)
		saved = true
	}
	if err := s.repo.Save(ctx, &p); err != nil {
		return Post{}, false, err
	}
	metrics.Engagements.WithLabelValues("save").Inc()
	return p, saved, nil
}

func (s *service) FollowingFeed(ctx context.Context, userID string, page, limit int) (Page, error) {
	page, limit = normalize(page, limit)

	if pg, ok := s.cachedFeed(ctx, userID, page, limit); ok {
		return pg, nil
	}

	following, err := s.graph.Following(ctx, userID)
	if err != nil {
		return Page{}, err
	}
	posts, err := s.repo.ListByUsers(ctx, following, int64((page-1)*limit), int64(limit))
	if err != nil {
		return Page{}, err
	}
	total, err := s.repo.CountByUsers(ctx, following)
	if err != nil {
		return Page{}, err
	}

	pg := paged(posts, page, limit, total)
	s.storeFeed(ctx, userID, page, limit, pg)
	return pg, nil
}

func (s *service) SavedPosts(ctx context.Context, userID string) ([]Post, error) {
	return s.repo.SavedBy(ctx, userID)
}

func feedKey(userID string, page, limit int) string {
	return fmt.Sprintf("feed:%s:%d:%d", userID, page, limit)
}

func (s *service) cachedFeed(ctx context.Context, userID string, page, limit int) (Page, bool) {
	if s.cache == nil {
		return Page{}, false
	}
	raw, err := s.cache.Get(ctx, feedKey(userID, page, limit)).Result()
	if err != nil {
		return Page{}, false
	}
	var pg Page
	if json.Unmarshal([]byte(raw), &pg) != nil {
		return Page{}, false
	}
	return pg, true
}

func (s *service) storeFeed(ctx context.Context, userID string, page, limit int, pg Page) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(pg)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, feedKey(userID, page, limit), b, followingFeedTTL).Err()
}

func normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func paged(posts []Post, page, limit int, total int64) Page {
	pg := Page{Posts: posts}
	if int64(page*limit) < total {
		next := page + 1
		pg.Next = &next
	}
	if pg.Posts == nil {
		pg.Posts = []Post{}
	}
	return pg
}
