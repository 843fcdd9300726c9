package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolvers struct {
	users map[string]bool
	posts map[string]bool
}

func (f *fakeResolvers) UserExists(_ context.Context, id string) (bool, error) {
	return f.users[id], nil
}

func (f *fakeResolvers) PostExists(_ context.Context, id string) (bool, error) {
	return f.posts[id], nil
}

func TestListDropsDanglingEntries(t *testing.T) {
	repo := newFakeRepo("u1")
	now := time.Now()
	repo.feeds["u1"] = []Notification{
		likeNotification("gone", "p1", now),
		likeNotification("u2", "deleted-post", now),
		likeNotification("u2", "p1", now),
		followNotification("gone", now),
		followNotification("u3", now),
		badgeNotification("You earned the Contributor badge", now),
	}
	res := &fakeResolvers{
		users: map[string]bool{"u2": true, "u3": true},
		posts: map[string]bool{"p1": true},
	}
	svc := NewService(repo, newFakeFlags(), res, res)

	out, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, KindLike, out[0].Type)
	assert.Equal(t, "u2", out[0].User)
	assert.Equal(t, KindFollow, out[1].Type)
	assert.Equal(t, "u3", out[1].User)
	// Badge entries survive regardless of resolver state.
	assert.Equal(t, KindBadge, out[2].Type)
}

func TestListPreservesFeedOrder(t *testing.T) {
	repo := newFakeRepo("u1")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)
	ctx := context.Background()

	d.NotifyLike(ctx, "u1", "u2", "p1")
	d.NotifyFollow(ctx, "u1", "u3")

	res := &fakeResolvers{
		users: map[string]bool{"u2": true, "u3": true},
		posts: map[string]bool{"p1": true},
	}
	svc := NewService(repo, flags, res, res)

	out, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Most recent first.
	assert.Equal(t, KindFollow, out[0].Type)
	assert.Equal(t, KindLike, out[1].Type)
}

func TestMarkReadClearsFlagOnce(t *testing.T) {
	repo := newFakeRepo("u1")
	flags := newFakeFlags()
	flags.unread["u1"] = true
	res := &fakeResolvers{users: map[string]bool{}, posts: map[string]bool{}}
	svc := NewService(repo, flags, res, res)
	ctx := context.Background()

	require.NoError(t, svc.MarkRead(ctx, "u1"))
	assert.False(t, flags.unread["u1"])
	writes := flags.writes

	// Already clear: no extra write.
	require.NoError(t, svc.MarkRead(ctx, "u1"))
	assert.Equal(t, writes, flags.writes)
}
