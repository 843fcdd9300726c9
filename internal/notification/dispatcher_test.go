package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

type fakeRepo struct {
	feeds map[string][]Notification
}

func newFakeRepo(users ...string) *fakeRepo {
	f := &fakeRepo{feeds: map[string][]Notification{}}
	for _, u := range users {
		f.feeds[u] = []Notification{}
	}
	return f
}

func (f *fakeRepo) EnsureFeed(_ context.Context, userID string) error {
	if _, ok := f.feeds[userID]; !ok {
		f.feeds[userID] = []Notification{}
	}
	return nil
}

func (f *fakeRepo) Feed(_ context.Context, userID string) (Feed, error) {
	ns, ok := f.feeds[userID]
	if !ok {
		return Feed{}, apperr.NotFound("document not found")
	}
	return Feed{User: userID, Notifications: ns}, nil
}

func (f *fakeRepo) Push(_ context.Context, userID string, n Notification) error {
	ns, ok := f.feeds[userID]
	if !ok {
		return apperr.NotFound("document not found")
	}
	f.feeds[userID] = append([]Notification{n}, ns...)
	return nil
}

func (f *fakeRepo) PullMatching(_ context.Context, userID string, t Tuple) error {
	ns, ok := f.feeds[userID]
	if !ok {
		return apperr.NotFound("document not found")
	}
	kept := ns[:0:0]
	for _, n := range ns {
		if n.Type == t.Kind && n.User == t.Actor &&
			(t.Post == "" || n.Post == t.Post) &&
			(t.CommentID == "" || n.CommentID == t.CommentID) {
			continue
		}
		kept = append(kept, n)
	}
	f.feeds[userID] = kept
	return nil
}

type fakeFlags struct {
	unread map[string]bool
	writes int
}

func newFakeFlags() *fakeFlags { return &fakeFlags{unread: map[string]bool{}} }

func (f *fakeFlags) UnreadFlag(_ context.Context, userID string) (bool, error) {
	return f.unread[userID], nil
}

func (f *fakeFlags) SetUnreadFlag(_ context.Context, userID string, v bool) error {
	f.unread[userID] = v
	f.writes++
	return nil
}

func TestNotifyThenRetractIsNetNoop(t *testing.T) {
	repo := newFakeRepo("u2")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)
	ctx := context.Background()

	d.NotifyLike(ctx, "u2", "u1", "p1")
	require.Len(t, repo.feeds["u2"], 1)
	assert.Equal(t, KindLike, repo.feeds["u2"][0].Type)
	assert.Equal(t, "u1", repo.feeds["u2"][0].User)
	assert.Equal(t, "p1", repo.feeds["u2"][0].Post)
	assert.True(t, flags.unread["u2"])

	d.RetractLike(ctx, "u2", "u1", "p1")
	assert.Empty(t, repo.feeds["u2"])
	// Retraction never rolls the unread flag back.
	assert.True(t, flags.unread["u2"])
}

func TestSelfActionNeverNotifies(t *testing.T) {
	repo := newFakeRepo("u1")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)
	ctx := context.Background()

	d.NotifyLike(ctx, "u1", "u1", "p1")
	d.NotifyComment(ctx, "u1", "u1", "p1", "c1", "hi")
	d.NotifyReply(ctx, "u1", "u1", "p1", "r1", "hi")
	d.NotifyFollow(ctx, "u1", "u1")

	assert.Empty(t, repo.feeds["u1"])
	assert.False(t, flags.unread["u1"])
	assert.Zero(t, flags.writes)
}

func TestRetractRemovesAllTupleMatches(t *testing.T) {
	repo := newFakeRepo("u2")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)
	ctx := context.Background()

	// No dedup on create: re-notifying duplicates the entry.
	d.NotifyLike(ctx, "u2", "u1", "p1")
	d.NotifyLike(ctx, "u2", "u1", "p1")
	d.NotifyLike(ctx, "u2", "u3", "p1")
	require.Len(t, repo.feeds["u2"], 3)

	// One retraction deletes every match for the tuple.
	d.RetractLike(ctx, "u2", "u1", "p1")
	require.Len(t, repo.feeds["u2"], 1)
	assert.Equal(t, "u3", repo.feeds["u2"][0].User)
}

func TestRetractWhileAbsentIsHarmless(t *testing.T) {
	repo := newFakeRepo("u2")
	d := NewDispatcher(repo, newFakeFlags(), nil)

	d.RetractFollow(context.Background(), "u2", "u1")
	assert.Empty(t, repo.feeds["u2"])
}

func TestUnreadFlagWrittenOnlyWhenClear(t *testing.T) {
	repo := newFakeRepo("u2")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)
	ctx := context.Background()

	d.NotifyLike(ctx, "u2", "u1", "p1")
	d.NotifyFollow(ctx, "u2", "u3")
	d.NotifyComment(ctx, "u2", "u4", "p1", "c1", "nice")

	assert.True(t, flags.unread["u2"])
	assert.Equal(t, 1, flags.writes)
}

func TestCommentTupleCarriesCommentID(t *testing.T) {
	repo := newFakeRepo("u2")
	d := NewDispatcher(repo, newFakeFlags(), nil)
	ctx := context.Background()

	d.NotifyComment(ctx, "u2", "u1", "p1", "c1", "first")
	d.NotifyComment(ctx, "u2", "u1", "p1", "c2", "second")

	d.RetractComment(ctx, "u2", "u1", "p1", "c1")
	require.Len(t, repo.feeds["u2"], 1)
	assert.Equal(t, "c2", repo.feeds["u2"][0].CommentID)
	assert.Equal(t, "second", repo.feeds["u2"][0].Text)
}

func TestBadgeNotifiesOwnFeed(t *testing.T) {
	repo := newFakeRepo("u1")
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)

	d.NotifyBadge(context.Background(), "u1", "You earned the Contributor badge")

	require.Len(t, repo.feeds["u1"], 1)
	assert.Equal(t, KindBadge, repo.feeds["u1"][0].Type)
	assert.Empty(t, repo.feeds["u1"][0].User)
	assert.True(t, flags.unread["u1"])
}

func TestDispatchFailureIsSwallowed(t *testing.T) {
	// Recipient has no feed document; the push fails, nothing panics,
	// and the flag stays untouched.
	repo := newFakeRepo()
	flags := newFakeFlags()
	d := NewDispatcher(repo, flags, nil)

	d.NotifyLike(context.Background(), "ghost", "u1", "p1")
	assert.False(t, flags.unread["ghost"])
}
