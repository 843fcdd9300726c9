package follow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

type fakeRepo struct {
	graphs map[string]Graph
}

func newFakeRepo(users ...string) *fakeRepo {
	f := &fakeRepo{graphs: map[string]Graph{}}
	for _, u := range users {
		f.graphs[u] = Graph{User: u, Followers: []Entry{}, Following: []Entry{}}
	}
	return f
}

func (f *fakeRepo) EnsureGraph(_ context.Context, userID string) error {
	if _, ok := f.graphs[userID]; !ok {
		f.graphs[userID] = Graph{User: userID, Followers: []Entry{}, Following: []Entry{}}
	}
	return nil
}

func (f *fakeRepo) ByUser(_ context.Context, userID string) (Graph, error) {
	g, ok := f.graphs[userID]
	if !ok {
		return Graph{}, apperr.NotFound("User not found")
	}
	return g, nil
}

func (f *fakeRepo) Save(_ context.Context, g *Graph) error {
	f.graphs[g.User] = *g
	return nil
}

func (f *fakeRepo) Following(ctx context.Context, userID string) ([]string, error) {
	g, err := f.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(g.Following))
	for i, e := range g.Following {
		out[i] = e.User
	}
	return out, nil
}

type followRecorder struct{ calls []string }

func (r *followRecorder) NotifyLike(context.Context, string, string, string) {}
func (r *followRecorder) RetractLike(context.Context, string, string, string) {}
func (r *followRecorder) NotifyComment(context.Context, string, string, string, string, string) {}
func (r *followRecorder) RetractComment(context.Context, string, string, string, string) {}
func (r *followRecorder) NotifyReply(context.Context, string, string, string, string, string) {}
func (r *followRecorder) RetractReply(context.Context, string, string, string, string) {}

func (r *followRecorder) NotifyFollow(_ context.Context, recipientID, actorID string) {
	r.calls = append(r.calls, "follow "+recipientID+" "+actorID)
}

func (r *followRecorder) RetractFollow(_ context.Context, recipientID, actorID string) {
	r.calls = append(r.calls, "unfollow "+recipientID+" "+actorID)
}

func (r *followRecorder) NotifyBadge(context.Context, string, string) {}

func TestFollowUpdatesBothSides(t *testing.T) {
	repo := newFakeRepo("u1", "u2")
	rec := &followRecorder{}
	svc := NewService(repo, rec)

	following, followers, err := svc.FollowOrUnfollow(context.Background(), "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)
	require.Len(t, followers, 1)
	assert.Equal(t, "u1", followers[0].User)

	// Both documents hold the edge.
	assert.Equal(t, []Entry{{User: "u2"}}, repo.graphs["u1"].Following)
	assert.Equal(t, []Entry{{User: "u1"}}, repo.graphs["u2"].Followers)
	assert.Empty(t, repo.graphs["u1"].Followers)
	assert.Empty(t, repo.graphs["u2"].Following)

	assert.Equal(t, []string{"follow u2 u1"}, rec.calls)
}

func TestSecondToggleUnfollows(t *testing.T) {
	repo := newFakeRepo("u1", "u2")
	rec := &followRecorder{}
	svc := NewService(repo, rec)
	ctx := context.Background()

	_, _, err := svc.FollowOrUnfollow(ctx, "u1", "u2")
	require.NoError(t, err)

	following, followers, err := svc.FollowOrUnfollow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, followers)

	assert.Empty(t, repo.graphs["u1"].Following)
	assert.Empty(t, repo.graphs["u2"].Followers)

	assert.Equal(t, []string{"follow u2 u1", "unfollow u2 u1"}, rec.calls)
}

func TestFollowPrependsNewest(t *testing.T) {
	repo := newFakeRepo("u1", "u2", "u3")
	svc := NewService(repo, &followRecorder{})
	ctx := context.Background()

	_, _, err := svc.FollowOrUnfollow(ctx, "u1", "u3")
	require.NoError(t, err)
	_, _, err = svc.FollowOrUnfollow(ctx, "u2", "u3")
	require.NoError(t, err)

	followers, err := svc.Followers(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "u2", followers[0].User)
	assert.Equal(t, "u1", followers[1].User)
}

func TestFollowConvergesFromHalfAppliedState(t *testing.T) {
	// The follower's list was written but the target's was not, as after
	// a crash between the two saves. Retrying the toggle lands in a
	// consistent unfollowed state, and one more toggle fully follows.
	repo := newFakeRepo("u1", "u2")
	repo.graphs["u1"] = Graph{User: "u1", Followers: []Entry{}, Following: []Entry{{User: "u2"}}}
	svc := NewService(repo, &followRecorder{})
	ctx := context.Background()

	following, _, err := svc.FollowOrUnfollow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, repo.graphs["u1"].Following)
	assert.Empty(t, repo.graphs["u2"].Followers)

	following, _, err = svc.FollowOrUnfollow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, []Entry{{User: "u2"}}, repo.graphs["u1"].Following)
	assert.Equal(t, []Entry{{User: "u1"}}, repo.graphs["u2"].Followers)
}

func TestSelfFollowRejected(t *testing.T) {
	// Follower and target resolve to the same document here, so the two
	// saves would overwrite each other and strand the user in their own
	// followers list. The toggle must refuse before touching the store.
	repo := newFakeRepo("u1")
	rec := &followRecorder{}
	svc := NewService(repo, rec)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, err := svc.FollowOrUnfollow(ctx, "u1", "u1")
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	}

	assert.Empty(t, repo.graphs["u1"].Followers)
	assert.Empty(t, repo.graphs["u1"].Following)
	assert.Empty(t, rec.calls)
}

func TestFollowUnknownUser(t *testing.T) {
	repo := newFakeRepo("u1")
	svc := NewService(repo, &followRecorder{})

	_, _, err := svc.FollowOrUnfollow(context.Background(), "u1", "ghost")
	assert.True(t, apperr.IsNotFound(err))
}
