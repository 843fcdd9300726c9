package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
	"github.com/Olori-Ebi/Eyi-media/internal/user"
)

type fakeRepo struct {
	profiles map[string]Profile
}

func newFakeRepo() *fakeRepo { return &fakeRepo{profiles: map[string]Profile{}} }

func (f *fakeRepo) Init(_ context.Context, userID, bio string, techStack []string, social map[string]string) error {
	f.profiles[userID] = Profile{User: userID, Bio: bio, TechStack: techStack, Social: socialFromMap(social), Badges: []string{}}
	return nil
}

func (f *fakeRepo) ByUser(_ context.Context, userID string) (Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return Profile{}, apperr.NotFound("Profile not found")
	}
	return p, nil
}

func (f *fakeRepo) Save(_ context.Context, p *Profile) error {
	f.profiles[p.User] = *p
	return nil
}

type fakeUsers struct {
	ids   map[string]string
	roles map[string]string
}

func (f *fakeUsers) IDByUsername(_ context.Context, username string) (string, error) {
	id, ok := f.ids[username]
	if !ok {
		return "", apperr.NotFound("User not found")
	}
	return id, nil
}

func (f *fakeUsers) Role(_ context.Context, userID string) (string, error) {
	return f.roles[userID], nil
}

type fakeGraph struct{ following map[string][]string }

func (f *fakeGraph) Following(_ context.Context, userID string) ([]string, error) {
	return f.following[userID], nil
}

type badgeRecorder struct{ calls []string }

func (r *badgeRecorder) NotifyLike(context.Context, string, string, string) {}
func (r *badgeRecorder) RetractLike(context.Context, string, string, string) {}
func (r *badgeRecorder) NotifyComment(context.Context, string, string, string, string, string) {}
func (r *badgeRecorder) RetractComment(context.Context, string, string, string, string) {}
func (r *badgeRecorder) NotifyReply(context.Context, string, string, string, string, string) {}
func (r *badgeRecorder) RetractReply(context.Context, string, string, string, string) {}
func (r *badgeRecorder) NotifyFollow(context.Context, string, string) {}
func (r *badgeRecorder) RetractFollow(context.Context, string, string) {}

func (r *badgeRecorder) NotifyBadge(_ context.Context, recipientID, text string) {
	r.calls = append(r.calls, recipientID+": "+text)
}

func TestByUsernameResolvesID(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Init(context.Background(), "u1", "hi", nil, nil))
	users := &fakeUsers{ids: map[string]string{"ada": "u1"}}
	svc := NewService(repo, users, &fakeGraph{}, &badgeRecorder{})

	p, err := svc.ByUsername(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.User)
	assert.Equal(t, "hi", p.Bio)

	_, err = svc.ByUsername(context.Background(), "ghost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateReplacesProfileFields(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Init(context.Background(), "u1", "old", []string{"go"}, nil))
	svc := NewService(repo, &fakeUsers{}, &fakeGraph{}, &badgeRecorder{})

	p, err := svc.Update(context.Background(), "u1", "new bio", []string{"go", "redis"}, map[string]string{"github": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, []string{"go", "redis"}, p.TechStack)
	assert.Equal(t, "ada", p.Social.Github)
}

func TestFollowingsProfilesSkipsMissing(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx, "u2", "two", nil, nil))
	require.NoError(t, repo.Init(ctx, "u4", "four", nil, nil))

	users := &fakeUsers{ids: map[string]string{"ada": "u1"}}
	graph := &fakeGraph{following: map[string][]string{"u1": {"u2", "u3", "u4"}}}
	svc := NewService(repo, users, graph, &badgeRecorder{})

	out, err := svc.FollowingsProfiles(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "u2", out[0].User)
	assert.Equal(t, "u4", out[1].User)
}

func TestAwardBadgeRootOnly(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx, "u1", "", nil, nil))
	users := &fakeUsers{
		ids:   map[string]string{"ada": "u1"},
		roles: map[string]string{"admin": user.RoleRoot},
	}
	rec := &badgeRecorder{}
	svc := NewService(repo, users, &fakeGraph{}, rec)

	_, err := svc.AwardBadge(ctx, "u2", "ada", "Contributor")
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
	assert.Empty(t, rec.calls)

	_, err = svc.AwardBadge(ctx, "admin", "ada", "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	p, err := svc.AwardBadge(ctx, "admin", "ada", "Contributor")
	require.NoError(t, err)
	assert.Equal(t, []string{"Contributor"}, p.Badges)
	assert.Equal(t, []string{"u1: You earned the Contributor badge"}, rec.calls)
}
