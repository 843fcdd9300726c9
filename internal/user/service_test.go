package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/apperr"
)

type fakeRepo struct {
	users map[string]User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{users: map[string]User{}} }

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeRepo) ByID(_ context.Context, id string) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, apperr.NotFound("User not found")
	}
	return u, nil
}

func (f *fakeRepo) findBy(match func(User) bool) (User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return User{}, apperr.NotFound("User not found")
}

func (f *fakeRepo) ByEmail(_ context.Context, email string) (User, error) {
	return f.findBy(func(u User) bool { return u.Email == email })
}

func (f *fakeRepo) ByUsername(_ context.Context, username string) (User, error) {
	return f.findBy(func(u User) bool { return u.Username == username })
}

func (f *fakeRepo) ByVerificationToken(_ context.Context, token string) (User, error) {
	return f.findBy(func(u User) bool { return token != "" && u.VerificationToken == token })
}

func (f *fakeRepo) Save(_ context.Context, u *User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeRepo) UserExists(_ context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeRepo) UnreadFlag(ctx context.Context, id string) (bool, error) {
	u, err := f.ByID(ctx, id)
	return u.UnreadNotification, err
}

func (f *fakeRepo) SetUnreadFlag(ctx context.Context, id string, v bool) error {
	u, err := f.ByID(ctx, id)
	if err != nil {
		return err
	}
	u.UnreadNotification = v
	f.users[id] = u
	return nil
}

func (f *fakeRepo) Role(ctx context.Context, id string) (string, error) {
	u, err := f.ByID(ctx, id)
	return u.Role, err
}

func (f *fakeRepo) IDByUsername(ctx context.Context, username string) (string, error) {
	u, err := f.ByUsername(ctx, username)
	return u.ID, err
}

type fakeInit struct {
	graphs   []string
	feeds    []string
	profiles []string
}

func (f *fakeInit) EnsureGraph(_ context.Context, userID string) error {
	f.graphs = append(f.graphs, userID)
	return nil
}

func (f *fakeInit) EnsureFeed(_ context.Context, userID string) error {
	f.feeds = append(f.feeds, userID)
	return nil
}

func (f *fakeInit) Init(_ context.Context, userID, bio string, techStack []string, social map[string]string) error {
	f.profiles = append(f.profiles, userID)
	return nil
}

func newTestService(repo *fakeRepo) (Service, *fakeInit) {
	boot := &fakeInit{}
	return NewService(repo, boot, boot, boot), boot
}

func TestSignupValidations(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "short")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, _, err = svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Ada Two", "ada2", "ADA@dev.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	_, _, err = svc.Signup(ctx, "Impostor", "Ada", "other@dev.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestSignupNormalizesAndHashes(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	u, tok, err := svc.Signup(context.Background(), "Ada", "AdaDev", "Ada@Dev.IO", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "adadev", u.Username)
	assert.Equal(t, "ada@dev.io", u.Email)
	assert.NotEmpty(t, u.VerificationToken)
	assert.False(t, u.IsVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
}

func TestOnboardVerifiesAndSeedsDocuments(t *testing.T) {
	repo := newFakeRepo()
	svc, boot := newTestService(repo)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "secret123")
	require.NoError(t, err)

	// Not verified yet: signin refused.
	_, err = svc.Signin(ctx, "ada@dev.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify your email")

	tok, err := svc.CompleteOnboard(ctx, u.VerificationToken, OnboardInput{Bio: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	assert.Equal(t, []string{u.ID}, boot.profiles)
	assert.Equal(t, []string{u.ID}, boot.graphs)
	assert.Equal(t, []string{u.ID}, boot.feeds)

	// The token is single-use.
	_, err = svc.CompleteOnboard(ctx, u.VerificationToken, OnboardInput{})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Signin(ctx, "ada@dev.io", "secret123")
	assert.NoError(t, err)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "secret123")
	require.NoError(t, err)
	_, err = svc.CompleteOnboard(ctx, u.VerificationToken, OnboardInput{})
	require.NoError(t, err)

	_, err = svc.Signin(ctx, "ada@dev.io", "wrongpass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")

	_, err = svc.Signin(ctx, "nobody@dev.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestUpdateInfoUsernameCollision(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	a, _, err := svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "secret123")
	require.NoError(t, err)
	_, _, err = svc.Signup(ctx, "Bob", "bob", "bob@dev.io", "secret123")
	require.NoError(t, err)

	_, err = svc.UpdateInfo(ctx, a.ID, "", "bob", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")

	// Re-claiming your own username is fine.
	u, err := svc.UpdateInfo(ctx, a.ID, "Ada L.", "ada", "/api/v1/media/pic.png")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", u.Name)
	assert.Equal(t, "/api/v1/media/pic.png", u.ProfilePicURL)
}

func TestUpdatePassword(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Ada", "ada", "ada@dev.io", "secret123")
	require.NoError(t, err)
	_, err = svc.CompleteOnboard(ctx, u.VerificationToken, OnboardInput{})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, u.ID, "wrong", "newsecret")
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	err = svc.UpdatePassword(ctx, u.ID, "secret123", "tiny")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "secret123", "newsecret"))
	_, err = svc.Signin(ctx, "ada@dev.io", "newsecret")
	assert.NoError(t, err)
}
