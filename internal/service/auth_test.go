package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/finflow/internal/models"
	"github.com/finflow/finflow/internal/security"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *memUserRepo) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.ErrDuplicate
		}
	}
	user.UID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.UID] = &copied
	return nil
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memUserRepo) GetUserByID(_ context.Context, uid int64) (*models.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.UID]; !ok {
		return models.ErrNotFound
	}
	copied := *user
	m.users[user.UID] = &copied
	return nil
}

func (m *memUserRepo) DeleteUser(_ context.Context, uid int64) error {
	if _, ok := m.users[uid]; !ok {
		return models.ErrNotFound
	}
	delete(m.users, uid)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	issuer, err := security.NewTokenIssuer("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	repo := newMemUserRepo()
	return NewAuthService(repo, issuer), repo
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)
	assert.NotZero(t, user.UID)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, security.CheckPassword("secret123", user.PasswordHash))

	stored := repo.users[user.UID]
	assert.NotContains(t, stored.PasswordHash, "secret123")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "other", "alice@example.com", "different", "")
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestLogin_IssuesDecodableToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	authed, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.UID, authed.UID)
	assert.Equal(t, "alice@example.com", authed.Email)
}

// Login must not reveal whether the email exists: unknown email and wrong
// password return the identical error.
func TestLogin_UniformCredentialError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, errWrongPw := svc.Login(context.Background(), "alice@example.com", "wrong")

	assert.ErrorIs(t, errUnknown, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, models.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), user.UID))

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	newPassword := "newsecret456"
	newName := "alice b"
	updated, err := svc.UpdateUser(context.Background(), user.UID, &newName, &newPassword, nil)
	require.NoError(t, err)

	assert.Equal(t, "alice b", updated.Name)
	assert.True(t, security.CheckPassword("newsecret456", updated.PasswordHash))

	_, err = svc.Login(context.Background(), "alice@example.com", "secret123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "alice@example.com", "newsecret456")
	assert.NoError(t, err)
}
