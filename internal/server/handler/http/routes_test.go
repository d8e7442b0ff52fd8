package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/finflow/finflow/internal/models"
	"github.com/finflow/finflow/internal/security"
	"github.com/finflow/finflow/internal/service"
)

// memUserRepo is an in-memory service.UserRepository backing the full-flow
// router test.
type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
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

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	issuer, err := security.NewTokenIssuer("test-secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("failed to build token issuer: %v", err)
	}
	authService := service.NewAuthService(&memUserRepo{users: map[int64]*models.User{}, nextID: 1}, issuer)

	return NewRouter(
		&AuthHandler{AuthService: authService},
		&PortfolioHandler{PortfolioService: &fakePortfolioService{}},
		&AssetHandler{AssetService: &fakeAssetService{}},
		&TransactionHandler{TransactionService: &fakeTransactionService{}},
		authService,
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Full account flow: signup, login, fetch the profile with the token, and
// get rejected without one.
func TestRouter_SignupLoginMeFlow(t *testing.T) {
	router := newTestRouter(t)

	// Register alice.
	rec := doJSON(t, router, "POST", "/users/signup",
		`{"name":"alice","email":"alice@example.com","password":"secret123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Errorf("signup response contains a password field: %q", rec.Body.String())
	}

	// Duplicate registration conflicts.
	rec = doJSON(t, router, "POST", "/users/signup",
		`{"name":"alice","email":"alice@example.com","password":"secret123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}

	// Login with the same credentials.
	rec = doJSON(t, router, "POST", "/users/login",
		`{"email":"alice@example.com","password":"secret123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if loginResp.TokenType != "bearer" || loginResp.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", loginResp)
	}

	// Fetch the profile with the token.
	rec = doJSON(t, router, "GET", "/users/me", "", loginResp.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var me map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("failed to decode me response: %v", err)
	}
	if me["name"] != "alice" {
		t.Errorf("expected alice profile, got %v", me)
	}

	// No token means 401.
	rec = doJSON(t, router, "GET", "/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", rec.Code)
	}

	// Garbage token means 401.
	rec = doJSON(t, router, "GET", "/users/me", "", "not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me with bad token: expected 401, got %d", rec.Code)
	}
}

func TestRouter_LoginUniformAcrossPaths(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/users/signup",
		`{"name":"alice","email":"alice@example.com","password":"secret123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}

	unknown := doJSON(t, router, "POST", "/users/login",
		`{"email":"nobody@example.com","password":"secret123"}`, "")
	wrongPw := doJSON(t, router, "POST", "/users/login",
		`{"email":"alice@example.com","password":"wrong"}`, "")

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Errorf("login error bodies differ: %q vs %q", unknown.Body.String(), wrongPw.Body.String())
	}
}

func TestRouter_RejectsNonJSONContentType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/users/signup", bytes.NewBufferString("name=alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// fakePortfolioService satisfies PortfolioService for router assembly.
type fakePortfolioService struct{}

func (f *fakePortfolioService) List(ctx context.Context, userID int64) ([]models.Portfolio, error) {
	return []models.Portfolio{}, nil
}

func (f *fakePortfolioService) Create(ctx context.Context, userID int64, name string) (*models.Portfolio, error) {
	return &models.Portfolio{PortfolioID: 1, UserID: userID, PortfolioName: name}, nil
}

func (f *fakePortfolioService) Rename(ctx context.Context, userID, portfolioID int64, name string) (*models.Portfolio, error) {
	return &models.Portfolio{PortfolioID: portfolioID, UserID: userID, PortfolioName: name}, nil
}

func (f *fakePortfolioService) Delete(ctx context.Context, userID, portfolioID int64) error {
	return nil
}
