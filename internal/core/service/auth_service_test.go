package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, fields ports.UpdateUserFields) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			if fields.Email != nil {
				delete(r.users, u.Email)
				u.Email = *fields.Email
				r.users[u.Email] = u
			}
			if fields.Name != nil {
				u.Name = *fields.Name
			}
			if fields.Role != nil {
				u.Role = *fields.Role
			}
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// stubRegistry is an in-memory RefreshTokenRegistry.
type stubRegistry struct {
	consumed map[string]bool
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{consumed: make(map[string]bool)}
}

func (r *stubRegistry) IsConsumed(_ context.Context, jti string) (bool, error) {
	return r.consumed[jti], nil
}

func (r *stubRegistry) Consume(_ context.Context, jti string, _ time.Duration) error {
	r.consumed[jti] = true
	return nil
}

func newTestAuthService(registry ports.RefreshTokenRegistry) (*AuthService, *stubUserRepo, *token.Codec) {
	repo := newStubUserRepo()
	codec := token.NewCodec("test-secret")
	return NewAuthService(repo, codec, registry, zerolog.Nop()), repo, codec
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService(nil)

	user, err := svc.Register(context.Background(), "a@x.com", "secret1", "A", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _, _ := newTestAuthService(nil)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret1", "A", "SUPERUSER"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(nil)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret1", "A", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@x.com", "other", "A2", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, codec := newTestAuthService(nil)

	if _, err := svc.Register(context.Background(), "carol@x.com", "s3cret", "Carol", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.PasswordHash == "" {
		t.Fatalf("expected full user from login")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	access, err := codec.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if access.TokenType != token.TypeAccess || access.Role != domain.RoleAdmin {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := codec.Verify(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if refresh.TokenType != token.TypeRefresh || refresh.UserID != access.UserID {
		t.Fatalf("unexpected refresh claims: %+v", refresh)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(nil)

	if _, err := svc.Register(context.Background(), "dave@x.com", "goodpass", "Dave", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, errMissing := svc.Login(context.Background(), "ghost@x.com", "whatever")
	_, _, errWrongPw := svc.Login(context.Background(), "dave@x.com", "badpass")

	if errMissing != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errMissing)
	}
	if errWrongPw != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPw)
	}
	if errMissing.Error() != errWrongPw.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errMissing, errWrongPw)
	}
}

func TestAuthService_Refresh_PreservesRole(t *testing.T) {
	svc, _, codec := newTestAuthService(nil)

	if _, err := svc.Register(context.Background(), "admin@x.com", "s3cret", "Root", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, _, err := svc.Login(context.Background(), "admin@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims, err := codec.Verify(fresh.AccessToken)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN after refresh, got %s", claims.Role)
	}
	if claims.TokenType != token.TypeAccess {
		t.Fatalf("expected access type, got %s", claims.TokenType)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _, codec := newTestAuthService(nil)

	access, err := codec.IssueAccess(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), access); err != domain.ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
}

func TestAuthService_Refresh_MissingOrGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(nil)

	if _, err := svc.Refresh(context.Background(), ""); err != domain.ErrMissingRefreshToken {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "garbage"); err != domain.ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

// Stateless baseline: a used refresh token stays valid until it expires.
func TestAuthService_Refresh_StatelessReplayAllowed(t *testing.T) {
	svc, _, codec := newTestAuthService(nil)

	refresh, err := codec.IssueRefresh(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("stateless replay should succeed, got %v", err)
	}
}

// With a registry wired in, each refresh token is one-use.
func TestAuthService_Refresh_OneUseWithRegistry(t *testing.T) {
	registry := newStubRegistry()
	svc, _, codec := newTestAuthService(registry)

	refresh, err := codec.IssueRefresh(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), refresh); err != domain.ErrInvalidRefreshToken {
		t.Fatalf("expected replay to be rejected, got %v", err)
	}
}
