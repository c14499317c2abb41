package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int64
	findErr   error
	updateErr error
	updated   map[int64]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), updated: make(map[int64]string)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			r.updated[id] = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = active
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestAuthService(t *testing.T, repo *stubUserRepo) (*AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("secret"))
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, auth.NewPasswordHasher(bcrypt.MinCost), tokens, zerolog.Nop()), tokens
}

func strPtr(s string) *string { return &s }

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "secret1", TeamID: strPtr("teamA"),
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if user.TeamID == nil || *user.TeamID != "teamA" {
		t.Fatalf("unexpected team: %v", user.TeamID)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt must be set")
	}
}

func TestAuthService_Register_WithoutTeam(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "nomad", Email: "n@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.TeamID != nil {
		t.Fatalf("expected no team, got %q", *user.TeamID)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@x.com", Password: "pw"},
		{Username: "a", Email: "", Password: "pw"},
		{Username: "a", Email: "a@x.com", Password: ""},
		{Username: "   ", Email: "a@x.com", Password: "pw"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "a", Email: "a@x.com", Password: string(long)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw"})
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "other@x.com", Password: "pw2"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw"})
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "robert", Email: "bob@x.com", Password: "pw"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc, _ := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "a", Email: "a@x.com", Password: "pw"})
	if !errors.Is(err, repo.findErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "carol@x.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	sub, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if sub != "carol" {
		t.Fatalf("expected subject carol, got %q", sub)
	}
}

func TestAuthService_Login_TokenLivesThirtyMinutes(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "carol@x.com", Password: "s3cret"})

	start := time.Now()
	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Past the 15 minute default but inside the 30 minute login lifetime.
	if _, err := tokens.WithClock(func() time.Time { return start.Add(20 * time.Minute) }).Validate(token); err != nil {
		t.Fatalf("token should still be valid after 20m: %v", err)
	}
	if _, err := tokens.WithClock(func() time.Time { return start.Add(31 * time.Minute) }).Validate(token); err == nil {
		t.Fatalf("token should be expired after 31m")
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Email: "dave@x.com", Password: "goodpass"})

	_, wrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, noUser := svc.Login(context.Background(), "ghost", "badpass")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) || !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v / %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc, _ := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), "dave", "pw")
	if errors.Is(err, domain.ErrInvalidCredentials) || !errors.Is(err, repo.findErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_UpgradesWeakHash(t *testing.T) {
	repo := newStubUserRepo()
	tokens, _ := auth.NewTokenService([]byte("secret"))
	svc := NewAuthService(repo, auth.NewPasswordHasher(bcrypt.MinCost+1), tokens, zerolog.Nop())

	weak, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	repo.users["erin"] = &domain.User{ID: 7, Username: "erin", PasswordHash: string(weak), IsActive: true}
	repo.nextID = 7

	if _, err := svc.Login(context.Background(), "erin", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	upgraded, ok := repo.updated[7]
	if !ok {
		t.Fatalf("expected hash to be upgraded")
	}
	if cost, _ := bcrypt.Cost([]byte(upgraded)); cost != bcrypt.MinCost+1 {
		t.Fatalf("expected upgraded cost %d, got %d", bcrypt.MinCost+1, cost)
	}
	if _, err := svc.Login(context.Background(), "erin", "pw"); err != nil {
		t.Fatalf("login with upgraded hash failed: %v", err)
	}
}

func TestAuthService_Login_UpgradeFailureIsNonFatal(t *testing.T) {
	repo := newStubUserRepo()
	repo.updateErr = errors.New("write conflict")
	tokens, _ := auth.NewTokenService([]byte("secret"))
	svc := NewAuthService(repo, auth.NewPasswordHasher(bcrypt.MinCost+1), tokens, zerolog.Nop())

	weak, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	repo.users["erin"] = &domain.User{ID: 7, Username: "erin", PasswordHash: string(weak), IsActive: true}

	if _, err := svc.Login(context.Background(), "erin", "pw"); err != nil {
		t.Fatalf("expected login to succeed despite upgrade failure, got %v", err)
	}
}

func TestAuthService_Deactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	user, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw"})

	if err := svc.Deactivate(context.Background(), user); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if repo.users["alice"].IsActive {
		t.Fatalf("expected alice to be inactive")
	}
}
