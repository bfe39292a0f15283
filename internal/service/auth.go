package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data"
	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/observability/metrics"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
)

const passwordSessionDuration = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	Users    core.UserRepository
	Identity ports.IdentityCache
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// AuthService orchestrates authentication flows by coordinating provider,
// role mapping, the user directory, and session persistence.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper
	users    core.UserRepository
	identity ports.IdentityCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var (
	errSessionExpired = errors.New("session expired")

	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		users:    opts.Users,
		identity: opts.Identity,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "auth_service"),
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes an authentication flow by exchanging the code for an
// identity, mapping roles, reconciling the user directory, and persisting a
// session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	// Map provider groups to application role
	role := s.roles.Map(identity.Groups)

	// Directory reconciliation must never block login
	s.ensureUserRecord(ctx, identity, role)

	session := domainauth.Session{
		ID:               generateSessionID(),
		UserID:           identity.AuthID,
		FirstName:        identity.FirstName,
		LastName:         identity.LastName,
		Email:            identity.Email,
		Role:             role,
		EmailConfirmedAt: identity.EmailConfirmedAt,
		ExpiresAt:        identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	if s.metrics != nil {
		s.metrics.IncrementSessionsStarted()
	}

	return &CompleteLoginResult{Session: session}, nil
}

// PasswordSignup registers a new local account, creating the user row and an
// incomplete profile stub in one transaction, then starts a session.
func (s *AuthService) PasswordSignup(ctx context.Context, req model.CreateUserRequest) (*domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	authID := uuid.New().String()
	hashStr := string(hash)
	user, err := s.users.Create(ctx, core.CreateUserParams{
		AuthID:       &authID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         nilIfEmpty(req.Role),
		PasswordHash: &hashStr,
	})
	if err != nil {
		return nil, err
	}

	return s.startPasswordSession(ctx, authID, user)
}

// PasswordLogin authenticates a local account by email and password.
func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	// Accounts imported from the legacy directory may predate the auth
	// service; mint and attach an auth id on first login.
	authID := ""
	if user.AuthID != nil {
		authID = *user.AuthID
	} else {
		authID = uuid.New().String()
		if _, attachErr := s.users.AttachAuthID(ctx, user.ID, authID); attachErr != nil {
			return nil, fmt.Errorf("attach auth id: %w", attachErr)
		}
	}

	return s.startPasswordSession(ctx, authID, user)
}

func (s *AuthService) startPasswordSession(ctx context.Context, authID string, user *model.User) (*domainauth.Session, error) {
	role := domainauth.RoleUnknown
	if user.Role != nil {
		role = domainauth.ParseRole(*user.Role)
	}

	session := domainauth.Session{
		ID:               generateSessionID(),
		UserID:           authID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		Role:             role,
		EmailConfirmedAt: user.ConfirmedAt,
		ExpiresAt:        time.Now().Add(passwordSessionDuration),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementSessionsStarted()
	}

	// Warm the identity cache so the first resolver pass skips the directory scan.
	if s.identity != nil {
		if err := s.identity.SetUserID(ctx, authID, user.ID); err != nil {
			s.logger.WarnContext(ctx, "warm identity cache", "err", err)
		}
	}

	return &session, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		// Clean up expired session
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session and invalidates the cached identity mapping so a
// following sign-in never resolves through a stale entry.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err == nil && s.identity != nil {
		if invErr := s.identity.Invalidate(ctx, session.UserID); invErr != nil {
			s.logger.WarnContext(ctx, "invalidate identity cache", "err", invErr)
		}
	}

	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	if s.metrics != nil {
		s.metrics.IncrementSessionsEnded()
	}

	return nil
}

// ensureUserRecord reconciles the user directory with a provider identity.
// Failures are logged and swallowed; the resolver repairs anything left over.
func (s *AuthService) ensureUserRecord(ctx context.Context, identity domainauth.Identity, role domainauth.Role) {
	if s.users == nil || identity.AuthID == "" {
		return
	}

	if _, err := s.users.GetByAuthID(ctx, identity.AuthID); err == nil {
		return
	} else if !errors.Is(err, data.ErrUserNotFound) {
		s.logger.WarnContext(ctx, "directory lookup by auth id", "err", err)
		return
	}

	// Known email with a missing or stale link gets repaired in place.
	if user, err := s.users.GetByEmail(ctx, identity.Email); err == nil {
		if _, attachErr := s.users.AttachAuthID(ctx, user.ID, identity.AuthID); attachErr != nil {
			s.logger.WarnContext(ctx, "attach auth id", "user_id", user.ID, "err", attachErr)
		}
		return
	} else if !errors.Is(err, data.ErrUserNotFound) {
		s.logger.WarnContext(ctx, "directory lookup by email", "err", err)
		return
	}

	params := core.CreateUserParams{
		AuthID:    &identity.AuthID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}
	if role != domainauth.RoleUnknown {
		roleStr := string(role)
		params.Role = &roleStr
	}
	if _, err := s.users.Create(ctx, params); err != nil {
		s.logger.WarnContext(ctx, "create directory record", "err", err)
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	return uuid.New().String()
}
