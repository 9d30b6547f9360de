package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "roomfinder/internal/domain/auth"
	domainuser "roomfinder/internal/domain/user"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service implements the demo sign-in flow. Passwords are compared in plain
// text against the seeded user directory; there is no hashing and no account
// recovery, matching the mock it replaces.
type Service struct {
	Users      domainuser.Repository
	Sessions   domainauth.SessionStore
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type SignupParams struct {
	Email    string
	Name     string
	Password string
	Role     domainuser.Role
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

type ResolveResult struct {
	User    *domainuser.User
	Session *domainauth.Session
}

func (s *Service) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, domainuser.ErrEmailRequired
	}
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}
	account, err := domainuser.NewUser(domainuser.CreateParams{
		ID:        domainuser.ID(uuid.NewString()),
		Email:     email,
		Name:      params.Name,
		Password:  params.Password,
		Role:      params.Role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, account); err != nil {
		return nil, err
	}
	token, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user signed up", "user_id", account.ID, "role", account.Role)
	}
	return &AuthResult{User: account, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	account, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Password != params.Password {
		return nil, ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", account.ID)
	}
	return &AuthResult{User: account, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.ensureDependencies(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, domainauth.Token(token))
}

func (s *Service) ResolveToken(ctx context.Context, token string) (*ResolveResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainauth.ErrTokenRequired
	}
	session, err := s.Sessions.Get(ctx, domainauth.Token(token))
	if err != nil {
		return nil, err
	}
	account, err := s.Users.ByID(ctx, session.UserID)
	if err != nil {
		_ = s.Sessions.Delete(ctx, session.Token)
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	return &ResolveResult{User: account, Session: session}, nil
}

func (s *Service) issueSession(ctx context.Context, account *domainuser.User) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  domainauth.Token(token),
		UserID: account.ID,
		Role:   account.Role,
		TTL:    s.sessionTTL(),
		Now:    time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Users == nil:
		return errors.New("auth: user repository required")
	case s.Sessions == nil:
		return errors.New("auth: session store required")
	case s.Tokens == nil:
		return errors.New("auth: token generator required")
	default:
		return nil
	}
}
