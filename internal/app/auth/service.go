// Package auth handles the two login paths: voters authenticate with their
// citizen ID through the identity verifier and are provisioned on first
// login, officials authenticate with email and password. Both end up with a
// signed session token.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/token"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type Service struct {
	users    domain.UserRepository
	verifier domain.IdentityVerifier
	issuer   token.Issuer
	clock    domain.Clock
	ids      *ids.Generator
}

func NewService(
	users domain.UserRepository,
	verifier domain.IdentityVerifier,
	issuer token.Issuer,
	clk domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
		clock:    clk,
		ids:      idsGen,
	}
}

// Session is a logged-in user together with their signed token.
type Session struct {
	User  domain.User
	Token string
}

// VoterLogin verifies the citizen ID against the identity service and
// provisions a voter user on first login. Repeated logins with the same ID
// resolve to the same user.
func (s *Service) VoterLogin(ctx context.Context, citizenID string) (Session, error) {
	info, ok := s.verifier.Verify(citizenID)
	if !ok {
		return Session{}, fmt.Errorf("%w: citizen id could not be verified", domain.ErrUnauthenticated)
	}

	user, err := s.users.FindByCitizenID(ctx, info.CitizenID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.provisionVoter(ctx, info)
		if err != nil {
			return Session{}, err
		}
	default:
		return Session{}, err
	}

	return s.openSession(user)
}

// provisionVoter inserts a voter user for a freshly verified citizen ID. Two
// concurrent first logins race on the unique citizen_id column; the loser
// re-reads the winner's row.
func (s *Service) provisionVoter(ctx context.Context, info domain.CitizenInfo) (domain.User, error) {
	citizenID := info.CitizenID
	user := domain.User{
		ID:        domain.UserID(s.ids.New()),
		CitizenID: &citizenID,
		Name:      info.TitleTh + info.FirstNameTh + " " + info.LastNameTh,
		Role:      rbac.RoleVoter,
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, domain.ErrConflict) {
		return s.users.FindByCitizenID(ctx, citizenID)
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// OfficialLogin authenticates an official by email and password. Unknown
// email and wrong password return the same error so the response does not
// reveal which half failed.
func (s *Service) OfficialLogin(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	if err != nil {
		return Session{}, err
	}
	if user.Role == rbac.RoleVoter || user.PasswordHash == "" {
		return Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	return s.openSession(user)
}

// Me resolves the current user from the ID carried by their token.
func (s *Service) Me(ctx context.Context, id domain.UserID) (domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Service) openSession(user domain.User) (Session, error) {
	signed, err := s.issuer.Generate(user, s.clock.Now())
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{User: user, Token: signed}, nil
}
