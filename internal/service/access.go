package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"meterportal/internal/auth"
	"meterportal/internal/logging"
	"meterportal/internal/model"
	"meterportal/internal/repository"
)

// IDTokenVerifier checks that an ID token was issued to email.
type IDTokenVerifier interface {
	Verify(ctx context.Context, email, idToken string) (*auth.TokenInfo, error)
}

// SessionIssuer signs portal sessions.
type SessionIssuer interface {
	Issue(user model.User) (model.Session, error)
}

// AccessService resolves which participants a user may work with.
type AccessService interface {
	// ResolveParticipants verifies the ID token and returns the user's grants.
	// Verification and lookup failures are logged and yield an empty list;
	// only missing parameters are reported as an error.
	ResolveParticipants(ctx context.Context, email, idToken string) ([]model.Grant, error)

	// Grants returns the grants of an already authenticated user.
	Grants(ctx context.Context, user model.User) ([]model.Grant, error)

	// StartSession verifies the ID token and issues a portal session.
	StartSession(ctx context.Context, email, idToken string) (*model.Session, error)
}

type accessService struct {
	verifier IDTokenVerifier
	groups   repository.GroupRepository
	sessions SessionIssuer
	log      *zap.Logger
}

// NewAccessService constructs a new AccessService.
func NewAccessService(verifier IDTokenVerifier, groups repository.GroupRepository, sessions SessionIssuer, log *zap.Logger) AccessService {
	return &accessService{
		verifier: verifier,
		groups:   groups,
		sessions: sessions,
		log:      logging.Component(log, "access"),
	}
}

func (s *accessService) ResolveParticipants(ctx context.Context, email, idToken string) ([]model.Grant, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(idToken) == "" {
		return nil, auth.ErrTokenRequired
	}

	if _, err := s.verifier.Verify(ctx, email, idToken); err != nil {
		s.log.Warn("id_token_rejected", zap.String("email", email), zap.Error(err))
		return []model.Grant{}, nil
	}

	grants, err := s.Grants(ctx, model.User{Email: email})
	if err != nil {
		s.log.Error("group_lookup_failed", zap.String("email", email), zap.Error(err))
		return []model.Grant{}, nil
	}
	return grants, nil
}

func (s *accessService) Grants(ctx context.Context, user model.User) ([]model.Grant, error) {
	groups, err := s.groups.GroupsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return auth.GrantsFromGroups(groups), nil
}

func (s *accessService) StartSession(ctx context.Context, email, idToken string) (*model.Session, error) {
	info, err := s.verifier.Verify(ctx, email, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenRequired) {
			return nil, err
		}
		s.log.Warn("id_token_rejected", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	session, err := s.sessions.Issue(model.User{Email: strings.ToLower(info.Email), Name: info.Name})
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	s.log.Info("session_started", zap.String("email", strings.ToLower(info.Email)))
	return &session, nil
}
