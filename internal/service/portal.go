package service

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meterportal/internal/auth"
	"meterportal/internal/logging"
	"meterportal/internal/model"
	"meterportal/internal/warehouse"
)

// PortalService assembles the portal view-model of a signed-in user.
type PortalService interface {
	// Build models every participant the user is assigned to in every configured project.
	Build(ctx context.Context, user model.User) (*model.Portal, error)

	// Participant models a single participant after checking the user's grant.
	Participant(ctx context.Context, user model.User, env string, number int) (*model.Participant, error)
}

type portalService struct {
	access       AccessService
	participants ParticipantService
	projects     []string
	limit        int
	now          func() time.Time
	log          *zap.Logger
}

// NewPortalService constructs a new PortalService.
func NewPortalService(access AccessService, participants ParticipantService, projects []string, concurrency int, now func() time.Time, log *zap.Logger) PortalService {
	if concurrency <= 0 {
		concurrency = 1
	}
	if now == nil {
		now = time.Now
	}
	return &portalService{
		access:       access,
		participants: participants,
		projects:     projects,
		limit:        concurrency,
		now:          now,
		log:          logging.Component(log, "portal"),
	}
}

func (s *portalService) Build(ctx context.Context, user model.User) (*model.Portal, error) {
	grants, err := s.access.Grants(ctx, user)
	if err != nil {
		return nil, err
	}
	grants = auth.Collapse(grants)
	if len(grants) == 0 {
		return nil, ErrNoParticipants
	}

	stubs := make([]*model.Participant, 0, len(s.projects)*len(grants))
	for _, project := range s.projects {
		for _, g := range grants {
			stubs = append(stubs, model.NewParticipant(project, g))
		}
	}

	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, p := range stubs {
		g.Go(func() error {
			s.participants.Model(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	participants := make([]model.Participant, 0, len(stubs))
	for _, p := range stubs {
		participants = append(participants, *p)
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}
	s.log.Info("portal_built", zap.String("email", user.Email), zap.Int("participants", len(participants)))
	return &model.Portal{
		Name:         name,
		Participants: participants,
		ChartTypes:   warehouse.ChartTypes(),
		GeneratedAt:  s.now().UTC(),
	}, nil
}

func (s *portalService) Participant(ctx context.Context, user model.User, env string, number int) (*model.Participant, error) {
	grant, err := authorize(ctx, s.access, s.projects, user, env, number)
	if err != nil {
		return nil, err
	}
	p := model.NewParticipant(env, grant)
	s.participants.Model(ctx, p)
	return p, nil
}

// authorize returns the user's strongest grant on participant number of env.
func authorize(ctx context.Context, access AccessService, projects []string, user model.User, env string, number int) (model.Grant, error) {
	if number <= 0 || !slices.Contains(projects, env) {
		return model.Grant{}, ErrInvalidParticipant
	}
	grants, err := access.Grants(ctx, user)
	if err != nil {
		return model.Grant{}, err
	}
	for _, g := range auth.Collapse(grants) {
		if g.Number == number {
			return g, nil
		}
	}
	return model.Grant{}, ErrForbidden
}
