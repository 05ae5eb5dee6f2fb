package service

import (
	"context"

	"go.uber.org/zap"

	"meterportal/internal/auth"
	"meterportal/internal/logging"
	"meterportal/internal/model"
	"meterportal/internal/warehouse"
)

// DashboardURLResolver maps a project to its private dashboard.
type DashboardURLResolver func(project string) string

// DashboardService lists the private dashboards available to a user.
type DashboardService interface {
	List(ctx context.Context, user model.User) ([]model.Dashboard, error)
}

type dashboardService struct {
	access   AccessService
	wh       warehouse.Warehouse
	catalog  warehouse.Catalog
	projects []string
	urlFor   DashboardURLResolver
	log      *zap.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(access AccessService, wh warehouse.Warehouse, catalog warehouse.Catalog, projects []string, urlFor DashboardURLResolver, log *zap.Logger) DashboardService {
	return &dashboardService{
		access:   access,
		wh:       wh,
		catalog:  catalog,
		projects: projects,
		urlFor:   urlFor,
		log:      logging.Component(log, "dashboard"),
	}
}

// List returns one dashboard per project with the properties of the user's participants.
func (s *dashboardService) List(ctx context.Context, user model.User) ([]model.Dashboard, error) {
	grants, err := s.access.Grants(ctx, user)
	if err != nil {
		return nil, err
	}
	grants = auth.Collapse(grants)
	if len(grants) == 0 {
		return nil, ErrNoParticipants
	}

	numbers := make([]int, 0, len(grants))
	for _, g := range grants {
		numbers = append(numbers, g.Number)
	}

	dashboards := make([]model.Dashboard, 0, len(s.projects))
	for _, project := range s.projects {
		rows := warehouse.QueryOrEmpty(ctx, s.wh, s.log, project, s.catalog.AssignedProperties(numbers))
		properties := make([]string, 0, len(rows))
		for _, r := range rows {
			if uri := r.String("property_uri"); uri != "" {
				properties = append(properties, uri)
			}
		}
		dashboards = append(dashboards, model.Dashboard{
			Project:    project,
			URI:        s.urlFor(project),
			Properties: properties,
		})
	}
	return dashboards, nil
}
