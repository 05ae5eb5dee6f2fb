package handler

import (
	"github.com/gofiber/fiber/v2"

	"meterportal/internal/http/middleware"
	"meterportal/internal/model"
	"meterportal/internal/service"
)

// participantParams reads the :env and :number route params.
func participantParams(c *fiber.Ctx) (string, int, bool) {
	number, err := c.ParamsInt("number")
	if err != nil || number <= 0 {
		return "", 0, false
	}
	return c.Params("env"), number, true
}

// GetPortal builds the view-model for every participant of the session user.
//
// @Summary  Build the portal view-model
// @Tags     portal
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} model.Portal
// @Failure  401 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/portal [get]
func GetPortal(svc service.PortalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		p, err := svc.Build(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// GetParticipant models a single participant.
//
// @Summary  Model one participant
// @Tags     portal
// @Produce  json
// @Security BearerAuth
// @Param    env    path string true "project"
// @Param    number path int    true "participant number"
// @Success  200 {object} model.Participant
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/participants/{env}/{number} [get]
func GetParticipant(svc service.PortalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		env, number, ok := participantParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PARTICIPANT", "invalid participant")
		}
		p, err := svc.Participant(c.UserContext(), user, env, number)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListDashboards returns the private dashboard configuration per project.
//
// @Summary  List private dashboards
// @Tags     portal
// @Produce  json
// @Security BearerAuth
// @Success  200 {array}  model.Dashboard
// @Failure  404 {object} errorPayload
// @Router   /api/dashboards [get]
func ListDashboards(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		ds, err := svc.List(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		if ds == nil {
			ds = []model.Dashboard{}
		}
		return c.JSON(ds)
	}
}
