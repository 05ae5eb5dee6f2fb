package handler

import (
	"github.com/gofiber/fiber/v2"

	"meterportal/internal/http/middleware"
	"meterportal/internal/model"
	"meterportal/internal/service"
)

type sessionRequest struct {
	Email   string `json:"email" form:"email"`
	IDToken string `json:"id_token" form:"id_token"`
}

// ResolveParticipants lists the participant grants of a Google account.
// Verification and lookup failures answer an empty list.
//
// @Summary  Resolve participant grants for an ID token
// @Tags     access
// @Produce  json
// @Param    email    query string true "account email"
// @Param    id_token query string true "Google ID token"
// @Success  200 {array}  model.Grant
// @Failure  400 {object} errorPayload
// @Router   /portal/resolve-participants [get]
func ResolveParticipants(svc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		grants, err := svc.ResolveParticipants(c.UserContext(), c.Query("email"), c.Query("id_token"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(grants)
	}
}

// CreateSession exchanges a verified ID token for a session token.
// Accepts JSON or form encoded bodies.
//
// @Summary  Start a portal session
// @Tags     access
// @Accept   json
// @Produce  json
// @Param    body body sessionRequest true "credentials"
// @Success  201 {object} model.Session
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Router   /auth/session [post]
func CreateSession(svc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sessionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sess, err := svc.StartSession(c.UserContext(), req.Email, req.IDToken)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// ListGrants returns the grants of the session user.
//
// @Summary  List the participants assigned to the session user
// @Tags     access
// @Produce  json
// @Security BearerAuth
// @Success  200 {array}  model.Grant
// @Failure  401 {object} errorPayload
// @Router   /api/participants [get]
func ListGrants(svc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		grants, err := svc.Grants(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		if grants == nil {
			grants = []model.Grant{}
		}
		return c.JSON(grants)
	}
}
