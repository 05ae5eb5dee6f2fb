package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"meterportal/docs"
)

// SwaggerUI serves the API docs with the host and scheme the client used.
// defaultHost is advertised when the request carries no Host header.
func SwaggerUI(defaultHost string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		host, scheme := swaggerTarget(c.Get(fiber.HeaderHost), c.Get(fiber.HeaderXForwardedProto), c.Protocol(), defaultHost)

		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}

func swaggerTarget(host, forwardedProto, protocol, defaultHost string) (string, string) {
	if host == "" {
		host = defaultHost
	}
	scheme := protocol
	if forwardedProto != "" {
		scheme = strings.TrimSpace(strings.Split(forwardedProto, ",")[0])
	}
	return host, scheme
}
