package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS admits the admin front-ends listed in origins. Credentials are only allowed
// for an explicit list; a wildcard origin is served without them.
func CORS(origins []string) fiber.Handler {
	allowOrigins := strings.Join(origins, ",")
	if allowOrigins == "" {
		allowOrigins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept," + HeaderRequestID,
		ExposeHeaders:    HeaderRequestID + ",Location",
		AllowCredentials: allowOrigins != "*",
	})
}
