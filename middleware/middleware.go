package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/config/common"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/security"
)

type Middleware struct {
	Config *common.Config
	JWT    *security.JWT
	Log    *logrus.Logger
}

func NewMiddleware(config *common.Config, jwt *security.JWT, logger *logrus.Logger) *Middleware {
	return &Middleware{Config: config, JWT: jwt, Log: logger}
}

func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	secretKey := middleware.Config.GetJwtConfig()

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: secretKey},
		ContextKey: "jwt",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			middleware.Log.WithError(err).Error("Failed to validate JWT")
			return c.Status(fiber.StatusUnauthorized).JSON(res.ErrorResponse{
				Status:     fiber.ErrUnauthorized.Message,
				StatusCode: fiber.StatusUnauthorized,
				Error:      "Token is not valid",
			})
		},
	})(c)
}

// ExtractIdentity resolves the verified caller from the bearer token and
// stores user_id and user_role in locals for the handlers.
func (middleware *Middleware) ExtractIdentity(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	identity, err := middleware.JWT.VerifyIdentity(token)
	if err != nil {
		middleware.Log.WithError(err).Error("Failed to extract identity from token")
		return c.Status(fiber.StatusUnauthorized).JSON(res.ErrorResponse{
			Status:     fiber.ErrUnauthorized.Message,
			StatusCode: fiber.StatusUnauthorized,
			Error:      "Failed to extract identity from token",
		})
	}

	c.Locals("user_id", identity.UserID)
	c.Locals("user_role", string(identity.Role))
	return c.Next()
}
