package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/usecase"
)

type UserHandler struct {
	Users    usecase.UserUsecase
	Validate *validator.Validate
	Log      *logrus.Logger
}

func NewUserHandler(users usecase.UserUsecase, validate *validator.Validate, log *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Validate: validate, Log: log}
}

func (handler *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := handler.Users.GetProfile(c.Context(), callerID(c))
	if err != nil {
		status := fiber.StatusInternalServerError
		if apperr.IsNotFound(err) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(res.ErrorResponse{
			Status:     "error",
			StatusCode: status,
			Error:      err.Error(),
		})
	}
	return c.JSON(res.CommonResponse[*entity.User]{
		Message:    "Successfully fetched profile",
		StatusCode: fiber.StatusOK,
		Data:       user,
	})
}

// SetPushToken stores the device token later used for offline notification
// delivery.
func (handler *UserHandler) SetPushToken(c *fiber.Ctx) error {
	var payload req.PushTokenRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "malformed body")
	}
	if err := handler.Validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	if err := handler.Users.SetPushToken(c.Context(), callerID(c), payload.PushToken); err != nil {
		handler.Log.WithError(err).Error("failed to store push token")
		return fiber.ErrInternalServerError
	}
	return c.JSON(res.CommonResponse[string]{
		Message:    "Push token stored",
		StatusCode: fiber.StatusOK,
		Data:       callerID(c),
	})
}
