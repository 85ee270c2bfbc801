package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/enum"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/usecase"
)

// ChatHandler is the REST face of the chat core, for clients that want the
// state without holding a websocket open.
type ChatHandler struct {
	Chats    usecase.ChatUsecase
	Messages usecase.MessageUsecase
	Offers   usecase.OfferUsecase
	Hub      *hub.Hub
	Validate *validator.Validate
	Log      *logrus.Logger
}

func NewChatHandler(chats usecase.ChatUsecase, messages usecase.MessageUsecase, offers usecase.OfferUsecase, h *hub.Hub, validate *validator.Validate, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{Chats: chats, Messages: messages, Offers: offers, Hub: h, Validate: validate, Log: log}
}

func callerID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func callerRole(c *fiber.Ctx) enum.Role {
	role, _ := c.Locals("user_role").(string)
	return enum.ParseRole(role)
}

func (handler *ChatHandler) CreateChat(c *fiber.Ctx) error {
	var payload req.CreateChatRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "malformed body")
	}
	if err := handler.Validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	created, isNew, err := handler.Chats.EnsureChat(c.Context(), callerID(c), payload)
	if err != nil {
		return handler.restError(c, err)
	}

	if isNew {
		handler.Hub.EmitUser(payload.ClientID, dto.NewEvent(dto.EventNewChat, created))
	}

	status := fiber.StatusOK
	if isNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(res.CommonResponse[*res.ChatCreated]{
		Message:    "Chat is ready",
		StatusCode: status,
		Data:       created,
	})
}

func (handler *ChatHandler) GetUserChats(c *fiber.Ctx) error {
	summaries, err := handler.Chats.GetUserChats(c.Context(), callerID(c), callerRole(c))
	if err != nil {
		return handler.restError(c, err)
	}
	return c.JSON(res.CommonResponse[[]res.ChatSummary]{
		Message:    "Successfully fetched chats",
		StatusCode: fiber.StatusOK,
		Data:       summaries,
	})
}

func (handler *ChatHandler) GetMessages(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, err := handler.Messages.ListMessages(c.Context(), callerID(c), req.FetchMessagesRequest{
		ChatID: c.Params("chatId"),
		Cursor: c.Query("cursor"),
		Limit:  limit,
	})
	if err != nil {
		return handler.restError(c, err)
	}
	return c.JSON(res.CommonResponse[*res.MessagesPage]{
		Message:    "Successfully fetched messages",
		StatusCode: fiber.StatusOK,
		Data:       page,
	})
}

func (handler *ChatHandler) GetChatStatus(c *fiber.Ctx) error {
	status, err := handler.Chats.GetChatStatus(c.Context(), c.Params("chatId"), callerID(c))
	if err != nil {
		return handler.restError(c, err)
	}
	return c.JSON(res.CommonResponse[*res.ChatStatusView]{
		Message:    "Successfully fetched chat status",
		StatusCode: fiber.StatusOK,
		Data:       status,
	})
}

func (handler *ChatHandler) ApproveChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	if err := handler.Chats.ApproveChat(c.Context(), chatID, callerID(c)); err != nil {
		return handler.restError(c, err)
	}
	handler.Hub.EmitRoom(chatID, dto.NewEvent(dto.EventChatApproved, fiber.Map{"chatId": chatID}))
	return c.JSON(res.CommonResponse[string]{
		Message:    "Chat approved",
		StatusCode: fiber.StatusOK,
		Data:       chatID,
	})
}

func (handler *ChatHandler) RejectChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	if err := handler.Chats.RejectChat(c.Context(), chatID, callerID(c)); err != nil {
		return handler.restError(c, err)
	}
	handler.Hub.EmitRoom(chatID, dto.NewEvent(dto.EventChatRejected, fiber.Map{"chatId": chatID}))
	return c.JSON(res.CommonResponse[string]{
		Message:    "Chat rejected",
		StatusCode: fiber.StatusOK,
		Data:       chatID,
	})
}

func (handler *ChatHandler) GetOffer(c *fiber.Ctx) error {
	state, err := handler.Offers.GetOffer(c.Context(), callerID(c), c.Params("chatId"))
	if err != nil {
		return handler.restError(c, err)
	}
	return c.JSON(res.CommonResponse[*res.OfferState]{
		Message:    "Successfully fetched offer",
		StatusCode: fiber.StatusOK,
		Data:       state,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(res.ErrorResponse{
		Status:     fiber.ErrBadRequest.Message,
		StatusCode: fiber.StatusBadRequest,
		Error:      message,
	})
}

func (handler *ChatHandler) restError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperr.IsUnauthorized(err):
		status = fiber.StatusForbidden
	case apperr.IsInvalidState(err):
		status = fiber.StatusConflict
	case apperr.IsTransport(err):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		handler.Log.WithError(err).Error("request failed")
	}
	return c.Status(status).JSON(res.ErrorResponse{
		Status:     "error",
		StatusCode: status,
		Error:      err.Error(),
	})
}
