package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"gigwork-chat-app/handler"
	"gigwork-chat-app/middleware"
)

type ConfigRoute struct {
	App         *fiber.App
	Middleware  *middleware.Middleware
	UserHandler *handler.UserHandler
	ChatHandler *handler.ChatHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.App.Static("/assets", "./assets")
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1")
	app.Use(rc.Middleware.JWTProtected)
	app.Use(rc.Middleware.ExtractIdentity)

	app.Get("/users/me", rc.UserHandler.GetProfile)
	app.Post("/users/push-token", rc.UserHandler.SetPushToken)

	app.Post("/chats", rc.ChatHandler.CreateChat)
	app.Get("/chats", rc.ChatHandler.GetUserChats)
	app.Get("/chats/:chatId/messages", rc.ChatHandler.GetMessages)
	app.Get("/chats/:chatId/status", rc.ChatHandler.GetChatStatus)
	app.Get("/chats/:chatId/offer", rc.ChatHandler.GetOffer)
	app.Post("/chats/:chatId/approve", rc.ChatHandler.ApproveChat)
	app.Post("/chats/:chatId/reject", rc.ChatHandler.RejectChat)
}

func (rc *ConfigRoute) GetWebSocketRoute(wsHandler *handler.WebSocketHandler) {
	rc.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	rc.App.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
