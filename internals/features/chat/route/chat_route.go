package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	chatController "unitrack_backend/internals/features/chat/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func ChatRoutes(api fiber.Router, db *gorm.DB, rdb *redis.Client) {
	ctrl := chatController.NewChatController(db, rdb)

	chat := api.Group("/chat", authMW.AuthMiddleware(db))

	chat.Post("/messages", ctrl.SendMessage)
	chat.Get("/messages", ctrl.GetMessages)
	chat.Get("/messages/search", ctrl.SearchMessages)
	chat.Post("/messages/read", ctrl.MarkRead)
	chat.Post("/messages/:id/delivered", ctrl.MarkDelivered)
	chat.Patch("/messages/:id", ctrl.EditMessage)
	chat.Delete("/messages/:id", ctrl.DeleteMessage)
	chat.Get("/messages/:id/history", ctrl.GetMessageEditHistory)
	chat.Post("/messages/:id/reactions", ctrl.AddReaction)
	chat.Delete("/messages/:id/reactions/:type", ctrl.RemoveReaction)

	chat.Get("/conversations", ctrl.GetConversations)

	chat.Post("/groups", ctrl.CreateGroup)
	chat.Get("/groups", ctrl.ListGroups)
	chat.Post("/groups/:id/members", ctrl.AddGroupMember)

	chat.Post("/typing", ctrl.Typing)
	chat.Post("/connect", ctrl.Connect)
	chat.Post("/disconnect", ctrl.Disconnect)
}
