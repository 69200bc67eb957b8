package http

import (
	"github.com/gin-gonic/gin"

	"groq-chatbot/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/keys/validate", h.ValidateKey)
	rg.GET("/models", h.ListModels)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/reset", h.ResetSession)
		sessions.POST("/:id/document", mw.MaxBodySize(h.maxDocumentBytes+multipartOverhead), h.LoadDocument)
		sessions.GET("/:id/messages", h.Messages)
		sessions.POST("/:id/chat", h.Chat)
		sessions.POST("/:id/compare", h.Compare)
	}
}
