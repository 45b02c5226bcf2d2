package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/auth"
	"github.com/neekaru/whatsapp-group-gateway/internal/chat"
	"github.com/neekaru/whatsapp-group-gateway/internal/health"
	"github.com/neekaru/whatsapp-group-gateway/internal/messaging"
	"github.com/neekaru/whatsapp-group-gateway/internal/session"
)

// SetupRoutes configures all the routes for the application
func (s *Server) SetupRoutes() {
	// Register health check handlers
	healthHandlers := health.NewHandlers(s.app)
	s.router.GET("/", healthHandlers.HealthCheckHandler)
	s.router.GET("/health", healthHandlers.HealthCheckHandler)

	// Register authentication handlers
	authHandlers := auth.NewHandlers(s.app)
	s.router.GET("/qrcode", authHandlers.QRCodeHandler)

	// Register session handlers
	sessionHandlers := session.NewHandlers(s.app)
	s.router.GET("/status", sessionHandlers.StatusHandler)
	s.router.POST("/disconnect", sessionHandlers.DisconnectHandler)

	// Register messaging handlers
	messagingHandlers := messaging.NewHandlers(s.app)
	s.router.POST("/send-message", messagingHandlers.SendMessageHandler)

	// Register chat handlers
	chatHandlers := chat.NewHandlers(s.app)
	s.router.GET("/chats", chatHandlers.GetAllChatsHandler)
	s.router.GET("/chats/groups", chatHandlers.GetGroupsHandler)

	// Unknown paths and wrong methods get the same 404 body
	s.router.NoRoute(notFound)
	s.router.NoMethod(notFound)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
}
