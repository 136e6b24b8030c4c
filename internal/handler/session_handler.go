package handler

import (
	"context"

	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// SessionHandler upgrades /interview/:id/ws to a live interview session.
type SessionHandler struct {
	orchestrator *session.Orchestrator
	logger       logger.ILogger
}

func NewSessionHandler(orchestrator *session.Orchestrator, log logger.ILogger) *SessionHandler {
	return &SessionHandler{
		orchestrator: orchestrator,
		logger:       log,
	}
}

func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/interview/:id/ws", h.ServeWs)
}

// ServeWs validates the interview id, then hijacks the connection and hands
// it to the orchestrator for the socket's lifetime.
func (h *SessionHandler) ServeWs(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid interview ID"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SessionHandler", "Starting interview session", map[string]interface{}{"interview_id": interviewID})
			h.orchestrator.Run(context.Background(), interviewID, conn)
			h.logger.Info("SessionHandler", "Interview session ended", map[string]interface{}{"interview_id": interviewID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
