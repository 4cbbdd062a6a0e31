package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"sdch/internal/pkg/logger"
	internalWS "sdch/internal/websocket"
)

// DocumentStatusHandler upgrades a per-document status connection and
// forwards document lifecycle events pushed through the Hub.
type DocumentStatusHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewDocumentStatusHandler(hub *internalWS.Hub, log logger.ILogger) *DocumentStatusHandler {
	return &DocumentStatusHandler{hub: hub, logger: log}
}

// ServeWs upgrades GET /api/documents/:id/status to a websocket and streams
// document_status events until the client disconnects.
func (h *DocumentStatusHandler) ServeWs(c *fiber.Ctx) error {
	idParam := c.Params("id")
	documentID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid document id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DocumentStatusHandler", "status socket opened", map[string]interface{}{"document_id": documentID})
			internalWS.ServeWs(h.hub, conn, documentID)
			h.logger.Info("DocumentStatusHandler", "status socket closed", map[string]interface{}{"document_id": documentID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the document status websocket route.
func (h *DocumentStatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/documents/:id/status", h.ServeWs)
}
