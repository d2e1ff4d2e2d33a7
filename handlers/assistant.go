package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"detailify/services/assistant"
	"detailify/utils"
)

// AssistantHandler serves the public booking-chat endpoints.
type AssistantHandler struct {
	Svc assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// ChatHandler handles one chat turn. A missing sessionId starts a new session.
// POST /api/public/:tenantID/assistant/chat
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	logger := utils.GetLogger()
	tenantID := c.Param("tenantID")

	var req struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	reply, sessionID, err := h.Svc.HandleMessage(c.Request.Context(), tenantID, req.SessionID, req.Message)
	if err != nil {
		logger.Warn("assistant chat failed", zap.String("tenantID", tenantID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "reply": reply})
}

// EndSessionHandler discards a chat session.
// DELETE /api/public/:tenantID/assistant/session/:sessionID
func (h *AssistantHandler) EndSessionHandler(c *gin.Context) {
	if err := h.Svc.EndSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}
