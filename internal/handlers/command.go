package handlers

import (
	"errors"
	"net/http"

	"relay_control/internal/config"
	"relay_control/internal/service"

	"github.com/gin-gonic/gin"
)

const statusAccepted = "accepted"

// CommandRequest is an inbound control message forwarded by the SMS gateway.
type CommandRequest struct {
	Sender string `json:"sender" binding:"required" example:"+38160123456789"`
	Body   string `json:"body" binding:"required" example:"openrelay"`
}

// @Summary      Submit control message
// @Description  Pulses the relay when the sender is the admin phone and the body is the secret command.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        body  body   CommandRequest  true  "Inbound message"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/commands [post]
// @Security     BearerAuth
func (h *Handler) handleCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	sender := config.MaskPhone(req.Sender)
	err := h.services.Commands.Handle(c.Request.Context(), service.Message{Sender: req.Sender, Body: req.Body})
	switch {
	case err == nil:
		if h.log != nil {
			h.log.Infow("command_accepted", "sender", sender)
		}
		h.respondWithStatusAndState(c, statusAccepted, gin.H{})
	case errors.Is(err, service.ErrUnauthorizedSender):
		h.logWarn("command_rejected", "sender", sender, "reason", "sender")
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrUnauthorizedSender.Error()})
	case errors.Is(err, service.ErrUnknownCommand):
		h.logWarn("command_rejected", "sender", sender, "reason", "command")
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrUnknownCommand.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to handle command", "command_failed", err, "sender", sender)
	}
}

func (h *Handler) logWarn(key string, kv ...interface{}) {
	if h.log != nil {
		h.log.Warnw(key, kv...)
	}
}
