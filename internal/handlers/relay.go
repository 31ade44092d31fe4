package handlers

import (
	"errors"
	"net/http"
	"time"

	"relay_control/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK          = "ok"
	statusActivated   = "activated"
	statusDeactivated = "deactivated"

	errActivateRelay   = "failed to activate relay"
	errDeactivateRelay = "failed to deactivate relay"
	errGetState        = "failed to load state"
	errInvalidBodyPref = "invalid body: "

	maxDurationSec = int(service.MaxPulse / time.Second)
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// ActivateRequest is the activate payload; an empty body pulses with the configured default.
type ActivateRequest struct {
	// Hold the relay until deactivated
	Latch bool `json:"latch,omitempty" example:"false"`
	// Pulse length in seconds, 1..3600 (ignored when latch=true)
	DurationSec int `json:"duration_sec,omitempty" example:"5"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Activate relay
// @Description  Pulses the relay for duration_sec (default from config) or latches it.
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        body  body   ActivateRequest  false  "Activation payload"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/relay/activate [post]
// @Security     BearerAuth
func (h *Handler) activateRelay(c *gin.Context) {
	var req ActivateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
	}
	// bound before converting: large values wrap time.Duration
	if req.DurationSec < 0 || req.DurationSec > maxDurationSec {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidDuration.Error()})
		return
	}

	source := apiSource(c)
	err := h.services.Relay.Activate(c.Request.Context(), service.ActivateParams{
		Source:   source,
		Latch:    req.Latch,
		Duration: time.Duration(req.DurationSec) * time.Second,
	})
	if errors.Is(err, service.ErrInvalidDuration) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errActivateRelay, "relay_activate_failed", err, "source", source)
		return
	}
	h.respondWithStatusAndState(c, statusActivated, gin.H{})
}

// @Summary      Deactivate relay
// @Tags         relay
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/relay/deactivate [post]
// @Security     BearerAuth
func (h *Handler) deactivateRelay(c *gin.Context) {
	source := apiSource(c)
	if err := h.services.Relay.Deactivate(c.Request.Context(), source); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeactivateRelay, "relay_deactivate_failed", err, "source", source)
		return
	}
	h.respondWithStatusAndState(c, statusDeactivated, gin.H{})
}

// @Summary      Get relay state
// @Tags         relay
// @Produce      json
// @Success      200  {object}  models.RelayState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/relay/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "relay_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
