package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Wi-Fi profiles
// @Description  Station and access point settings without passphrases.
// @Tags         network
// @Produce      json
// @Success      200  {object}  service.NetworkSummary
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/network [get]
// @Security     BearerAuth
func (h *Handler) getNetwork(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Network.Summary())
}
