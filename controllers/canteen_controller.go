package controllers

import (
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/pkg/resp"

	"github.com/gin-gonic/gin"
)

// CanteenController serves the open/closed banner so clients don't do
// their own clock math.
type CanteenController struct{ Window availability.Window }

func NewCanteenController(w availability.Window) *CanteenController {
	return &CanteenController{Window: w}
}

// GET /canteen/status
func (h *CanteenController) Status(c *gin.Context) {
	now := time.Now()
	resp.OK(c, gin.H{
		"status":    h.Window.StatusAt(now),
		"countdown": h.Window.Countdown(now),
		"opensAt":   h.Window.OpensAt,
		"closesAt":  h.Window.ClosesAt,
	})
}
