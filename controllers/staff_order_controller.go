package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/pkg/resp"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StaffOrderController is the counter-side view: the incoming queue and
// the buttons that move an order along.
type StaffOrderController struct{ Svc *services.OrderService }

func NewStaffOrderController(s *services.OrderService) *StaffOrderController {
	return &StaffOrderController{Svc: s}
}

// GET /staff/orders?statusId=&page=&limit=
func (h *StaffOrderController) List(c *gin.Context) {
	var statusID *uint
	if v := c.Query("statusId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "bad statusId")
			return
		}
		id := uint(n)
		statusID = &id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := h.Svc.ListForStaff(c.Request.Context(), statusID, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /staff/orders/:id/accept
func (h *StaffOrderController) Accept(c *gin.Context) {
	h.transition(c, h.Svc.StaffAccept)
}

// PATCH /staff/orders/:id/ready
func (h *StaffOrderController) MarkReady(c *gin.Context) {
	h.transition(c, h.Svc.StaffMarkReady)
}

// PATCH /staff/orders/:id/complete
func (h *StaffOrderController) Complete(c *gin.Context) {
	h.transition(c, h.Svc.StaffComplete)
}

// PATCH /staff/orders/:id/cancel
func (h *StaffOrderController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	if err := h.Svc.StaffCancel(c.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPending):
			resp.Conflict(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

func (h *StaffOrderController) transition(c *gin.Context, fn func(ctx context.Context, orderID uint) error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	if err := fn(c.Request.Context(), uint(id)); err != nil {
		if err.Error() == "invalid_or_conflict" {
			resp.Conflict(c, "order is not in the right status")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
