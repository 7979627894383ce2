package controllers

import (
	"errors"
	"strconv"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/pkg/resp"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/services"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders places an order from the current cart.
func (h *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.PlaceOrder(c.Request.Context(), uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrOutsideHours):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrSeatTaken):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInsufficientStock):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, out)
}

// GET /orders
func (h *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Svc.ListForUser(c.Request.Context(), uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /orders/:id. Students only see their own orders; staff and admin
// can open any order from the queue.
func (h *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	var out *services.OrderDetail
	switch utils.CurrentRole(c) {
	case "staff", "admin":
		out, err = h.Svc.Detail(c.Request.Context(), uint(id))
	default:
		out, err = h.Svc.DetailForUser(c.Request.Context(), uid, uint(id))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	if err := h.Svc.CancelForUser(c.Request.Context(), uid, uint(id)); err != nil {
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
