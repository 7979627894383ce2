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

type ReservationController struct{ Svc *services.ReservationService }

func NewReservationController(s *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: s}
}

// POST /reservations
func (h *ReservationController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	var req services.ReservationIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), uid, &req)
	if err != nil {
		if errors.Is(err, services.ErrSeatTaken) {
			resp.Conflict(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, res)
}

// GET /reservations
func (h *ReservationController) ListMine(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	out, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /reservations/:id
func (h *ReservationController) Cancel(c *gin.Context) {
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
	if err := h.Svc.Cancel(c.Request.Context(), uid, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			resp.Forbidden(c, "not your reservation")
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "reservation not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
