package controllers

import (
	"errors"
	"strconv"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/pkg/resp"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// GET /menu?q=&category=&foodType=&available=&sort=
func (h *MenuController) List(c *gin.Context) {
	q := repository.MenuQuery{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		FoodType: c.Query("foodType"),
		Sort:     c.Query("sort"),
	}
	if v := c.Query("available"); v != "" {
		b := v == "true" || v == "1"
		q.Available = &b
	}
	items, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	m, err := h.Svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /admin/menu
func (h *MenuController) Create(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, m)
}

// PATCH /admin/menu/:id
func (h *MenuController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	var req services.MenuItemUpdateIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Update(c.Request.Context(), uint(id), &req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /admin/menu/:id
func (h *MenuController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "bad id")
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
