package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messaging-backend/internal/middlewares"
	"messaging-backend/internal/services"
)

type AdminHandler struct {
	AuthzService   *services.AuthzService
	UserService    *services.UserService
	MessageService *services.MessageService
}

func NewAdminHandler(
	authzService *services.AuthzService,
	userService *services.UserService,
	messageService *services.MessageService,
) *AdminHandler {
	return &AdminHandler{
		AuthzService:   authzService,
		UserService:    userService,
		MessageService: messageService,
	}
}

// CheckAdmin reports whether the principal holds the admin role.
func (h *AdminHandler) CheckAdmin(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)

	isAdmin, err := h.AuthzService.IsAdmin(c.Request.Context(), username)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, isAdmin)
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetRole changes the target user's role. Admin-only.
func (h *AdminHandler) SetRole(c *gin.Context) {
	actor := c.GetString(middlewares.UsernameKey)
	target := c.Param("username")

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.UserService.SetRole(c.Request.Context(), actor, target, req.Role); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// DeleteMessage removes a message from the log. Admin-only, irreversible.
func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	actor := c.GetString(middlewares.UsernameKey)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.MessageService.Delete(c.Request.Context(), actor, id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
