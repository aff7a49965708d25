package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messaging-backend/internal/middlewares"
	"messaging-backend/internal/services"
)

type ChannelHandler struct {
	ChannelService *services.ChannelService
	MessageService *services.MessageService
	ReadService    *services.ReadService
	UserService    *services.UserService
}

func NewChannelHandler(
	channelService *services.ChannelService,
	messageService *services.MessageService,
	readService *services.ReadService,
	userService *services.UserService,
) *ChannelHandler {
	return &ChannelHandler{
		ChannelService: channelService,
		MessageService: messageService,
		ReadService:    readService,
		UserService:    userService,
	}
}

// ListChannels returns every channel in the directory.
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.ChannelService.ListAllChannels(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, channels)
}

// MyChannels returns the channels the principal belongs to.
func (h *ChannelHandler) MyChannels(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)

	channels, err := h.ChannelService.ListUserChannels(c.Request.Context(), username)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, channels)
}

// GetChannelData returns the aggregated view of one channel: the
// principal's channels, the channel's members and messages, and the
// principal's read marker.
func (h *ChannelHandler) GetChannelData(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)
	channelName := c.Param("name")

	data, err := h.ChannelService.GetChannelData(c.Request.Context(), username, channelName)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

type CreateChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateChannel creates a public channel owned by the principal.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.ChannelService.CreateChannel(c.Request.Context(), req.Name, username); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

type CreateDMRequest struct {
	Name string `json:"name" binding:"required"`
	User string `json:"user" binding:"required"`
}

// CreateDMChannel creates a direct channel between the principal and one
// other user.
func (h *ChannelHandler) CreateDMChannel(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)

	var req CreateDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.ChannelService.CreateDMChannel(c.Request.Context(), req.Name, username, req.User); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// DeleteChannel removes a channel with its memberships and read markers.
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	channelName := c.Param("name")

	if err := h.ChannelService.DeleteChannel(c.Request.Context(), channelName); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "channel deleted"})
}

// JoinChannel adds the principal to a channel.
func (h *ChannelHandler) JoinChannel(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)
	channelName := c.Param("name")

	if err := h.ChannelService.JoinChannel(c.Request.Context(), channelName, username); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined channel"})
}

// AdminCount reports how many of the channel's members are admins.
func (h *ChannelHandler) AdminCount(c *gin.Context) {
	channelName := c.Param("name")

	count, err := h.ChannelService.CountAdmins(c.Request.Context(), channelName)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage appends a message to the channel on the principal's behalf.
func (h *ChannelHandler) SendMessage(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)
	channelName := c.Param("name")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := h.MessageService.Send(c.Request.Context(), username, channelName, req.Content)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, message)
}

// LatestMessage returns the channel's newest message, or a "No messages
// yet" body for an empty channel.
func (h *ChannelHandler) LatestMessage(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)
	channelName := c.Param("name")

	message, err := h.MessageService.LatestFor(c.Request.Context(), username, channelName)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if message == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No messages yet"})
		return
	}
	c.JSON(http.StatusOK, message)
}

type MarkSeenRequest struct {
	MessageID int64 `json:"message_id"`
}

// MarkSeen acknowledges messages up to the given id in the channel.
func (h *ChannelHandler) MarkSeen(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)
	channelName := c.Param("name")

	var req MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.ReadService.MarkSeen(c.Request.Context(), username, channelName, req.MessageID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked seen"})
}

// UnreadChannels returns the channels holding messages the principal has
// not acknowledged.
func (h *ChannelHandler) UnreadChannels(c *gin.Context) {
	username := c.GetString(middlewares.UsernameKey)

	names, err := h.ReadService.UnreadChannels(c.Request.Context(), username)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

// SearchUsers matches usernames on a substring. An empty list is a valid
// response; the client decides how to present no matches.
func (h *ChannelHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")

	users, err := h.UserService.SearchUsers(c.Request.Context(), query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
