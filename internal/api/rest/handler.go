package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

// UserService defines user registration and lookup operations.
type UserService interface {
	CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

// MessageService defines send and read-state operations.
type MessageService interface {
	Send(ctx context.Context, params model.SendMessageParams) (model.Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (model.Message, error)
	MarkRead(ctx context.Context, entryID uuid.UUID) (model.MessageRecipient, error)
}

// QueryService defines inbox and history queries.
type QueryService interface {
	SentMessages(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.InboxItem, error)
	RecipientsOf(ctx context.Context, messageID uuid.UUID) ([]model.RecipientStatus, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// sendMessageRequest requires the content key but accepts an empty string.
type sendMessageRequest struct {
	SenderID     uuid.UUID   `json:"sender_id" binding:"required"`
	Subject      *string     `json:"subject"`
	Content      *string     `json:"content" binding:"required"`
	RecipientIDs []uuid.UUID `json:"recipient_ids" binding:"required"`
}

// Handler serves the REST API.
type Handler struct {
	userService    UserService
	messageService MessageService
	queryService   QueryService
	pinger         Pinger
	logger         *logger.Logger
}

// NewHandler creates a new REST Handler.
func NewHandler(
	userService UserService,
	messageService MessageService,
	queryService QueryService,
	pinger Pinger,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		userService:    userService,
		messageService: messageService,
		queryService:   queryService,
		pinger:         pinger,
		logger:         logger,
	}
}

// CreateUser handles POST /api/v1/users/.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), model.CreateUserParams{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers handles GET /api/v1/users/?skip=&limit=.
func (h *Handler) ListUsers(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 100)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/v1/users/:user_id.
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SendMessage handles POST /api/v1/messages/.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), model.SendMessageParams{
		SenderID:     req.SenderID,
		Subject:      req.Subject,
		Content:      *req.Content,
		RecipientIDs: req.RecipientIDs,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessage handles GET /api/v1/messages/:message_id.
func (h *Handler) GetMessage(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	message, err := h.messageService.GetMessage(c.Request.Context(), messageID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// MarkRead handles PATCH /api/v1/messages/recipients/:entry_id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}

	entry, err := h.messageService.MarkRead(c.Request.Context(), entryID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// SentMessages handles GET /api/v1/users/:user_id/sent_messages.
func (h *Handler) SentMessages(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	messages, err := h.queryService.SentMessages(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Inbox handles GET /api/v1/users/:user_id/inbox.
func (h *Handler) Inbox(c *gin.Context) {
	h.inbox(c, false)
}

// UnreadInbox handles GET /api/v1/users/:user_id/inbox/unread.
func (h *Handler) UnreadInbox(c *gin.Context) {
	h.inbox(c, true)
}

func (h *Handler) inbox(c *gin.Context, unreadOnly bool) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	items, err := h.queryService.Inbox(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// RecipientsOf handles GET /api/v1/messages/:message_id/recipients.
func (h *Handler) RecipientsOf(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	statuses, err := h.queryService.RecipientsOf(c.Request.Context(), messageID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("REST handler: store ping failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, apperrors.NewErrValidation(fmt.Sprintf("field '%s' must be an integer, got %q", name, raw)))
		return 0, false
	}
	return v, true
}
