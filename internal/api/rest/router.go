// Package rest exposes the messaging service over HTTP/JSON.
package rest

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

// Router builds the gin engine for the REST API.
type Router struct {
	handler        *Handler
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRouter creates a new REST Router.
func NewRouter(
	userService UserService,
	messageService MessageService,
	queryService QueryService,
	pinger Pinger,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		handler:        NewHandler(userService, messageService, queryService, pinger, logger),
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register returns an engine with middleware and all routes installed.
func (r *Router) Register() *gin.Engine {
	useJSONFieldNames()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		requestID(r.contextManager),
		logging(r.contextManager, r.logger),
		recoverPanic(r.contextManager, r.logger),
	)

	engine.GET("/healthz", r.handler.Health)

	v1 := engine.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.POST("/", r.handler.CreateUser)
		users.GET("/", r.handler.ListUsers)
		users.GET("/:user_id", r.handler.GetUser)
		users.GET("/:user_id/sent_messages", r.handler.SentMessages)
		users.GET("/:user_id/inbox", r.handler.Inbox)
		users.GET("/:user_id/inbox/unread", r.handler.UnreadInbox)

		messages := v1.Group("/messages")
		messages.POST("/", r.handler.SendMessage)
		messages.GET("/:message_id", r.handler.GetMessage)
		messages.GET("/:message_id/recipients", r.handler.RecipientsOf)
		messages.PATCH("/recipients/:entry_id/read", r.handler.MarkRead)
	}

	return engine
}

var tagNameOnce sync.Once

// useJSONFieldNames makes binding errors name fields by their json tag.
// gin's validator is process-wide, so it is configured once.
func useJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
