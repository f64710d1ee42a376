package router

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/letterbox-server/internal/api/grpc/handler"
	pb "github.com/dtroode/letterbox-server/internal/api/grpc/letterboxv1"
	"github.com/dtroode/letterbox-server/internal/api/grpc/middleware"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
)

// Router represents a gRPC router for messaging operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	userService    handler.UserService
	messageService handler.MessageService
	queryService   handler.QueryService
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	userService handler.UserService,
	messageService handler.MessageService,
	queryService handler.QueryService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		messageService: messageService,
		queryService:   queryService,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

func logSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/grpc.health.v1.Health/")
}

// Register registers all gRPC services, reflection and middleware.
// Messages are encoded as protobuf with the letterboxv1 schema. Panics in
// handlers are recovered and reported as Internal. Every call gets a request
// id, and all calls except health checks are logged.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	requestID := middleware.NewRequestID(r.contextManager, r.logger)
	logging := middleware.NewLogging(r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.recoverPanic)),
			requestID.HandleGRPC,
			selector.UnaryServerInterceptor(
				logging.HandleGRPC,
				selector.MatchFunc(logSkip),
			),
		),
	)
	r.registerMessagingRoutes(s)
	r.registerHealth(s)
	reflection.Register(s)

	return s
}

// Shutdown reports every service as not serving so health probes fail
// while in-flight calls drain.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

func (r *Router) registerMessagingRoutes(server *grpc.Server) {
	messagingHandler := handler.NewMessaging(r.userService, r.messageService, r.queryService, r.contextManager, r.logger)
	pb.RegisterMessagingServer(server, messagingHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, r.health)
}

func (r *Router) recoverPanic(ctx context.Context, p any) error {
	requestID, _ := r.contextManager.GetRequestIDFromContext(ctx)
	r.logger.Error("gRPC handler panic",
		"request_id", requestID,
		"panic", p,
		"stack", string(debug.Stack()))
	return status.Error(codes.Internal, "internal server error")
}
