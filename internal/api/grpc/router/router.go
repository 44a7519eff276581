package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/nox-iam/internal/api/grpc/handler"
	"github.com/dtroode/nox-iam/internal/api/grpc/middleware"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
)

// Services groups the application services exposed over gRPC.
type Services struct {
	Auth          handler.AuthService
	MFA           handler.MFAService
	Social        handler.SocialService
	Sessions      handler.SessionService
	Organizations handler.OrganizationService
}

// Router represents a gRPC router for the identity services.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services       Services
	tokens         model.TokenManager
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
	health         *health.Server
}

// New creates new gRPC Router instance.
func New(
	services Services,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		tokens:         tokens,
		contextManager: contextManager,
		metrics:        m,
		logger:         logger,
		health:         health.NewServer(),
	}
}

var publicMethods = func() map[string]struct{} {
	out := make(map[string]struct{}, len(handler.PublicAuthMethods))
	for _, m := range handler.PublicAuthMethods {
		out[m] = struct{}{}
	}
	return out
}()

// requiresAuth reports whether the call must carry an access token.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	if c.Service == healthpb.Health_ServiceDesc.ServiceName {
		return false
	}
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register registers all gRPC services and middleware.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger, r.metrics)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	recoverer := middleware.NewRecovery(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverer.HandlePanic)),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(recoverer.HandlePanic)),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerOrganizationRoutes(s)
	r.registerHealth(s)

	return s
}

// Shutdown marks every service as not serving so that load balancers drain
// the instance before the server stops.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(
		r.services.Auth,
		r.services.MFA,
		r.services.Social,
		r.services.Sessions,
		r.contextManager,
		r.logger,
	)
	server.RegisterService(&handler.AuthServiceDesc, authHandler)
}

func (r *Router) registerOrganizationRoutes(server *grpc.Server) {
	orgHandler := handler.NewOrganization(r.services.Organizations, r.contextManager, r.logger)
	server.RegisterService(&handler.OrganizationsServiceDesc, orgHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, r.health)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(handler.AuthServiceName, healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(handler.OrganizationsServiceName, healthpb.HealthCheckResponse_SERVING)
}
