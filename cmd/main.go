package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/letterbox-server/internal/api/grpc/context"
	"github.com/dtroode/letterbox-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/letterbox-server/internal/api/grpc/server"
	"github.com/dtroode/letterbox-server/internal/api/rest"
	"github.com/dtroode/letterbox-server/internal/config"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/repository/memory"
	"github.com/dtroode/letterbox-server/internal/repository/postgres"
	redisrepo "github.com/dtroode/letterbox-server/internal/repository/redis"
	"github.com/dtroode/letterbox-server/internal/server"
	"github.com/dtroode/letterbox-server/internal/service"
	"github.com/dtroode/letterbox-server/internal/telemetry"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores bundles the repositories of one backend with its lifecycle.
type stores struct {
	users      model.UserStore
	messages   model.MessageStore
	recipients model.RecipientStore
	tx         model.TxManager
	pinger     rest.Pinger
	close      func() error
}

// listenedServer pairs a server with the security layer it listens through.
type listenedServer struct {
	server model.Server
	sl     model.SecurityLayer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	instruments, err := telemetry.NewGlobal()
	if err != nil {
		logger.Fatal("failed to initialize telemetry", "error", err)
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Store.Driver)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	userStore := st.users
	if cfg.Redis.Enabled {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("user cache unreachable, lookups fall back to storage", "error", err, "addr", cfg.Redis.Addr)
		}
		userStore = redisrepo.NewCachedUserStore(userStore, rdb, cfg.Redis.UserTTL, logger)
	}

	userService := service.NewUser(userStore, instruments, logger)
	messageService := service.NewMessage(st.tx, st.messages, st.recipients, instruments, logger)
	queryService := service.NewQuery(userStore, st.messages, st.recipients, instruments, logger)
	ctxMgr := grpcctx.NewManager()

	grpcRouter := router.New(userService, messageService, queryService, ctxMgr, logger)

	var grpcSL model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		grpcSL = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		grpcSL = server.NewPlainListener()
	}

	servers := []listenedServer{{
		server: grpcServer.NewGRPCServer(grpcRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
		sl:     grpcSL,
	}}

	if cfg.HTTP.Enabled {
		if cfg.LogLevel > int(slog.LevelDebug) {
			gin.SetMode(gin.ReleaseMode)
		}
		restRouter := rest.NewRouter(userService, messageService, queryService, st.pinger, ctxMgr, logger)
		servers = append(servers, listenedServer{
			server: rest.NewHTTPServer(restRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)),
			sl:     server.NewPlainListener(),
		})
	}

	logAppVersion()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.server.Address())
			if err := s.server.Start(s.sl); err != nil {
				return fmt.Errorf("server on %s: %w", s.server.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received interruption signal, shutting down")
		grpcRouter.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		for _, s := range servers {
			if err := s.server.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
	}
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.New()
		return stores{
			users:      store.Users(),
			messages:   store.Messages(),
			recipients: store.Recipients(),
			tx:         store,
			pinger:     store,
			close:      store.Close,
		}, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:      postgres.NewUserRepository(db),
			messages:   postgres.NewMessageRepository(db),
			recipients: postgres.NewRecipientRepository(db),
			tx:         db,
			pinger:     db,
			close:      db.Close,
		}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
