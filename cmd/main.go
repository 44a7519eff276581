package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/nox-iam/internal/api/grpc/context"
	"github.com/dtroode/nox-iam/internal/api/grpc/router"
	grpcServer "github.com/dtroode/nox-iam/internal/api/grpc/server"
	"github.com/dtroode/nox-iam/internal/audit"
	"github.com/dtroode/nox-iam/internal/config"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/maintenance"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/notify"
	"github.com/dtroode/nox-iam/internal/password"
	"github.com/dtroode/nox-iam/internal/ratelimit"
	"github.com/dtroode/nox-iam/internal/repository/postgres"
	"github.com/dtroode/nox-iam/internal/server"
	"github.com/dtroode/nox-iam/internal/service"
	"github.com/dtroode/nox-iam/internal/social"
	storage "github.com/dtroode/nox-iam/internal/storage/minio"
	"github.com/dtroode/nox-iam/internal/token"
	"github.com/dtroode/nox-iam/internal/totp"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	var bg sync.WaitGroup
	bgCtx, bgCancel := context.WithCancel(context.Background())

	sinks := []audit.Sink{audit.NewLogSink(logger)}
	var archive *audit.ArchiveSink
	if cfg.Storage.Enabled {
		archive = newArchiveSink(ctx, cfg, logger)
		sinks = append(sinks, archive)
		bg.Add(1)
		go func() {
			defer bg.Done()
			archive.Run(bgCtx, cfg.Audit.FlushInterval)
		}()
	}
	auditor := audit.NewDispatcher(audit.Config{
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, sinks...)

	userRepo := postgres.NewUserRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	otpRepo := postgres.NewOTPRepository(db)
	backupCodeRepo := postgres.NewBackupCodeRepository(db)
	socialRepo := postgres.NewSocialIdentityRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL, cfg.MFA.ChallengeTTL)
	hasher := password.NewArgon2(password.Params{
		Time:        cfg.Password.Time,
		MemoryKiB:   cfg.Password.MemoryKiB,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})

	otpService := service.NewOTP(otpRepo, db, service.OTPConfig{
		Length:      cfg.OTP.Length,
		TTL:         cfg.OTP.TTL,
		Cooldown:    cfg.OTP.Cooldown,
		MaxAttempts: cfg.OTP.MaxAttempts,
	}, m, logger)
	lockout := service.NewLockout(credentialRepo, service.LockoutConfig{
		MaxAttempts: cfg.Security.LockoutMaxAttempts,
		Duration:    cfg.Security.LockoutDuration,
	}, m, logger)
	sessionService := service.NewSessions(sessionRepo, userRepo, credentialRepo, tokenManager, db, auditor, service.SessionConfig{
		RefreshTTL:    cfg.Security.RefreshTokenTTL,
		RotationGrace: cfg.Security.RotationGrace,
	}, m, logger)
	mfaService := service.NewMFA(userRepo, credentialRepo, backupCodeRepo, totp.New(cfg.MFA.Issuer), hasher, tokenManager,
		db, lockout, sessionService, auditor, service.MFAConfig{
			MaxAttempts:     cfg.MFA.MaxAttempts,
			BackupCodeCount: cfg.MFA.BackupCodeCount,
		}, m, logger)
	notifier := notify.NewLogNotifier(logger)
	authService := service.NewAuth(userRepo, credentialRepo, hasher, otpService, lockout, sessionService, mfaService,
		notifier, auditor, db, m, logger)
	socialService := service.NewSocial(social.NewVerifier(cfg.Social.ProviderSecrets, cfg.Social.Audience),
		socialRepo, userRepo, credentialRepo, authService, db, auditor, logger)
	authorizer := service.NewAuthorizer(memberRepo, logger)
	orgService := service.NewOrganizations(orgRepo, roleRepo, memberRepo, userRepo, invitationRepo, authorizer, notifier,
		db, auditor, service.OrganizationConfig{InvitationTTL: cfg.Org.InvitationTTL}, logger)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		authService.WithLimiter(ratelimit.New(rdb, ratelimit.Config{
			Limit:  cfg.Redis.LoginLimit,
			Window: cfg.Redis.LoginWindow,
		}))
		logger.Info("login throttling enabled", "redis", cfg.Redis.Addr)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()
	purger := maintenance.NewPurger(sqlDB, cfg.Maintenance.Retention, logger)
	bg.Add(1)
	go func() {
		defer bg.Done()
		purger.Run(bgCtx, cfg.Maintenance.Interval)
	}()

	r := router.New(router.Services{
		Auth:          authService,
		MFA:           mfaService,
		Social:        socialService,
		Sessions:      sessionService,
		Organizations: orgService,
	}, tokenManager, grpcctx.NewManager(), m, logger)
	s := r.Register()
	reflection.Register(s)

	sl, err := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	if err != nil {
		logger.Fatal("failed to initialize security layer", "error", err)
	}

	type listening struct {
		server model.Server
		sl     model.SecurityLayer
	}
	servers := []listening{
		{server: grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)), sl: sl},
		{server: metrics.NewServer(cfg.Metrics.Addr, registry), sl: server.NewPlainListener()},
	}

	var wg sync.WaitGroup
	for _, l := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "name", s.Name(), "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "name", s.Name(), "error", err)
			}
		}(l.server, l.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	r.Shutdown()
	for _, l := range servers {
		if err := l.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "name", l.server.Name(), "address", l.server.Address())
		}
	}
	wg.Wait()

	auditor.Close()
	bgCancel()
	bg.Wait()

	if dropped := auditor.Dropped(); dropped > 0 {
		logger.Warn("audit entries dropped", "count", dropped)
	}

	logger.Info("shutdown complete")
}

func newArchiveSink(ctx context.Context, cfg *config.Config, logger *logger.Logger) *audit.ArchiveSink {
	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	return audit.NewArchiveSink(storageClient, cfg.Audit.BatchSize, logger)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
