// Command boardd serves the members-only message board API.
//
//	@title        Board API
//	@version      1.0
//	@description  Members-only message board: sessions, membership and role-gated messages.
//	@BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clubhouse/board/internal/api"
	"github.com/clubhouse/board/internal/api/cookie"
	"github.com/clubhouse/board/internal/api/handler"
	"github.com/clubhouse/board/internal/core/policy"
	"github.com/clubhouse/board/internal/core/ports"
	"github.com/clubhouse/board/internal/core/service"
	"github.com/clubhouse/board/internal/infrastructure/config"
	"github.com/clubhouse/board/internal/infrastructure/db/memory"
	mongostore "github.com/clubhouse/board/internal/infrastructure/db/mongo"
	"github.com/clubhouse/board/internal/infrastructure/db/postgres"
	redisstore "github.com/clubhouse/board/internal/infrastructure/db/redis"
	"github.com/clubhouse/board/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "boardd: %v\n", err)
		os.Exit(1)
	}
}

// stores groups the backends chosen by configuration.
type stores struct {
	users     ports.CredentialStore
	messages  ports.MessageStore
	sessions  ports.SessionStore
	readiness map[string]handler.Pinger
	closers   []io.Closer
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "boardd",
	})

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	pol := policy.New(cfg.ClubPasscode)
	authSvc := service.NewAuthService(st.users, log)
	sessionSvc := service.NewSessionService(st.sessions, st.users, cfg.Session.TTL, log)
	membershipSvc := service.NewMembershipService(st.users, pol, log)
	messageSvc := service.NewMessageService(st.messages, pol, log)

	e := api.NewRouter(api.Deps{
		Authenticator: authSvc,
		Sessions:      sessionSvc,
		Membership:    membershipSvc,
		Messages:      messageSvc,
		Codec:         cookie.NewCodec(cfg.Session.CookieName, cfg.Session.Secret, sessionSvc.TTL(), !cfg.IsDevelopment()),
		Readiness:     st.readiness,
		Logger:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("sessions", cfg.SessionDriver).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	log := logger.Get()
	st := &stores{readiness: map[string]handler.Pinger{}}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, closerFunc(func() error { return client.Disconnect(context.Background()) }))

		users := mongostore.NewUserRepository(db)
		messages := mongostore.NewMessageRepository(db)
		if err := mongostore.EnsureIndexes(ctx, users, messages); err != nil {
			st.Close()
			return nil, err
		}
		st.users, st.messages = users, messages
		st.readiness["mongodb"] = mongostore.Pinger{DB: db}

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db)

		if err := postgres.Migrate(ctx, db); err != nil {
			st.Close()
			return nil, err
		}
		st.users = postgres.NewUserRepository(db)
		st.messages = postgres.NewMessageRepository(db)
		st.readiness["postgres"] = postgres.Pinger{DB: db}

	default:
		mem := memory.NewDB()
		st.users = memory.NewUserRepository(mem)
		st.messages = memory.NewMessageRepository(mem)
		st.readiness["memory"] = mem
	}

	switch cfg.SessionDriver {
	case config.DriverRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
		st.closers = append(st.closers, client)

		sessions := redisstore.NewSessionStore(client)
		st.sessions = sessions
		st.readiness["redis"] = sessions

	default:
		st.sessions = memory.NewSessionStore()
	}

	log.Debug().Str("store", cfg.StoreDriver).Str("sessions", cfg.SessionDriver).Msg("backends ready")
	return st, nil
}
