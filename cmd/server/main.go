package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/groupledger/internal/auth"
	"github.com/mmynk/groupledger/internal/config"
	"github.com/mmynk/groupledger/internal/coordinator"
	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/server"
	"github.com/mmynk/groupledger/internal/service"
	"github.com/mmynk/groupledger/internal/storage/sqlite"
	"github.com/mmynk/groupledger/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

// run starts the server and blocks until ctx is done or the listener fails.
// With -issue-token it only mints a member and returns.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	issueToken := flags.String("issue-token", "", "create a linked member with this display name, print a token for it and exit")
	email := flags.String("email", "", "email for -issue-token")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	if *issueToken != "" {
		if err := mintMember(ctx, store, jwtManager, stdout, *issueToken, *email); err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		return nil
	}

	cache := ledger.NewCache(store,
		ledger.WithVerify(cfg.Ledger.Verify),
		ledger.WithLogger(slog.Default().With("component", "ledger")),
	)
	coord := coordinator.New(store,
		coordinator.WithObserver(cache),
		coordinator.WithLogger(slog.Default().With("component", "coordinator")),
	)

	handler := server.New(server.Services{
		Groups:   service.NewGroupService(store, coord),
		Expenses: service.NewExpenseService(store, coord),
		Ledger:   service.NewLedgerService(store, coord, cache),
	}, jwtManager, cfg.Server.CORSOrigins)

	// h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", srv.Addr,
			"url", fmt.Sprintf("http://localhost%s", srv.Addr),
			"verify_ledger", cfg.Ledger.Verify,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// mintMember creates a member linked to a fresh identity and prints a
// bearer token for it. Sign-in is handled outside this server.
func mintMember(ctx context.Context, store *sqlite.SQLiteStore, jwtManager *auth.JWTManager, out io.Writer, name, email string) error {
	member := &models.Member{
		DisplayName: name,
		Email:       email,
		AuthUserID:  "local-" + uuid.New().String(),
	}
	if err := store.CreateMember(ctx, member); err != nil {
		return err
	}
	token, err := jwtManager.Generate(member)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "member_id=%s\ntoken=%s\n", member.ID, token)
	return err
}
