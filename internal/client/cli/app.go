package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/config"
	"github.com/dmitrijs2005/msclient/internal/client/metrics"
	"github.com/dmitrijs2005/msclient/internal/client/services"
	"github.com/dmitrijs2005/msclient/internal/client/session"
	"github.com/dmitrijs2005/msclient/internal/filex"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	logger         logging.Logger
	registry       *prometheus.Registry
	db             *sql.DB
	reader         *bufio.Reader
	out            io.Writer
}

// NewApp opens the session database under cfg.DataDir and builds the
// service graph. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		logger.Error(ctx, "error preparing data dir", "dir", c.DataDir, "error", err)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, c.DBFile))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := session.NewStore(db, c.StoreName, logger.With("component", "session"))

	api := client.NewHTTPClient(c.BaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithRetryPolicy(client.RetryPolicy{
			MaxRetries:     c.MaxRetries,
			InitialBackoff: c.RetryBackoff,
			MaxBackoff:     10 * c.RetryBackoff,
		}),
		client.WithLogger(logger.With("component", "gateway")),
		client.WithMetrics(metrics.NewGateway(reg)),
	)

	return &App{
		config:         c,
		authService:    services.NewAuthService(api, store, logger.With("component", "auth")),
		profileService: services.NewProfileService(api, logger.With("component", "profile")),
		logger:         logger,
		registry:       reg,
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run restores the saved session and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.authService.Load(ctx); err != nil {
		return err
	}

	if a.config.MetricsAddr != "" {
		stop := a.serveMetrics(ctx, a.config.MetricsAddr)
		defer stop()
	}

	fmt.Fprintln(a.out, "Welcome to Model Society CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if email := a.authService.Session().UserEmail; email != "" {
		return fmt.Sprintf("(%s) ", email)
	}
	return "(logged in) "
}

// serveMetrics exposes the registry on addr until the returned stop func
// is called.
func (a *App) serveMetrics(ctx context.Context, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info(ctx, "metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "metrics listener failed", "addr", addr, "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
