package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "github.com/clementchett/Zane-Food-Tracker/internal/adapter/http"
	"github.com/clementchett/Zane-Food-Tracker/internal/app"
	"github.com/clementchett/Zane-Food-Tracker/internal/config"
	"github.com/clementchett/Zane-Food-Tracker/internal/db"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	log := cfg.Logger()
	slog.SetDefault(log)

	store, err := db.Open(cfg)
	if err != nil {
		log.Error("store open failed", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	passcodeHash := cfg.PasscodeHash
	if cfg.Passcode != "" {
		if passcodeHash, err = app.HashPasscode(cfg.Passcode); err != nil {
			log.Error("passcode hash failed", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sso *adapthttp.SSO
	if cfg.OIDC.Enabled() {
		if sso, err = adapthttp.NewSSO(ctx, cfg.OIDC); err != nil {
			log.Error("sso setup failed", "issuer", cfg.OIDC.Issuer, "error", err)
			os.Exit(1)
		}
	}

	entries := app.NewEntryService(store.Blobs, nil, log)
	access := app.NewAccessService(store.Sessions, app.AccessOptions{
		PasscodeHash: passcodeHash,
		Owner:        cfg.Owner,
		ForwardAuth:  cfg.ForwardAuth,
		SSO:          sso != nil,
	})
	srv := adapthttp.New(adapthttp.Services{
		Entries:  entries,
		Days:     app.NewDayViewService(entries, cfg.Location),
		Calendar: app.NewCalendarService(entries, cfg.Location, cfg.WeekStart),
		Trend:    app.NewTrendService(entries, cfg.Location),
		Access:   access,
	}, cfg.Location, cfg.WebDir, log).WithSSO(sso)

	go purgeSessions(ctx, access, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("listening",
		"addr", cfg.Addr,
		"store", cfg.Store,
		"tz", cfg.Location.String(),
		"access", access.Enabled(),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
	log.Info("server closed")
}

// purgeSessions drops expired sessions every hour until ctx ends.
func purgeSessions(ctx context.Context, access *app.AccessService, log *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := access.PurgeExpired(ctx); err != nil {
				log.Warn("session purge failed", "error", err)
			}
		}
	}
}
