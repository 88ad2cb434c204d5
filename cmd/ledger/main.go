package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadwaysledger/config"
	"roadwaysledger/gateway"
	"roadwaysledger/ledger"
	"roadwaysledger/logger"
	"roadwaysledger/utils"
	"roadwaysledger/webui"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New("ledger", cfg.LogLevel)
	logger.SetDefault(log)

	if err := cfg.ValidateLedger(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gateway.New(cfg.APIURL, cfg.HTTPTimeout, log.WithComponent("gateway"))
	appLog := log.WithComponent("app")

	ui := &webui.Server{
		NewApp:       func() *ledger.App { return ledger.NewApp(client, appLog) },
		Log:          log.WithComponent("webui"),
		DateFormat:   cfg.DateFormat,
		CompanyName:  cfg.CompanyName,
		SecureCookie: cfg.SecureCookie,
		PrintPDF: func(ctx context.Context, data utils.LedgerPDFData) ([]byte, error) {
			return utils.GenerateLedgerPDF(ctx, data, cfg.ChromeTimeout)
		},
	}

	if cfg.ArchiveEnabled() {
		archiver, err := utils.NewR2Archiver(ctx, cfg, log.WithComponent("archive"))
		if err != nil {
			log.Error("export archive disabled", "error", err)
		} else {
			ui.Archiver = archiver
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.LedgerPort,
		Handler:           ui.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("ledger running", "port", cfg.LedgerPort, "api_url", cfg.APIURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("ledger stopped", "error", err)
		os.Exit(1)
	}
}
