package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/EzraElette/contacts-server/internal/api/http/hctx"
	"github.com/EzraElette/contacts-server/internal/api/http/router"
	"github.com/EzraElette/contacts-server/internal/config"
	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
	"github.com/EzraElette/contacts-server/internal/repository/yamlfile"
	"github.com/EzraElette/contacts-server/internal/server"
	"github.com/EzraElette/contacts-server/internal/service"
	"github.com/EzraElette/contacts-server/internal/token"
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

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o700); err != nil {
		logger.Fatal("failed to create data directory", "error", err)
	}

	userFile := cfg.Storage.UserFile
	if !filepath.IsAbs(userFile) {
		userFile = filepath.Join(cfg.Storage.DataDir, userFile)
	}

	userTable := yamlfile.NewUserTable(userFile)
	collections := yamlfile.NewCollectionStore(cfg.Storage.DataDir, cfg.Storage.LockWait)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	ctxMgr := hctx.NewManager()

	authService := service.NewAuth(userTable, collections, tokenManager, logger)
	contactService := service.NewContact(collections, logger)

	r := router.New(authService, contactService, tokenManager, ctxMgr, logger, cfg.HTTP.RequestTimeout)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
