package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"setflow/internal/assist"
	"setflow/internal/assist/anthropic"
	"setflow/internal/assist/openai"
	"setflow/internal/cache"
	"setflow/internal/config"
	"setflow/internal/email/noop"
	"setflow/internal/email/ses"
	"setflow/internal/handler"
	"setflow/internal/port"
	"setflow/internal/repository/postgres"
	"setflow/internal/router"
	"setflow/internal/service"
	s3storage "setflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepo(db)
	memberRepo := postgres.NewMemberRepo(db)
	inviteRepo := postgres.NewInviteRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	catalogRepo := postgres.NewCatalogServiceRepo(db)
	proposalRepo := postgres.NewProposalRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	dayRepo := postgres.NewShootingDayRepo(db)
	sheetRepo := postgres.NewCallSheetRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	accountRepo := postgres.NewBankAccountRepo(db)
	txnRepo := postgres.NewTransactionRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize the LLM assistant chain (optional)
	assistant, err := newAssistant(&cfg.Assist)
	if err != nil {
		return fmt.Errorf("failed to initialize assistant: %w", err)
	}

	store := cache.NewStore()

	// Initialize services
	authSvc := service.NewAuthService(memberRepo, orgRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(orgRepo, memberRepo, authSvc)
	orgSvc := service.NewOrganizationService(orgRepo)
	memberSvc := service.NewMemberService(memberRepo, store)
	inviteSvc := service.NewInviteService(inviteRepo, memberRepo, orgRepo, supplierRepo, notifRepo, emailSender, store, cfg.Invite, cfg.Email)
	clientSvc := service.NewClientService(clientRepo, store)
	catalogSvc := service.NewCatalogService(catalogRepo, store)
	proposalSvc := service.NewProposalService(proposalRepo, clientRepo, catalogRepo, projectRepo, notifRepo, orgRepo, store)
	projectSvc := service.NewProjectService(projectRepo, clientRepo, store)
	productionSvc := service.NewProductionService(dayRepo, sheetRepo, projectRepo)
	supplierSvc := service.NewSupplierService(supplierRepo, memberRepo, store)
	financeSvc := service.NewFinanceService(accountRepo, txnRepo, supplierRepo, projectRepo, store)
	notificationSvc := service.NewNotificationService(notifRepo)
	fileSvc := service.NewFileService(fileRepo, sheetRepo, s3Client, &cfg.S3)
	assistSvc := service.NewAssistService(assistant, projectRepo, dayRepo, catalogRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, registrationSvc),
		Organization: handler.NewOrganizationHandler(orgSvc),
		Member:       handler.NewMemberHandler(memberSvc),
		Invite:       handler.NewInviteHandler(inviteSvc),
		Client:       handler.NewClientHandler(clientSvc),
		Catalog:      handler.NewCatalogHandler(catalogSvc),
		Proposal:     handler.NewProposalHandler(proposalSvc),
		Project:      handler.NewProjectHandler(projectSvc),
		Production:   handler.NewProductionHandler(productionSvc),
		Supplier:     handler.NewSupplierHandler(supplierSvc, financeSvc),
		Finance:      handler.NewFinanceHandler(financeSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Assist:       handler.NewAssistHandler(assistSvc),
		File:         handler.NewFileHandler(fileSvc),
		Health:       handler.NewHealthHandler(db),
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background expiry sweeper for invites and sent proposals
	sweeper := service.NewExpirySweeper(inviteRepo, proposalRepo, service.ExpirySweeperConfig{
		PollInterval: time.Duration(cfg.Sweeper.PollIntervalSecs) * time.Second,
	})
	go sweeper.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newEmailSender picks the configured email backend. Anything other
// than "ses" logs invite links instead of sending.
func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	}
	return noop.NewNoopSender(cfg.FrontendURL), nil
}

// newAssistant builds the provider chain from config. Returns nil when
// no provider is configured, which disables the assist endpoints.
func newAssistant(cfg *config.AssistConfig) (port.Assistant, error) {
	assist.RegisterProvider("anthropic", func(c *config.AssistProviderConfig) (port.Assistant, error) {
		return anthropic.NewAssistant(c), nil
	})
	assist.RegisterProvider("openai", func(c *config.AssistProviderConfig) (port.Assistant, error) {
		return openai.NewAssistant(c), nil
	})

	var assistants []port.Assistant
	var names []string

	if primary := cfg.PrimaryConfig(); primary != nil {
		a, err := assist.NewAssistant(primary)
		if err != nil {
			return nil, err
		}
		assistants = append(assistants, a)
		names = append(names, primary.Provider)
	}
	if secondary := cfg.SecondaryConfig(); secondary != nil {
		a, err := assist.NewAssistant(secondary)
		if err != nil {
			return nil, err
		}
		assistants = append(assistants, a)
		names = append(names, secondary.Provider)
	}

	switch len(assistants) {
	case 0:
		log.Println("assist: no providers configured; endpoint disabled")
		return nil, nil
	case 1:
		return assistants[0], nil
	default:
		return assist.NewFallbackAssistant(assistants, names), nil
	}
}
