package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"ca-backend/internal/auth"
	"ca-backend/internal/cache"
	"ca-backend/internal/config"
	"ca-backend/internal/database"
	"ca-backend/internal/db"
	"ca-backend/internal/handlers"
	"ca-backend/internal/health"
	h "ca-backend/internal/http"
	"ca-backend/internal/mail"
	"ca-backend/internal/middleware"
	"ca-backend/internal/monitoring"
	"ca-backend/internal/repositories"
	"ca-backend/internal/services"
	"ca-backend/internal/storage"
	"ca-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional: access checks fall back to the database.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (access checks will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	fileStore, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	var mailer mail.Sender
	if cfg.Mail.ZeptoAPIKey != "" {
		mailer = mail.NewZeptoMailService(cfg.Mail.ZeptoAPIKey, cfg.Mail.FromAddress, cfg.Mail.FromName)
	} else {
		log.Println("[Mail] ZEPTO_API_KEY not set, email delivery disabled")
		mailer = mail.NoopSender{}
	}

	jwtManager := auth.NewJWTManager(cfg)

	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)
	documentTypeRepo := repositories.NewDocumentTypeRepository(pool)
	credentialRepo := repositories.NewCredentialRepository(pool)
	credentialTypeRepo := repositories.NewCredentialTypeRepository(pool)
	processRepo := repositories.NewProcessRepository(pool)
	sopRepo := repositories.NewSOPRepository(pool)
	sopStepRepo := repositories.NewSOPStepRepository(pool)
	categoryRepo := repositories.NewServiceCategoryRepository(pool)
	agentRepo := repositories.NewServiceAgentRepository(pool)
	ticketRepo := repositories.NewServiceTicketRepository(pool)
	accessRepo := repositories.NewModuleAccessRepository(pool)

	userService := services.NewUserService(userRepo, loginLogRepo, jwtManager)
	userService.SetMailer(mailer)
	totpService := services.NewTOTPService(userRepo, totpRepo)
	accessService := services.NewAccessService(accessRepo)
	customerService := services.NewCustomerService(customerRepo)
	customerService.SetMailer(mailer)
	documentService := services.NewDocumentService(documentRepo, documentTypeRepo, fileStore)
	credentialService := services.NewCredentialService(credentialRepo, credentialTypeRepo)
	processService := services.NewProcessService(processRepo, sopRepo, categoryRepo)
	sopService := services.NewSOPService(sopRepo, sopStepRepo, fileStore)
	categoryService := services.NewServiceCategoryService(categoryRepo, sopRepo)
	agentService := services.NewServiceAgentService(agentRepo, categoryRepo)
	ticketService := services.NewServiceTicketService(ticketRepo, categoryRepo, agentRepo, customerRepo)
	reportService := services.NewReportService(customerRepo, ticketRepo)

	healthChecker := health.NewHealthChecker(pool)
	monitor := monitoring.NewCollector(pool)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	accessMiddleware := middleware.NewAccessMiddleware(accessService)
	corsMiddleware := middleware.NewCORS(cfg)

	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	accessHandler := handlers.NewAccessHandler(accessService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	credentialHandler := handlers.NewCredentialHandler(credentialService)
	processHandler := handlers.NewProcessHandler(processService)
	sopHandler := handlers.NewSOPHandler(sopService)
	categoryHandler := handlers.NewServiceCategoryHandler(categoryService)
	agentHandler := handlers.NewServiceAgentHandler(agentService)
	ticketHandler := handlers.NewServiceTicketHandler(ticketService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		totpHandler,
		accessHandler,
		customerHandler,
		documentHandler,
		credentialHandler,
		processHandler,
		sopHandler,
		categoryHandler,
		agentHandler,
		ticketHandler,
		reportHandler,
		healthHandler,
		monitor,
		authMiddleware,
		accessMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
