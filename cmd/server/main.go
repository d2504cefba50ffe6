package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "worklog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"worklog/internal/auth"
	"worklog/internal/cache"
	"worklog/internal/config"
	"worklog/internal/db"
	"worklog/internal/handler"
	"worklog/internal/model"
	"worklog/internal/repository"
	"worklog/internal/router"
	"worklog/internal/service"
)

// @title Worklog API
// @version 1.0
// @description Time-tracking API with JWT authentication and per-employee worklog ownership.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Worklog{},
			&model.Account{},
			&model.Employee{},
			&model.Team{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Team{},
		&model.Employee{},
		&model.Account{},
		&model.Worklog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)
	worklogRepo := repository.NewWorklogRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	resolver := service.NewOwnershipResolver(accountRepo)

	// Initialize services
	authService := service.NewAuthService(accountRepo, employeeRepo, jwtService)
	worklogService := service.NewWorklogService(worklogRepo, employeeRepo, resolver)
	teamService := service.NewTeamService(teamRepo, cacheClient)
	employeeService := service.NewEmployeeService(employeeRepo, teamRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	worklogHandler := handler.NewWorklogHandler(worklogService)
	teamHandler := handler.NewTeamHandler(teamService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	if err := bootstrapAccounts(context.Background(), accountRepo); err != nil {
		log.Fatalf("bootstrap accounts: %v", err)
	}

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		worklogHandler,
		teamHandler,
		employeeHandler,
	)

	log.Printf("API documentation available at http://localhost:%s/api-docs/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// bootstrapAccounts seeds the default admin and user accounts when the
// account table is empty, so a fresh install is immediately usable.
func bootstrapAccounts(ctx context.Context, accounts repository.AccountRepository) error {
	count, err := accounts.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		password string
		role     auth.Role
	}{
		{"admin", "admin123", auth.RoleAdmin},
		{"user", "user123", auth.RoleUser},
	}
	for _, d := range defaults {
		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account := &model.Account{
			Username:     d.username,
			PasswordHash: string(hashed),
			Role:         d.role,
		}
		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
		log.Printf("seeded default account %q (%s)", d.username, d.role)
	}
	return nil
}
