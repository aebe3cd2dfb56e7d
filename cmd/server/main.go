package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/blob"
	"github.com/iliyamo/placement-portal/internal/config"
	"github.com/iliyamo/placement-portal/internal/database"
	"github.com/iliyamo/placement-portal/internal/handler"
	"github.com/iliyamo/placement-portal/internal/queue"
	"github.com/iliyamo/placement-portal/internal/repository"
	"github.com/iliyamo/placement-portal/internal/router"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

func main() {
	// Load .env if present; real environments set the variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	accounts := repository.NewAccountRepo(db)
	companies := repository.NewCompanyRepo(db)
	students := repository.NewStudentRepo(db)
	drives := repository.NewDriveRepo(db)
	applications := repository.NewApplicationRepo(db)
	notifications := repository.NewNotificationRepo(db)
	tokens := repository.NewTokenRepo(db)

	if err := seedAdmin(ctx, cfg, accounts); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	if err := tokens.DeleteExpired(ctx, 7*24*time.Hour); err != nil {
		log.Printf("refresh token cleanup failed: %v", err)
	}

	resumes, err := blob.New(cfg.ResumeDir)
	if err != nil {
		log.Fatalf("resume store init failed: %v", err)
	}

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()

	authH := handler.NewAuthHandler(cfg, accounts, companies, students, tokens)
	adminH := handler.NewAdminHandler(accounts, companies, students, drives, applications, tokens)
	companyH := handler.NewCompanyHandler(companies, drives, applications)
	studentH := handler.NewStudentHandler(accounts, students, companies, drives, applications, notifications, resumes)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, studentH, cacheCfg, rdb)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterCompany(e, companyH, cfg.JWTSecret)
	router.RegisterStudent(e, studentH, cfg.JWTSecret)

	// Audit consumer runs for the life of the process and reconnects on its own.
	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the initial ADMIN account when none exists so a fresh
// deployment has a way in. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD; the password should be changed after first login.
func seedAdmin(ctx context.Context, cfg config.Config, accounts *repository.AccountRepo) error {
	n, err := accounts.CountByRole(ctx, workflow.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = accounts.Create(ctx, "Administrator", cfg.AdminEmail, cfg.AdminPassword, workflow.RoleAdmin, cfg.BcryptCost)
	if errors.Is(err, repository.ErrEmailExists) {
		return nil // raced with another instance
	}
	if err == nil {
		log.Printf("seeded admin account %s", cfg.AdminEmail)
	}
	return err
}
