package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/openroad/driveschool/internal/api"
	"github.com/openroad/driveschool/internal/api/handlers"
	"github.com/openroad/driveschool/internal/app"
	"github.com/openroad/driveschool/internal/config"
	"github.com/openroad/driveschool/internal/db"
	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
	"github.com/openroad/driveschool/internal/service"
)

func main() {
	// .env is optional, real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Env)
	defer logger.Sync()

	gormDB, err := db.NewGormDB(cfg)
	if err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal("auto migrate", zap.Error(err))
	}

	if cfg.SeedDemoData {
		if err := db.SeedDemoData(gormDB); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	userRepo := repository.NewGormUserRepository(gormDB)
	schoolRepo := repository.NewGormSchoolRepository(gormDB)
	instructorRepo := repository.NewGormInstructorRepository(gormDB)
	slotRepo := repository.NewGormSlotRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	availabilityRepo := repository.NewGormAvailabilityRepository(gormDB)
	reviewRepo := repository.NewGormReviewRepository(gormDB)

	authSvc := service.NewAuthService(userRepo, logger)
	schoolSvc := service.NewSchoolService(gormDB, schoolRepo, instructorRepo, slotRepo, bookingRepo, logger)
	bookingSvc := service.NewBookingService(gormDB, userRepo, instructorRepo, slotRepo, bookingRepo, logger)
	calendarSvc := service.NewCalendarService(gormDB, instructorRepo, availabilityRepo, bookingRepo, cfg.CalendarBlockDestructive, logger)
	reviewSvc := service.NewReviewService(reviewRepo, schoolRepo, userRepo, logger)

	router := api.NewRouter(
		handlers.NewAuthHandler(authSvc),
		handlers.NewSchoolHandler(schoolSvc, reviewSvc, bookingSvc),
		handlers.NewBookingHandler(bookingSvc),
		handlers.NewDriverHandler(bookingSvc, calendarSvc),
		handlers.NewAdminHandler(schoolSvc, bookingSvc, reviewSvc, calendarSvc),
		handlers.NewReviewHandler(reviewSvc),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Setup(engine)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: engine,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
