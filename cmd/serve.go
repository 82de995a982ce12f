package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tidynotes.com/tidynotes/internal/cloud"
	config "tidynotes.com/tidynotes/internal/configs"
	httpapi "tidynotes.com/tidynotes/internal/http"
	repository "tidynotes.com/tidynotes/internal/repositories"
	"tidynotes.com/tidynotes/internal/services"
	"tidynotes.com/tidynotes/internal/storage"
	"tidynotes.com/tidynotes/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the TidyNotes data core HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		zlog := logger.New()
		defer zlog.Sync()

		db := config.NewDatabaseClient(cfg.DatabaseDSN)
		local, err := storage.NewLocal(db)
		if err != nil {
			log.Fatalf("local store initialization failed: %v", err)
		}
		memory := storage.NewMemory()

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()
		cloudStore := cloud.NewRedisStore(redisClient, cfg.CloudKeyPrefix)

		migrator := services.NewMigrator(zlog)

		kind := repository.BackendLocal
		if cfg.Backend == "memory" {
			kind = repository.BackendMemory
		}
		factory := repository.NewFactory(memory, local, kind, migrator.Run)
		factory.SetReminderNotifier(logReminderNotifier{log: zlog})
		factory.SetImageStore(storage.NewDiskImageStore(cfg.ImageDir))

		if err := migrator.EnsureInitialData(context.Background(), memory, local); err != nil {
			log.Fatalf("initial data setup failed: %v", err)
		}

		syncService := services.NewSyncService(cloudStore, local, zlog)
		profileService := services.NewProfileService(cloudStore, repository.NewProfileRepository(local), zlog)
		exportService := services.NewExportService(local, zlog)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		handler := httpapi.NewHandler(factory, migrator, syncService, profileService, exportService)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

// logReminderNotifier stands in for the platform notification scheduler:
// the core only hands over the reminder fields.
type logReminderNotifier struct {
	log *zap.Logger
}

func (n logReminderNotifier) ScheduleReminder(taskID, title string, at time.Time) {
	n.log.Info("reminder scheduled",
		zap.String("task_id", taskID),
		zap.String("title", title),
		zap.Time("at", at),
	)
}

func (n logReminderNotifier) CancelReminder(taskID string) {
	n.log.Info("reminder cancelled", zap.String("task_id", taskID))
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
