package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "tidynotes.com/tidynotes/internal/configs"
	"tidynotes.com/tidynotes/internal/services"
	"tidynotes.com/tidynotes/internal/storage"
	"tidynotes.com/tidynotes/pkg/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the local store from a JSON document",
	Long:  "Resets the local store and re-inserts the document's projects and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		zlog := logger.New()
		defer zlog.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		db := config.NewDatabaseClient(cfg.DatabaseDSN)
		local, err := storage.NewLocal(db)
		if err != nil {
			log.Fatalf("local store initialization failed: %v", err)
		}

		return services.NewExportService(local, zlog).ImportAll(cmd.Context(), data)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
