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

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the local store to a JSON document",
	Args:  cobra.ExactArgs(1),
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

		data, err := services.NewExportService(local, zlog).ExportAll(cmd.Context())
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
