package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kashala/atm-finder-go/internal/config"
	"github.com/kashala/atm-finder-go/internal/database"
	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/repository"
	"github.com/kashala/atm-finder-go/internal/search"
	"github.com/kashala/atm-finder-go/internal/storage"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atmctl",
	Short: "Admin tasks for the ATM finder backend",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled Lubumbashi ATM fixtures into sqlite",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return err
		}
		defer db.Close()

		return database.Seed(db)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Bulk-index the stored ATMs into Elasticsearch",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.ElasticURL == "" {
			return fmt.Errorf("ELASTIC_URL is not set")
		}

		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return err
		}
		defer db.Close()

		atms, err := repository.NewATMRepository(db).List(cmd.Context(), models.ATMFilter{})
		if err != nil {
			return err
		}

		store, err := search.NewStore(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			return err
		}
		if err := store.IndexATMs(cmd.Context(), atms); err != nil {
			return err
		}

		fmt.Printf("Indexed %d ATMs into %s\n", len(atms), cfg.ElasticIndex)
		return nil
	},
}

var logosDir string

var logosCmd = &cobra.Command{
	Use:   "logos",
	Short: "Upload bank logo assets to MinIO",
	Long:  "Uploads every image in --dir, using the file name (minus extension) as the bank name.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		store, err := storage.NewLogoStore(cmd.Context(), storage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(logosDir)
		if err != nil {
			return fmt.Errorf("failed to read logos directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			bank := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

			if err := uploadLogo(cmd.Context(), store, bank, filepath.Join(logosDir, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	},
}

func uploadLogo(ctx context.Context, store *storage.LogoStore, bank, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	url, err := store.Upload(ctx, bank, f, info.Size(), "image/png")
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s\n", bank, url)
	return nil
}

func init() {
	logosCmd.Flags().StringVarP(&logosDir, "dir", "d", "./assets/logos", "Directory of logo images")
	rootCmd.AddCommand(seedCmd, indexCmd, logosCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
