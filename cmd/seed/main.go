package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/catalog"
	"lumina/internal/config"
	"lumina/internal/db"
	"lumina/internal/logger"
	"lumina/internal/repository"
)

// go run ./cmd/seed --file data/bd.json
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		filePath   string
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Importa o catálogo (bd.json) para o Postgres",
		Long:         "Lê o documento do catálogo, um bundle por idioma, e grava cada bundle na tabela catalog_bundles.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			slog.SetDefault(log)

			if cfg.DatabaseURL == "" {
				return fmt.Errorf("database_url is required (DATABASE_URL or LUMINA_DATABASE_URL)")
			}
			if filePath == "" {
				filePath = cfg.CatalogPath
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read catalog %s: %w", filePath, err)
			}
			doc, err := catalog.ParseDocument(data)
			if err != nil {
				return err
			}

			conn, err := db.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			writer := repository.NewCatalogWriter(conn)
			if err := writer.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			n, err := writer.Import(cmd.Context(), doc)
			if err != nil {
				return err
			}

			slog.Info("catálogo importado", "file", filePath, "bundles", n)
			fmt.Fprintf(cmd.OutOrStdout(), "%d bundles importados de %s\n", n, filePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "arquivo de configuração YAML (opcional)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "documento do catálogo (padrão: catalog_path da configuração)")

	return cmd
}
