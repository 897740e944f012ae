package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lumina/internal/app"
	"lumina/internal/config"
	"lumina/internal/logger"
	"lumina/internal/observability"
)

type options struct {
	configPath string
	sessionID  string
	message    string
	metrics    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "chat [message]",
		Short:        "Converse com o assistente da Lumina Style",
		Long:         "Abre uma conversa no terminal com o assistente da Lumina Style, ou envia uma única mensagem e imprime a resposta.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "arquivo de configuração YAML (opcional)")
	cmd.Flags().StringVarP(&opts.sessionID, "session", "s", "", "id da sessão; reutilize para manter a memória entre execuções")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "mensagem única a enviar")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "expõe /metrics na porta configurada")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.metrics {
		observability.Start(cfg.MetricsPort)
		slog.Info("métricas expostas", "port", cfg.MetricsPort)
	}

	sessionID := strings.TrimSpace(opts.sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if message := resolveMessage(opts.message, args); message != "" {
		runSingle(ctx, a.Service, sessionID, message, cmd.OutOrStdout())
		return nil
	}

	return runInteractive(ctx, a.Service, sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
}

func resolveMessage(flag string, args []string) string {
	if value := strings.TrimSpace(flag); value != "" {
		return value
	}
	return strings.TrimSpace(strings.Join(args, " "))
}
