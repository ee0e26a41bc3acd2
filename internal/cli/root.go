// Package cli wires configuration, storage and the user interfaces into
// the tracker command.
package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/meeting-tracker/internal/app"
	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/credential"
	"github.com/nhle/meeting-tracker/internal/logger"
	"github.com/nhle/meeting-tracker/internal/model"
)

// openCredentials opens the keyring holding the service key.
var openCredentials = credential.Open

type options struct {
	configPath string
}

// NewRootCmd builds the tracker command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tracker",
		Short: "Track meetings, todos and learnings from the terminal",
		Long: `tracker keeps three lists (meetings, todos and learnings) in a
local SQLite file, a Postgres database or a hosted REST data service.
Run without a subcommand to open the terminal UI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "Path to the config file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newAuthCmd())
	root.AddCommand(newConfigCmd(opts))
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env (existing environment wins) and then the config
// file.
func loadConfig(path string) (*model.AppConfig, error) {
	_ = godotenv.Load()
	return model.LoadConfig(model.ExpandPath(path))
}

// openClient resolves the service key from the keyring when needed and
// opens the configured backend.
func openClient(ctx context.Context, cfg *model.AppConfig) (*collection.Client, error) {
	if cfg.Backend.Driver == model.DriverREST && cfg.Backend.ServiceKey == "" {
		store, err := openCredentials()
		if err != nil {
			return nil, err
		}
		if err := store.ResolveServiceKey(&cfg.Backend); err != nil {
			return nil, err
		}
	}
	client, err := collection.Open(ctx, cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend.Driver, err)
	}
	return client, nil
}

func runTUI(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.New(logFile, cfg.Log.Level)
	ctx = log.WithContext(ctx)

	client, err := openClient(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	defer client.Close()

	log.Info().Str("backend", client.Backend).Msg("starting terminal UI")
	p := tea.NewProgram(
		app.New(ctx, client),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
