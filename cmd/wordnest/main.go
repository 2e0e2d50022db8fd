package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wordnest/wordnest/internal/config"
	"github.com/wordnest/wordnest/internal/profile"
	"github.com/wordnest/wordnest/internal/storage"
)

var (
	configFile string
)

func main() {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "wordnest",
		Short:         "Local profile store for a children's English flashcard app",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	// Accept underscore spellings for flags named after config keys.
	rootCommand.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCommand.AddCommand(
		newProfileCommand(),
		newWordCommand(),
		newSentenceCommand(),
		newLetterCommand(),
		newExportCommand(),
		newExportAllCommand(),
		newImportCommand(),
		newWatchCommand(),
		newStorageCommand(),
		newImageCommand(),
		newSayCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loader.Load > %w", err)
	}
	return cfg, nil
}

// newStore builds the configured storage backend. The returned cleanup
// function closes backends that hold resources.
func newStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := storage.OpenSQLite(cfg.Storage.DatabaseFile)
		if err != nil {
			return nil, nil, fmt.Errorf("storage.OpenSQLite(%s) > %w", cfg.Storage.DatabaseFile, err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := storage.NewFileStore(cfg.Storage.Directory, storage.WithQuota(cfg.Storage.QuotaBytes))
		if err != nil {
			return nil, nil, fmt.Errorf("storage.NewFileStore(%s) > %w", cfg.Storage.Directory, err)
		}
		return store, func() {}, nil
	}
}

func newRepository(cfg *config.Config) (*profile.Repository, storage.Store, func(), error) {
	store, cleanup, err := newStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile.NewRepository(store), store, cleanup, nil
}

// requireProfile resolves the profile a content command operates on: the
// --profile flag when given, otherwise the current profile pointer.
func requireProfile(repo *profile.Repository, flagID string) (*profile.Profile, error) {
	id := flagID
	if id == "" {
		id = repo.CurrentProfileID()
	}
	if id == "" {
		return nil, fmt.Errorf("no profile selected: pass --profile or run `wordnest profile use <id>`")
	}
	found, ok := repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	return found, nil
}
