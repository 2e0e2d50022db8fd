package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordnest/wordnest/internal/cli"
	"github.com/wordnest/wordnest/internal/config"
	"github.com/wordnest/wordnest/internal/profile"
	"github.com/wordnest/wordnest/internal/storage"
	"github.com/wordnest/wordnest/internal/watch"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the active profile and report changes from other contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, store, cleanup, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			options := []watch.Option{watch.WithPollInterval(cfg.Sync.PollInterval())}
			if fileStore, ok := store.(*storage.FileStore); ok && cfg.Storage.Backend == config.BackendFile {
				options = append(options, watch.WithStoragePaths(fileStore.Path(profile.ProfilesKey)))
			}

			watcher := watch.NewWatcher(repo, watch.NewNotifier(), options...)
			fmt.Fprintln(cmd.OutOrStdout(), "Watching the active profile. Press Ctrl-C to stop.")
			err = watcher.Run(cmd.Context(), func(p profile.Profile) {
				summary := p.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "reloaded %s: %d visible letters, %d words, %d sentences (modified %s)\n",
					p.Name, summary.LetterCount, summary.WordCount, summary.SentenceCount, p.LastModified)
			})
			if err != nil && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}

func newStorageCommand() *cobra.Command {
	storageCmd := &cobra.Command{
		Use:   "storage",
		Short: "Storage maintenance commands",
	}
	storageCmd.AddCommand(newStorageInfoCommand())
	return storageCmd
}

func newStorageInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, store, cleanup, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			reporter, ok := store.(cli.UsageReporter)
			if !ok {
				return fmt.Errorf("storage backend %s cannot report usage", cfg.Storage.Backend)
			}
			return cli.PrintStorageInfo(cmd.OutOrStdout(), reporter, cfg.Storage.QuotaBytes, len(repo.ListSummaries()))
		},
	}
}
