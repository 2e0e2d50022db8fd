package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordnest/wordnest/internal/datasync"
	"github.com/wordnest/wordnest/internal/profile"
)

func newExportCommand() *cobra.Command {
	var outputDir string
	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export one profile to a JSON file (defaults to the current profile)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, _, cleanup, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			found, err := requireProfile(repo, id)
			if err != nil {
				return err
			}

			codec := datasync.NewCodec()
			encoded, err := codec.ExportOne(*found)
			if err != nil {
				return fmt.Errorf("codec.ExportOne > %w", err)
			}
			path := filepath.Join(outputDir, datasync.ExportFilename(*found, time.Now()))
			if err := os.WriteFile(path, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", found.Name, path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory the export file is written to")
	return exportCmd
}

func newExportAllCommand() *cobra.Command {
	var outputDir string
	exportAllCmd := &cobra.Command{
		Use:   "export-all",
		Short: "Export every profile into one JSON bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, _, cleanup, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var profiles []profile.Profile
			for _, summary := range repo.ListSummaries() {
				if found, ok := repo.Get(summary.ID); ok {
					profiles = append(profiles, *found)
				}
			}

			codec := datasync.NewCodec()
			encoded, err := codec.ExportAll(profiles)
			if err != nil {
				return fmt.Errorf("codec.ExportAll > %w", err)
			}
			path := filepath.Join(outputDir, datasync.BundleFilename(time.Now()))
			if err := os.WriteFile(path, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d profiles to %s\n", len(profiles), path)
			return nil
		},
	}
	exportAllCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory the export file is written to")
	return exportAllCmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import profiles from a JSON file (single profile or bundle)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, _, cleanup, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			contents, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file %s: %w", args[0], err)
			}

			codec := datasync.NewCodec()
			result, err := codec.Import(contents)
			if err != nil {
				return fmt.Errorf("codec.Import > %w", err)
			}

			// The codec only re-keys; persisting each profile and reporting
			// partial success is this caller's job.
			saved := 0
			for i := range result.Profiles {
				if err := repo.Save(&result.Profiles[i]); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to save profile %s: %v\n", result.Profiles[i].Name, err)
					continue
				}
				saved++
			}
			if saved < len(result.Profiles) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d profiles imported\n", saved, len(result.Profiles))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}
