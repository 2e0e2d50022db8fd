package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordnest/wordnest/internal/cli"
)

func newProfileCommand() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage learning profiles",
	}

	profileCmd.AddCommand(
		newProfileListCommand(),
		newProfileCreateCommand(),
		newProfileDeleteCommand(),
		newProfileShowCommand(),
		newProfileUseCommand(),
		newProfileInitCommand(),
	)
	return profileCmd
}

func newProfileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profile summaries",
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

			cli.PrintSummaries(cmd.OutOrStdout(), repo.ListSummaries(), repo.CurrentProfileID())
			return nil
		},
	}
}

func newProfileCreateCommand() *cobra.Command {
	var use bool
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new empty profile",
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

			created := repo.Create(args[0])
			if err := repo.Save(created); err != nil {
				return fmt.Errorf("repo.Save > %w", err)
			}
			if use {
				if err := repo.SetCurrentProfileID(created.ID); err != nil {
					return fmt.Errorf("repo.SetCurrentProfileID > %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	createCmd.Flags().BoolVar(&use, "use", false, "Make the new profile the current one")
	return createCmd
}

func newProfileDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile",
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

			if err := repo.Delete(args[0]); err != nil {
				return fmt.Errorf("repo.Delete(%s) > %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
			return nil
		},
	}
}

func newProfileShowCommand() *cobra.Command {
	var output string
	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a full profile (defaults to the current one)",
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
			return cli.RenderProfile(cmd.OutOrStdout(), found, output)
		},
	}
	showCmd.Flags().StringVar(&output, "output", cli.FormatJSON, "Output format (json or yaml)")
	return showCmd
}

func newProfileUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Set the current profile",
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

			if _, ok := repo.Get(args[0]); !ok {
				return fmt.Errorf("profile %s not found", args[0])
			}
			if err := repo.SetCurrentProfileID(args[0]); err != nil {
				return fmt.Errorf("repo.SetCurrentProfileID > %w", err)
			}
			return nil
		},
	}
}

func newProfileInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Migrate legacy data and bootstrap the demo profile on first run",
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

			if migrated, err := repo.MigrateLegacy(); err != nil {
				return fmt.Errorf("repo.MigrateLegacy > %w", err)
			} else if migrated != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated legacy data into profile %s (%s)\n", migrated.Name, migrated.ID)
			}

			ensured, err := repo.EnsureDefault()
			if err != nil {
				return fmt.Errorf("repo.EnsureDefault > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s (%s)\n", ensured.Name, ensured.ID)
			return nil
		},
	}
}
