package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordnest/wordnest/internal/cli"
	"github.com/wordnest/wordnest/internal/profile"
)

// entryCommands builds the shared add/remove/star/edit/list command set for
// words and sentences, which have identical lifecycles.
type entryCommands struct {
	kind    string
	list    func(p *profile.Profile) []profile.Word
	add     func(p *profile.Profile, text string, now time.Time) (profile.Word, error)
	remove  func(p *profile.Profile, id string) error
	setStar func(p *profile.Profile, id string, star int) error
	edit    func(p *profile.Profile, id, text string) error
}

func newWordCommand() *cobra.Command {
	return newEntryCommand(entryCommands{
		kind: "word",
		list: func(p *profile.Profile) []profile.Word { return p.Data.Words },
		add: func(p *profile.Profile, text string, now time.Time) (profile.Word, error) {
			return p.AddWord(text, now)
		},
		remove:  func(p *profile.Profile, id string) error { return p.RemoveWord(id) },
		setStar: func(p *profile.Profile, id string, star int) error { return p.SetWordStar(id, star) },
		edit:    func(p *profile.Profile, id, text string) error { return p.UpdateWordText(id, text) },
	})
}

func newSentenceCommand() *cobra.Command {
	return newEntryCommand(entryCommands{
		kind: "sentence",
		list: func(p *profile.Profile) []profile.Word { return p.Data.Sentences },
		add: func(p *profile.Profile, text string, now time.Time) (profile.Word, error) {
			return p.AddSentence(text, now)
		},
		remove:  func(p *profile.Profile, id string) error { return p.RemoveSentence(id) },
		setStar: func(p *profile.Profile, id string, star int) error { return p.SetSentenceStar(id, star) },
		edit:    func(p *profile.Profile, id, text string) error { return p.UpdateSentenceText(id, text) },
	})
}

func newEntryCommand(commands entryCommands) *cobra.Command {
	var profileID string
	parentCmd := &cobra.Command{
		Use:   commands.kind,
		Short: fmt.Sprintf("Manage %ss of a profile", commands.kind),
	}
	parentCmd.PersistentFlags().StringVar(&profileID, "profile", "", "Profile ID (defaults to the current profile)")

	mutate := func(cmd *cobra.Command, change func(p *profile.Profile) error) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, _, cleanup, err := newRepository(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		found, err := requireProfile(repo, profileID)
		if err != nil {
			return err
		}
		if err := change(found); err != nil {
			return err
		}
		if err := repo.Save(found); err != nil {
			return fmt.Errorf("repo.Save > %w", err)
		}
		return nil
	}

	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: fmt.Sprintf("Add a %s (star rating starts at 1)", commands.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(p *profile.Profile) error {
				added, err := commands.add(p, args[0], time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", commands.kind, added.Text, added.ID)
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: fmt.Sprintf("Remove a %s by ID", commands.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(p *profile.Profile) error {
				return commands.remove(p, args[0])
			})
		},
	}

	starCmd := &cobra.Command{
		Use:   "star <id> <1-5>",
		Short: fmt.Sprintf("Set a %s's proficiency rating", commands.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			star, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid star rating %s: %w", args[1], err)
			}
			return mutate(cmd, func(p *profile.Profile) error {
				return commands.setStar(p, args[0], star)
			})
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: fmt.Sprintf("Change a %s's text", commands.kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, func(p *profile.Profile) error {
				return commands.edit(p, args[0], args[1])
			})
		},
	}

	var sortKey string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", commands.kind),
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

			found, err := requireProfile(repo, profileID)
			if err != nil {
				return err
			}
			key, err := profile.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			cli.PrintEntries(cmd.OutOrStdout(), commands.list(found), key)
			return nil
		},
	}
	listCmd.Flags().StringVar(&sortKey, "sort", string(profile.SortDateDesc), "Sort key (star_asc, star_desc, alpha_asc, alpha_desc, date_asc, date_desc)")

	parentCmd.AddCommand(addCmd, removeCmd, starCmd, editCmd, listCmd)
	return parentCmd
}

func newLetterCommand() *cobra.Command {
	var profileID string
	letterCmd := &cobra.Command{
		Use:   "letter",
		Short: "Manage letter visibility and pronunciation selections",
	}
	letterCmd.PersistentFlags().StringVar(&profileID, "profile", "", "Profile ID (defaults to the current profile)")

	mutate := func(change func(p *profile.Profile) error) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, _, cleanup, err := newRepository(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		found, err := requireProfile(repo, profileID)
		if err != nil {
			return err
		}
		if err := change(found); err != nil {
			return err
		}
		if err := repo.Save(found); err != nil {
			return fmt.Errorf("repo.Save > %w", err)
		}
		return nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the 26 letters with visibility and selections",
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

			found, err := requireProfile(repo, profileID)
			if err != nil {
				return err
			}
			cli.PrintLetters(cmd.OutOrStdout(), found)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <letter>",
		Short: "Make a letter visible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(p *profile.Profile) error {
				return p.SetLetterVisible(args[0], true)
			})
		},
	}

	hideCmd := &cobra.Command{
		Use:   "hide <letter>",
		Short: "Hide a letter (clears its pronunciation selections)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(p *profile.Profile) error {
				return p.SetLetterVisible(args[0], false)
			})
		},
	}

	pronCmd := &cobra.Command{
		Use:   "pron <letter> <pronunciation>",
		Short: "Toggle a pronunciation selection (shows the letter if hidden)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(p *profile.Profile) error {
				return p.TogglePronunciation(args[0], args[1])
			})
		},
	}

	letterCmd.AddCommand(listCmd, showCmd, hideCmd, pronCmd)
	return letterCmd
}
