package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordnest/wordnest/internal/images"
	"github.com/wordnest/wordnest/internal/speech"
)

func newImageCommand() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Word illustration lookups",
	}
	imageCmd.AddCommand(&cobra.Command{
		Use:   "lookup <word>",
		Short: "Resolve (and cache) the illustration URL for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, cleanup, err := newStore(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			library := images.NewLibrary(
				store,
				images.NewUnsplashFetcher(cfg.Images.UnsplashAccessKey),
				images.WithCacheKey(cfg.Images.CacheKey),
			)
			fmt.Fprintln(cmd.OutOrStdout(), library.Lookup(cmd.Context(), args[0]))
			return nil
		},
	})
	return imageCmd
}

func newSayCommand() *cobra.Command {
	var rate float64
	sayCmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Speak a word or sentence through the configured TTS command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Speech.Command == "" {
				return fmt.Errorf("no speech command configured (set speech.command)")
			}
			if rate == 0 {
				rate = cfg.Speech.Rate
			}
			speech.NewCommandPlayer(cfg.Speech.Command).Play(args[0], rate)
			return nil
		},
	}
	sayCmd.Flags().Float64Var(&rate, "rate", 0, "Playback rate (defaults to speech.rate)")
	return sayCmd
}
