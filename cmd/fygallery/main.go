package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"fygallery/internal/config"
	"fygallery/internal/ui"
)

// NewRootCmd creates the command that starts the gallery window. run is
// called with the merged configuration and the directories to load.
func NewRootCmd(run func(cfg *config.Config, dirs []string) error) *cobra.Command {
	var (
		configPath     string
		ordered        bool
		noCache        bool
		thumbSize      int
		swipeThreshold float32
	)

	cmd := &cobra.Command{
		Use:   "fygallery [dir...]",
		Short: "FyGallery - browse images and videos in a grid with a lightbox viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			// Flags override file values only when given.
			if cmd.Flags().Changed("ordered") {
				cfg.Uploads.Ordered = ordered
			}
			if cmd.Flags().Changed("no-cache") {
				cfg.Thumbs.Disabled = noCache
			}
			if cmd.Flags().Changed("thumb-size") {
				cfg.ThumbnailSize = thumbSize
			}
			if cmd.Flags().Changed("swipe-threshold") {
				cfg.SwipeThreshold = swipeThreshold
			}
			return run(cfg, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a config.toml")
	cmd.Flags().BoolVar(&ordered, "ordered", false, "Append uploads in selection order once a batch is decoded")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not keep thumbnails on disk")
	cmd.Flags().IntVar(&thumbSize, "thumb-size", 0, "Grid tile edge in pixels")
	cmd.Flags().Float32Var(&swipeThreshold, "swipe-threshold", 0, "Horizontal swipe distance in pixels")
	return cmd
}

func main() {
	log.SetPrefix("[fygallery] ")

	if err := NewRootCmd(ui.CreateApplication).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
