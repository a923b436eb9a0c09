package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
	"github.com/ironsheep/image-space-mcp/internal/imaging"
)

type codecKey struct{}

// newRootCmd builds the spacectl command tree. The space is rebuilt from the
// global flags before every subcommand runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacectl",
		Short: "Explore the space of quantized images",
		Long: `spacectl names every image of a fixed grid shape and level count by a
fixed-length identifier, and walks, converts and renders them.

Example:
  spacectl --steps 2 --shape 1x2x1 next 01`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			shapeFlag, _ := cmd.Flags().GetString("shape")

			shape, err := canvas.ParseShape(shapeFlag)
			if err != nil {
				return err
			}
			if shape.Channels > imaging.MaxChannels {
				return fmt.Errorf("%w: %d channels cannot be rendered, want 1-%d",
					canvas.ErrConfig, shape.Channels, imaging.MaxChannels)
			}
			codec, err := canvas.New(steps, shape)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), codecKey{}, codec))
			return nil
		},
	}

	rootCmd.PersistentFlags().IntP("steps", "s", 8, "Quantization levels per channel (2-62)")
	rootCmd.PersistentFlags().String("shape", "64x64x3", "Grid shape as HxWxC or HxW")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for random; unset draws from runtime entropy")

	rootCmd.AddCommand(
		newInfoCmd(),
		newNextCmd(),
		newPrevCmd(),
		newStepCmd(),
		newMinCmd(),
		newMaxCmd(),
		newRandomCmd(),
		newValidateCmd(),
		newDecodeCmd(),
		newEncodeCmd(),
		newRenderCmd(),
		newFromImageCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func codecFrom(cmd *cobra.Command) *canvas.Codec {
	return cmd.Context().Value(codecKey{}).(*canvas.Codec)
}
