package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-space-mcp/internal/imaging"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the image space",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			codec := codecFrom(cmd)
			cardinality := codec.Cardinality().String()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "steps:        %d\n", codec.Steps())
			fmt.Fprintf(out, "shape:        %s\n", codec.Shape())
			fmt.Fprintf(out, "id length:    %d\n", codec.CellCount())
			fmt.Fprintf(out, "alphabet:     %s\n", codec.Alphabet())
			fmt.Fprintf(out, "cardinality:  %d^%d (%d decimal digits)\n",
				codec.Steps(), codec.CellCount(), len(cardinality))
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id>",
		Short: "Check that id is a canonical identifier; exits non-zero if not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := codecFrom(cmd).Decode(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Print the decimal index of id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := codecFrom(cmd).Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.String())
			return nil
		},
	}
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <index>",
		Short: "Print the identifier at a decimal index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := new(big.Int).SetString(strings.TrimSpace(args[0]), 10)
			if !ok {
				return fmt.Errorf("index %q is not a decimal integer", args[0])
			}
			id, err := codecFrom(cmd).Encode(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Write the image with identifier id to a file",
		Long: `Write the image with identifier id to a file. The format follows the
extension of --out.

Example:
  spacectl --steps 2 --shape 2x2x1 render 0110 --out checker.png --size 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			size, _ := cmd.Flags().GetInt("size")

			codec := codecFrom(cmd)
			g, err := codec.ToGrid(args[0])
			if err != nil {
				return err
			}
			if err := imaging.Save(g, codec.Shape(), codec.Steps(), size, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	renderCmd.Flags().StringP("out", "o", "image.png", "Output file")
	renderCmd.Flags().Int("size", 256, "Longest side in pixels, 0 for grid resolution")
	return renderCmd
}

func newFromImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-image <path>",
		Short: "Print the identifier closest to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := codecFrom(cmd)
			g, err := imaging.LoadGrid(imaging.NewImageCache(), args[0], codec.Shape(), codec.Steps())
			if err != nil {
				return err
			}
			id, err := codec.FromGrid(g)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
