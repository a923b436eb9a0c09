package cmd

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"
)

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <id>",
		Short: "Print the identifier after id, wrapping to the first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := codecFrom(cmd).Step(args[0], 1)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev <id>",
		Short: "Print the identifier before id, wrapping to the last",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := codecFrom(cmd).Step(args[0], -1)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newStepCmd() *cobra.Command {
	stepCmd := &cobra.Command{
		Use:   "step <id>",
		Short: "Move id by any signed offset around the ring of identifiers",
		Long: `Move id by any signed offset around the ring of identifiers.

Example:
  spacectl step 0a3f --by=-1000000000000000000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, _ := cmd.Flags().GetString("by")
			delta, ok := new(big.Int).SetString(strings.TrimSpace(by), 10)
			if !ok {
				return fmt.Errorf("--by %q is not a decimal integer", by)
			}
			id, err := codecFrom(cmd).StepBig(args[0], delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	stepCmd.Flags().String("by", "1", "Signed decimal offset of any size")
	return stepCmd
}

func newMinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "min",
		Short: "Print the identifier of the first image",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), codecFrom(cmd).Min())
		},
	}
}

func newMaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "max",
		Short: "Print the identifier of the last image",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), codecFrom(cmd).Max())
		},
	}
}

func newRandomCmd() *cobra.Command {
	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "Print uniformly random identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}

			var src *rand.PCG
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				src = rand.NewPCG(seed, seed)
			} else {
				src = rand.NewPCG(rand.Uint64(), rand.Uint64())
			}
			rng := rand.New(src)

			codec := codecFrom(cmd)
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), codec.Random(rng))
			}
			return nil
		},
	}
	randomCmd.Flags().IntP("count", "n", 1, "Number of identifiers to print")
	return randomCmd
}
