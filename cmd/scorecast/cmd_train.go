package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/scorecast/pipeline"
	"github.com/spf13/cobra"
)

func newTrainCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train a linear regression model and save the artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(cmd, stderr)
			if err != nil {
				return fail(stderr, "Training", err)
			}
			defer closer.Close()

			res, err := pipeline.Train(cmd.Context(), cfg)
			if err != nil {
				return fail(stderr, "Training", err)
			}
			fmt.Fprintf(stdout, "Saved model to %s\n", res.ModelPath)
			return nil
		},
	}
}
