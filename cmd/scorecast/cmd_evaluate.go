package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/scorecast/pipeline"
	"github.com/spf13/cobra"
)

func newEvaluateCmd(stdout, stderr io.Writer) *cobra.Command {
	var plotPath string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the saved model on the held-out split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(cmd, stderr)
			if err != nil {
				return fail(stderr, "Evaluation", err)
			}
			defer closer.Close()

			res, err := pipeline.Evaluate(cmd.Context(), cfg)
			if err != nil {
				return fail(stderr, "Evaluation", err)
			}
			fmt.Fprintf(stdout, "MAE:  %.3f\n", res.MAE)
			fmt.Fprintf(stdout, "RMSE: %.3f\n", res.RMSE)
			fmt.Fprintf(stdout, "R^2:  %.3f\n", res.R2)

			if plotPath != "" {
				if err := pipeline.PlotPredictions(plotPath, res.Actual, res.Predicted); err != nil {
					return fail(stderr, "Evaluation", err)
				}
				fmt.Fprintf(stdout, "Saved plot to %s\n", plotPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write a predicted-vs-actual plot to this file (.png, .svg, .pdf)")
	return cmd
}
