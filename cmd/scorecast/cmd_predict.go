package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/scorecast/predict"
	"github.com/spf13/cobra"
)

func newPredictCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		hours      float64
		difficulty string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict an exam score for one student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := predict.Input{HoursStudied: hours, ExamDifficulty: difficulty}
			if err := in.Validate(); err != nil {
				return fail(stderr, "Prediction", err)
			}

			cfg, closer, err := setup(cmd, stderr)
			if err != nil {
				return fail(stderr, "Prediction", err)
			}
			defer closer.Close()

			p, err := predict.LoadPredictor(cfg.ModelPath)
			if err != nil {
				return fail(stderr, "Prediction", err)
			}
			res, err := p.Predict(in)
			if err != nil {
				return fail(stderr, "Prediction", err)
			}
			fmt.Fprintf(stdout, "Predicted score: %.2f\n", res.PredictedScore)
			return nil
		},
	}
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours studied as a decimal (e.g., 4.5)")
	cmd.Flags().StringVar(&difficulty, "difficulty", predict.DefaultDifficulty, "Exam difficulty: Easy, Medium or Hard")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}
