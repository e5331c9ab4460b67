// scorecast trains, evaluates and serves the exam score regression model.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/scorecast/config"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// usageExitCode is returned for flag and argument errors reported by cobra.
const usageExitCode = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError is returned by RunE functions that have already written their
// message to stderr. code is the process exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

// run executes the scorecast CLI with the given args.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(stderr, "scorecast: %v\n", err)
		return usageExitCode
	}
	return 0
}

// newRootCmd creates the root cobra command with all subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "scorecast",
		Short:         "Exam score regression: train, evaluate, predict and serve",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("config", config.DefaultPath, "Path to YAML config file")
	root.AddCommand(
		newTrainCmd(stdout, stderr),
		newEvaluateCmd(stdout, stderr),
		newPredictCmd(stdout, stderr),
		newServeCmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// fail prints "<action> failed: <err>" and returns the exit code for the
// error's kind.
func fail(stderr io.Writer, action string, err error) error {
	fmt.Fprintf(stderr, "%s failed: %v\n", action, err)
	return &exitError{code: errors.ExitCode(errors.KindOf(err))}
}

// setup loads the config named by --config and installs the logger it
// describes. The returned Closer releases the log file.
func setup(cmd *cobra.Command, stderr io.Writer) (*config.Config, io.Closer, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts := cfg.Log.Options()
	opts.Console = stderr
	closer, err := log.Setup(opts)
	if err != nil {
		return nil, nil, err
	}
	log.GetLoggerWithName("cli").Debug("Config loaded",
		log.ConfigPathKey, path,
		log.DataPathKey, cfg.DataPath,
		log.ModelPathKey, cfg.ModelPath,
	)
	return cfg, closer, nil
}
