// SPDX-License-Identifier: EPL-2.0

// Command getbpm prints the estimated tempo and first beat time of an audio
// file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ik5/getbpm"
)

const usageLine = "Usage: getbpm <audio_file_path>"

var errUsage = errors.New("missing audio file path")

// analyzerFunc builds the Analyzer for a run once the logger is known.
type analyzerFunc func(log *slog.Logger) getbpm.Analyzer

func defaultAnalyzer(log *slog.Logger) getbpm.Analyzer {
	return getbpm.NewEngine(getbpm.WithLogger(log))
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newCommand(stdout, stderr io.Writer, analyzer analyzerFunc) *cli.Command {
	return &cli.Command{
		Name:      "getbpm",
		Usage:     "Estimate the tempo and first beat of an audio file",
		UsageText: "getbpm [options] [--] <audio_file_path>\n\n" +
			"paths starting with '-' must come after --",
		ArgsUsage: "[--] <audio_file_path>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "diagnostics written to stderr: debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("GETBPM_LOG_LEVEL"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				fmt.Fprintln(stdout, usageLine)
				return errUsage
			}

			log, err := newLogger(cmd.String("log-level"), stderr)
			if err != nil {
				return err
			}

			path := cmd.Args().First()
			log.Info("analysing", "path", path)

			res, err := getbpm.Process(analyzer(log), path)
			if err != nil {
				log.Debug("processing failed", "path", path, "error", err)
				fmt.Fprintf(stdout, "Error processing the audio file: %v\n", err)
				return nil
			}

			_, err = res.WriteTo(stdout)
			return err
		},
	}
}

func main() {
	ctx := context.Background()

	appl := newCommand(os.Stdout, os.Stderr, defaultAnalyzer)

	if err := appl.Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errUsage) {
			slog.Error("failed to run", "error", err)
		}
		os.Exit(1)
	}
}
