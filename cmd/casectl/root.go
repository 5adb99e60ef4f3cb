package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"casebrief/internal/app"
	"casebrief/internal/config"
	"casebrief/internal/contextutil"
)

// application is set by the root command before any subcommand runs.
var application *app.App

var rootCmd = &cobra.Command{
	Use:           "casectl",
	Short:         "Operate on legal cases: ingest files, ask questions, extract metadata",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		slog.SetDefault(app.NewLogger(cfg, cmd.ErrOrStderr()))
		cmd.SetContext(contextutil.WithLogger(cmd.Context(), slog.Default().With("command", cmd.CommandPath())))

		application, err = app.New(cmd.Context(), cfg)
		return err
	},
}

// execute runs the root command and then closes the application, whether or
// not the command succeeded.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if application != nil {
		err = errors.Join(err, application.Close())
		application = nil
	}
	return err
}

func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
