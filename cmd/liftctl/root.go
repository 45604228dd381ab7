package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/claude/liftcoach/internal/client"
	"github.com/spf13/cobra"
)

type app struct {
	serverURL string
	apiKey    string
	asJSON    bool
	client    *client.Client
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "liftctl",
		Short:         "Manage LiftCoach training plans from the terminal",
		Long:          "liftctl talks to a running LiftCoach server: edit plans and exercises, and ask the AI trainer for feedback on the selected plan.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.client = client.New(a.serverURL, client.WithAPIKey(a.apiKey))
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.serverURL, "server", envOr("LIFTCOACH_URL", "http://localhost:8080"), "LiftCoach server URL")
	rootCmd.PersistentFlags().StringVar(&a.apiKey, "api-key", os.Getenv("LIFTCOACH_SERVER_API_KEY"), "API key for the LiftCoach server")
	rootCmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print raw JSON instead of formatted output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newViewCmd(a),
		newPlanCmd(a),
		newExerciseCmd(a),
		newSuggestCmd(a),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "liftctl", Version)
			return err
		},
	}
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show plans and the selected plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.client.View(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, v, func() string { return renderView(cmd.OutOrStdout(), v) })
		},
	}
}

// print writes v as JSON with --json, otherwise the rendered text.
func (a *app) print(cmd *cobra.Command, v any, render func() string) error {
	if a.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), render())
	return err
}
