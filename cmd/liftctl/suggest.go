package main

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd(a *app) *cobra.Command {
	var noWait bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the AI trainer for feedback on the selected plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.client.RequestSuggestions(cmd.Context(), !noWait)
			if err != nil {
				return err
			}
			return a.print(cmd, st, func() string { return renderRequest(cmd.OutOrStdout(), st) })
		},
	}
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return while the request is still loading")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the latest suggestion request",
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := a.client.Suggestions(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd, st, func() string { return renderRequest(cmd.OutOrStdout(), st) })
			},
		},
		&cobra.Command{
			Use:   "dismiss",
			Short: "Close the suggestion result",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := a.client.DismissSuggestions(cmd.Context())
				if err != nil {
					return err
				}
				return a.printView(cmd, v)
			},
		},
	)

	return cmd
}
