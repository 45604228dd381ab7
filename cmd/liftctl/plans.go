package main

import (
	"github.com/claude/liftcoach/internal/coach"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"plans"},
		Short:   "Manage training plans",
	}

	cmd.AddCommand(
		newPlanListCmd(a),
		newPlanAddCmd(a),
		newPlanRenameCmd(a),
		newPlanDeleteCmd(a),
		newPlanSelectCmd(a),
	)

	return cmd
}

func (a *app) printView(cmd *cobra.Command, v *coach.View) error {
	return a.print(cmd, v, func() string { return renderView(cmd.OutOrStdout(), v) })
}

func newPlanListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.client.View(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, v.Plans, func() string { return renderPlanTabs(cmd.OutOrStdout(), v.Plans) })
		},
	}
}

func newPlanAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create a new plan and select it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.client.AddPlan(cmd.Context())
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}

func newPlanRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <plan-id> <name>",
		Short: "Rename a plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.RenamePlan(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}

func newPlanDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.DeletePlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}

func newPlanSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <plan-id>",
		Short: "Select a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.SelectPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}
