package main

import (
	"fmt"
	"strings"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/spf13/cobra"
)

func newExerciseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercise",
		Aliases: []string{"ex"},
		Short:   "Manage the exercises of a plan",
	}

	cmd.AddCommand(
		newExerciseAddCmd(a),
		newExerciseSetCmd(a),
		newExerciseDeleteCmd(a),
	)

	return cmd
}

func newExerciseAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <plan-id> <name...>",
		Short: "Add an exercise (3 sets of 10 reps at 0kg)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.AddExercise(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}

func newExerciseSetCmd(a *app) *cobra.Command {
	fields := []string{coach.FieldSets, coach.FieldReps, coach.FieldWeight}
	return &cobra.Command{
		Use:       "set <plan-id> <exercise-id> <sets|reps|weight> <value>",
		Short:     "Set one numeric field of an exercise",
		Args:      cobra.ExactArgs(4),
		ValidArgs: fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			field := strings.ToLower(args[2])
			switch field {
			case coach.FieldSets, coach.FieldReps, coach.FieldWeight:
			default:
				return fmt.Errorf("unknown field %q (want one of %s)", args[2], strings.Join(fields, ", "))
			}
			v, err := a.client.EditExerciseField(cmd.Context(), args[0], args[1], field, args[3])
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}

func newExerciseDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan-id> <exercise-id>",
		Short: "Remove an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.DeleteExercise(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printView(cmd, v)
		},
	}
}
