// ABOUTME: CLI commands for logging exercise sets in the active session.
// ABOUTME: Start a set, confirm its values, edit or delete past entries.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/models"
)

var (
	logWeight   string
	logReps     uint32
	logDistance string
)

var logCmd = &cobra.Command{
	Use:     "log <exercise>",
	Aliases: []string{"l"},
	Short:   "Start an exercise set in the active session",
	Long: `Start an exercise set in the active session.

The argument is an exercise id, a custom exercise id, or a search query.
A query matching exactly one catalog or custom exercise starts that one;
anything ambiguous lists the candidates instead.

New entries are prefilled from the last time you did the same exercise,
shown so you know what to beat.

Examples:
  logout log pushups
  logout log Barbell_Squat
  logout log "bench press"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			return fmt.Errorf("no active session; start one with 'logout session start'")
		}

		id, err := resolveExerciseArg(args[0])
		if err != nil {
			return err
		}

		log, err := repo.StartExercise(cmd.Context(), s.ID, id)
		if err != nil {
			return err
		}
		color.Green("✓ Started %s", log.ExerciseName)
		if last, ok := repo.LastLogForExercise(id); ok {
			fmt.Printf("  last time:%s\n", formatLogValues(last))
		}
		fmt.Println("  confirm with 'logout log done' when the set is finished")
		return nil
	},
}

var logDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the current set and record its values",
	Long: `Finish the most recent unconfirmed set and record its values.

Weight is in kilograms, distance in kilometers, both with up to two
decimals. Either can be omitted for bodyweight or untimed work.

Examples:
  logout log done --weight 60 --reps 5
  logout log done --reps 20
  logout log done --distance 5.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			return fmt.Errorf("no active session")
		}
		index := -1
		for i := len(s.ExerciseLogs) - 1; i >= 0; i-- {
			if !s.ExerciseLogs[i].IsCompleted() {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("no set in progress; start one with 'logout log <exercise>'")
		}

		weight, reps, distance, err := parseLogValues(cmd)
		if err != nil {
			return err
		}
		if err := repo.CompleteLog(cmd.Context(), s.ID, index, weight, reps, distance); err != nil {
			return err
		}

		done, err := repo.GetSession(s.ID)
		if err != nil {
			return err
		}
		l := done.ExerciseLogs[index]
		color.Green("✓ %s logged", l.ExerciseName)
		fmt.Printf(" %s\n", formatLogValues(&l))
		return nil
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit a logged set's values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			return fmt.Errorf("no active session")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}

		weight, reps, distance, err := parseLogValues(cmd)
		if err != nil {
			return err
		}
		err = repo.UpdateLog(cmd.Context(), s.ID, index, func(l *models.ExerciseLog) {
			if weight != nil {
				l.Weight = weight
			}
			if reps != nil {
				l.Reps = reps
			}
			if distance != nil {
				l.Distance = distance
			}
		})
		if err != nil {
			return err
		}
		color.Green("✓ Updated entry %d", index)
		return nil
	},
}

var logDeleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete a logged set from the active session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			return fmt.Errorf("no active session")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}
		if err := repo.DeleteLog(cmd.Context(), s.ID, index); err != nil {
			return err
		}
		color.Green("✓ Deleted entry %d", index)
		return nil
	},
}

func parseLogValues(cmd *cobra.Command) (*models.Weight, *uint32, *models.Distance, error) {
	var weight *models.Weight
	var reps *uint32
	var distance *models.Distance

	if logWeight != "" {
		w, ok := models.ParseWeight(logWeight)
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid weight %q (0.01–655.35 kg)", logWeight)
		}
		weight = &w
	}
	if cmd.Flags().Changed("reps") {
		r := logReps
		reps = &r
	}
	if logDistance != "" {
		d, ok := models.ParseDistance(logDistance)
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid distance %q (0.01–655.35 km)", logDistance)
		}
		distance = &d
	}
	return weight, reps, distance, nil
}

// resolveExerciseArg turns an id or search query into exactly one exercise
// id. Custom exercises take priority over catalog hits.
func resolveExerciseArg(arg string) (string, error) {
	if _, ok := repo.GetCustomExercise(arg); ok {
		return arg, nil
	}
	if _, ok := cache.Get(arg); ok {
		return arg, nil
	}

	custom := repo.SearchCustomExercises(arg)
	matches := cache.Search(arg)

	// An exact custom-exercise name wins outright, even when the catalog
	// also matches the query.
	for _, ce := range custom {
		if strings.EqualFold(ce.Name, arg) {
			return ce.ID, nil
		}
	}

	total := len(custom) + len(matches)
	switch {
	case total == 0:
		return "", fmt.Errorf("no exercise matches %q", arg)
	case total == 1:
		if len(custom) == 1 {
			return custom[0].ID, nil
		}
		return matches[0].ID, nil
	default:
		fmt.Printf("%q matches %d exercises:\n", arg, total)
		for _, ce := range custom {
			fmt.Printf("  %s  %s (custom)\n", color.New(color.Faint).Sprint(ce.ID), ce.Name)
		}
		for _, ex := range matches {
			fmt.Printf("  %s  %s\n", color.New(color.Faint).Sprint(ex.ID), ex.Name)
		}
		return "", fmt.Errorf("be more specific or use the exact id")
	}
}

func init() {
	for _, c := range []*cobra.Command{logDoneCmd, logEditCmd} {
		c.Flags().StringVarP(&logWeight, "weight", "w", "", "weight in kg (e.g. 62.5)")
		c.Flags().Uint32VarP(&logReps, "reps", "r", 0, "repetition count")
		c.Flags().StringVarP(&logDistance, "distance", "d", "", "distance in km (e.g. 5.2)")
	}
	logCmd.AddCommand(logDoneCmd)
	logCmd.AddCommand(logEditCmd)
	logCmd.AddCommand(logDeleteCmd)
	rootCmd.AddCommand(logCmd)
}
