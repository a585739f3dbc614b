// ABOUTME: CLI commands for the workout session lifecycle.
// ABOUTME: Start, finish, cancel, repeat, list, show and delete sessions.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/models"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage workout sessions",
	Long: `Manage workout sessions.

A session is one workout from start to finish. At most one session may be
active at a time; finish (or cancel) the current one before starting the
next.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.StartSession(cmd.Context())
		if err != nil {
			return err
		}
		color.Green("✓ Session started")
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(s.ID[:8]))
		return nil
	},
}

var sessionFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			fmt.Println("No active session.")
			return nil
		}
		if err := repo.FinishSession(cmd.Context(), s.ID); err != nil {
			return err
		}
		done, err := repo.GetSession(s.ID)
		if err != nil {
			return err
		}
		color.Green("✓ Session finished")
		fmt.Printf("  %s, %d exercises\n",
			models.FormatDuration(done.DurationSeconds()), len(done.ExerciseLogs))
		return nil
	},
}

var sessionCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the active session",
	Long: `Cancel the active session.

A session with no logged exercises is discarded entirely. A session that
already has logged work is finished instead, so nothing is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := repo.ActiveSession()
		if !ok {
			fmt.Println("No active session.")
			return nil
		}
		empty := len(s.ExerciseLogs) == 0
		if err := repo.CancelSession(cmd.Context(), s.ID); err != nil {
			return err
		}
		if empty {
			color.Yellow("Session discarded (nothing was logged)")
		} else {
			color.Green("✓ Session finished")
		}
		return nil
	},
}

var sessionRepeatCmd = &cobra.Command{
	Use:   "repeat <session-id>",
	Short: "Start a new session with the exercises of a past one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := resolveSession(args[0])
		if err != nil {
			return err
		}
		s, err := repo.RepeatSession(cmd.Context(), src.ID)
		if err != nil {
			return err
		}
		color.Green("✓ Session started")
		fmt.Printf("  %d exercises queued up:\n", len(s.PendingExerciseIDs))
		for _, id := range s.PendingExerciseIDs {
			fmt.Printf("    %s\n", exerciseLabel(id))
		}
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workout sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions := repo.Sessions()
		if len(sessions) == 0 {
			fmt.Println("No sessions yet. Start one with 'logout session start'.")
			return nil
		}
		faint := color.New(color.Faint)
		now := time.Now()
		for _, s := range sessions {
			status := models.FormatDuration(s.DurationSeconds())
			if s.IsActive() {
				status = color.GreenString("active")
			}
			fmt.Printf("%s %-14s %s  %d exercises\n",
				faint.Sprint(s.ID[:8]),
				models.FormatSessionDate(s.StartTime, now),
				status,
				len(s.ExerciseLogs))
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSession(args[0])
		if err != nil {
			return err
		}
		printSession(s)
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSession(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteSession(cmd.Context(), s.ID); err != nil {
			return err
		}
		color.Green("✓ Session deleted")
		return nil
	},
}

// resolveSession accepts a full id or an unambiguous prefix.
func resolveSession(idOrPrefix string) (*models.WorkoutSession, error) {
	var match *models.WorkoutSession
	for _, s := range repo.Sessions() {
		if s.ID == idOrPrefix {
			s := s
			return &s, nil
		}
		if len(idOrPrefix) >= 4 && len(s.ID) > len(idOrPrefix) && s.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != nil {
				return nil, fmt.Errorf("session id prefix %q is ambiguous", idOrPrefix)
			}
			s := s
			match = &s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no session matches %q", idOrPrefix)
	}
	return match, nil
}

func printSession(s *models.WorkoutSession) {
	faint := color.New(color.Faint)
	fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(models.FormatSessionDate(s.StartTime, time.Now())),
		faint.Sprint(s.ID))
	if s.IsActive() {
		fmt.Printf("Status: %s, %s elapsed\n",
			color.GreenString("active"), models.FormatDuration(time.Now().Unix()-s.StartTime))
	} else {
		fmt.Printf("Duration: %s\n", models.FormatDuration(s.DurationSeconds()))
	}
	if len(s.PendingExerciseIDs) > 0 {
		fmt.Println("Up next:")
		for _, id := range s.PendingExerciseIDs {
			fmt.Printf("  %s\n", exerciseLabel(id))
		}
	}
	if len(s.ExerciseLogs) == 0 {
		fmt.Println("No exercises logged.")
		return
	}
	fmt.Println("Exercises:")
	for i, l := range s.ExerciseLogs {
		fmt.Printf("  %s %s%s\n", faint.Sprintf("[%d]", i), l.ExerciseName, formatLogValues(&l))
	}
}

func formatLogValues(l *models.ExerciseLog) string {
	out := ""
	if l.Weight != nil {
		out += "  " + l.Weight.String()
	}
	if l.Reps != nil {
		out += fmt.Sprintf("  ×%d", *l.Reps)
	}
	if l.Distance != nil {
		out += "  " + l.Distance.String()
	}
	if secs, ok := l.DurationSeconds(); ok {
		out += "  " + models.FormatDuration(secs)
	} else {
		out += "  " + color.GreenString("in progress")
	}
	return out
}

// exerciseLabel resolves an id to a display name, falling back to the id.
func exerciseLabel(id string) string {
	if ex, ok := cache.Get(id); ok {
		return ex.Name
	}
	if ce, ok := repo.GetCustomExercise(id); ok {
		return ce.Name
	}
	return id
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionFinishCmd)
	sessionCmd.AddCommand(sessionCancelCmd)
	sessionCmd.AddCommand(sessionRepeatCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
