// ABOUTME: CLI commands for browsing the exercise catalog.
// ABOUTME: Search, show details, and manage custom exercises.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gfauredev/logout/internal/models"
)

var (
	customCategory  string
	customForce     string
	customEquipment string
	customMuscles   []string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise catalog",
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search exercises by name, muscle, category, force or equipment",
	Long: `Search exercises by free text.

The query matches case-insensitively against the exercise name, primary
and secondary muscles, category, force type, equipment and level. With no
query, every exercise is listed.

Examples:
  logout exercise search bench
  logout exercise search hamstrings
  logout exercise search cardio`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		custom := repo.SearchCustomExercises(query)
		matches := cache.Search(query)
		if len(custom)+len(matches) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		// Custom exercises come first. They are the user's own and rank
		// above catalog hits.
		faint := color.New(color.Faint)
		for _, ce := range custom {
			fmt.Printf("%-42s %s  %s\n",
				ce.Name, padRight(string(ce.Category)+" (custom)", 22), faint.Sprint(ce.ID))
		}
		for _, ex := range matches {
			fmt.Printf("%-42s %s  %s\n",
				ex.Name, padRight(string(ex.Category), 22), faint.Sprint(ex.ID))
		}
		return nil
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <exercise-id>",
	Short: "Show one exercise in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ex *models.Exercise
		if ce, ok := repo.GetCustomExercise(args[0]); ok {
			ex = &ce.Exercise
		} else if found, ok := cache.Get(args[0]); ok {
			ex = found
		} else {
			return fmt.Errorf("no exercise with id %q", args[0])
		}

		fmt.Println(color.New(color.Bold).Sprint(ex.Name))
		fmt.Printf("Category:  %s\n", ex.Category)
		if ex.Force != nil {
			fmt.Printf("Force:     %s\n", *ex.Force)
		}
		if ex.Level != "" {
			fmt.Printf("Level:     %s\n", ex.Level)
		}
		if ex.Mechanic != nil {
			fmt.Printf("Mechanic:  %s\n", *ex.Mechanic)
		}
		if ex.Equipment != nil {
			fmt.Printf("Equipment: %s\n", *ex.Equipment)
		}
		if len(ex.PrimaryMuscles) > 0 {
			fmt.Printf("Muscles:   %s\n", strings.Join(ex.PrimaryMuscles, ", "))
		}
		if len(ex.SecondaryMuscles) > 0 {
			fmt.Printf("Secondary: %s\n", strings.Join(ex.SecondaryMuscles, ", "))
		}
		if len(ex.Instructions) > 0 {
			fmt.Println("\nInstructions:")
			for i, step := range ex.Instructions {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
		}
		if last, ok := repo.LastLogForExercise(ex.ID); ok {
			fmt.Printf("\nLast time:%s\n", formatLogValues(last))
		}
		return nil
	},
}

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage your own exercises",
	Long: `Manage your own exercises.

Custom exercises live only in your local store. They never conflict with
the downloaded catalog and survive catalog refreshes untouched.`,
}

var customAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a custom exercise",
	Long: `Create a custom exercise.

Examples:
  logout exercise custom add "Weighted Carry" --category strongman
  logout exercise custom add "Banded Row" --category strength --force pull --equipment bands`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidCategory(customCategory) {
			return fmt.Errorf("unknown category %q\nValid categories: cardio, strength, stretching, powerlifting, strongman, plyometrics, olympic weightlifting", customCategory)
		}

		ce := models.NewCustomExercise(args[0], models.Category(customCategory))
		if customForce != "" {
			if !models.IsValidForce(customForce) {
				return fmt.Errorf("unknown force %q (pull, push or static)", customForce)
			}
			ce = ce.WithForce(models.Force(customForce))
		}
		if customEquipment != "" {
			ce = ce.WithEquipment(customEquipment)
		}
		if len(customMuscles) > 0 {
			ce = ce.WithMuscles(customMuscles, nil)
		}

		if err := repo.AddCustomExercise(cmd.Context(), ce); err != nil {
			return err
		}
		color.Green("✓ Added %s", ce.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(ce.ID))
		return nil
	},
}

var customListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your custom exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		custom := repo.CustomExercises()
		if len(custom) == 0 {
			fmt.Println("No custom exercises yet.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, ce := range custom {
			fmt.Printf("%-42s %s  %s\n",
				ce.Name, padRight(string(ce.Category), 22), faint.Sprint(ce.ID))
		}
		return nil
	},
}

var customDeleteCmd = &cobra.Command{
	Use:     "delete <exercise-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom exercise",
	Long: `Delete a custom exercise.

Past session logs keep the exercise's name and category, so deleting the
exercise never corrupts your history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteCustomExercise(cmd.Context(), args[0]); err != nil {
			return err
		}
		color.Green("✓ Deleted")
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	customAddCmd.Flags().StringVarP(&customCategory, "category", "c", "strength", "exercise category")
	customAddCmd.Flags().StringVarP(&customForce, "force", "f", "", "force type: pull, push or static")
	customAddCmd.Flags().StringVarP(&customEquipment, "equipment", "e", "", "equipment needed")
	customAddCmd.Flags().StringSliceVarP(&customMuscles, "muscles", "m", nil, "primary muscles worked")

	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customDeleteCmd)
	exerciseCmd.AddCommand(exerciseSearchCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(customCmd)
	rootCmd.AddCommand(exerciseCmd)
}
