package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/catalog"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse the built-in lesson catalog",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons, optionally filtered by level",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		level = strings.ToUpper(level)
		if level != "" && !catalog.Level(level).Valid() {
			return fmt.Errorf("unknown level %q", level)
		}

		fmt.Printf("%-6s  %-5s  %-12s  %-30s  %s\n", "ID", "Level", "Category", "German", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for _, l := range catalog.AllLessons() {
			if level != "" && string(l.Level) != level {
				continue
			}
			fmt.Printf("%-6s  %-5s  %-12s  %-30s  %s\n",
				l.ID, l.Level, l.Category, truncate(l.GermanTitle, 30), l.Title)
		}
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a lesson's content and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := catalog.FindLesson(args[0])
		if err != nil {
			return err
		}
		printLesson(l, true)
		return nil
	},
}

var lessonsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := catalog.Validate(); err != nil {
			return err
		}
		fmt.Printf("%d lessons OK\n", len(catalog.AllLessons()))
		return nil
	},
}

// printLesson writes a plain-text rendering of l. Answers are included
// when withAnswers is set.
func printLesson(l catalog.Lesson, withAnswers bool) {
	sep := strings.Repeat("─", 60)

	fmt.Printf("%s  %s\n", l.GermanTitle, l.Title)
	fmt.Printf("ID: %s  Level: %s  Category: %s\n", l.ID, l.Level, l.Category)
	if l.Description != "" {
		fmt.Println(l.Description)
	}

	for _, s := range l.Content {
		fmt.Println()
		fmt.Println(sep)
		fmt.Println(s.Section)
		fmt.Println(sep)
		fmt.Println(s.Text)
		for _, ex := range s.Examples {
			fmt.Printf("  %s  (%s)\n", ex.De, ex.Vi)
		}
	}

	fmt.Println()
	fmt.Println(sep)
	fmt.Printf("Exercises (%d)\n", len(l.Exercises))
	fmt.Println(sep)
	for i, ex := range l.Exercises {
		fmt.Printf("%d. %s\n", i+1, ex.Question)
		for j, o := range ex.Options {
			mark := " "
			if withAnswers && ex.IsCorrect(o) {
				mark = "*"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'a'+j, o)
		}
		if withAnswers && ex.Explanation != "" {
			fmt.Printf("   → %s\n", ex.Explanation)
		}
	}
}

func init() {
	lessonsListCmd.Flags().StringP("level", "l", "", "Filter by level (A1, A2, B1, B2)")

	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
	lessonsCmd.AddCommand(lessonsValidateCmd)
}
