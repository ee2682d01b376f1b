package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset learning progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print score, completed lessons and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p := progress.NewStore(e.store.KV(), e.log).Load(ctx)

		fmt.Printf("Score:     %d\n", p.Score)
		fmt.Printf("Completed: %d lessons\n", len(p.CompletedLessons))
		fmt.Println()
		for _, level := range catalog.AllLevels() {
			ids := catalog.ByLevel(level)
			if len(ids) == 0 {
				continue
			}
			done := 0
			for _, id := range ids {
				if p.HasCompleted(id) {
					done++
				}
			}
			fmt.Printf("  %-3s %s %d/%d\n", level, progressBar(done, len(ids), 20), done, len(ids))
		}

		recs, err := e.store.EventRepo().QueryLessonCompletions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(recs) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-19s  %-16s  %6s  %s\n", "Time", "Lesson", "Score", "Correct")
		fmt.Println(strings.Repeat("─", 56))
		for _, r := range recs {
			fmt.Printf("%-19s  %-16s  %6d  %d/%d\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.LessonID, 16), r.Score, r.Correct, r.Total)
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset score and completed lessons",
	Long:  "Reset score and completed lessons. Lesson history and LLM events are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This resets your score and completed lessons. Continue? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := progress.NewStore(e.store.KV(), e.log).Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := done * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func init() {
	progressShowCmd.Flags().IntP("limit", "n", 10, "Number of recent sessions to show")
	progressResetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}
