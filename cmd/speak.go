package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak <lesson-id>",
	Short: "Synthesize pronunciation audio for a lesson's examples",
	Long: `Synthesize and cache audio for every German example in a lesson.
Requires DEUTSCHPRO_TTS=1 and Google application default credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := catalog.FindLesson(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		sp := e.speaker(ctx)
		if !sp.Enabled() {
			return fmt.Errorf("%w: set DEUTSCHPRO_TTS=1", speech.ErrDisabled)
		}

		var failed int
		for _, s := range l.Content {
			for _, ex := range s.Examples {
				path, err := sp.Speak(ctx, ex.De)
				if err != nil {
					if errors.Is(err, speech.ErrDisabled) {
						return err
					}
					failed++
					fmt.Printf("✗ %s: %v\n", ex.De, err)
					continue
				}
				fmt.Printf("✓ %s  %s\n", ex.De, path)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d examples failed", failed)
		}
		return nil
	},
}
