package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/movieprompt/movieprompt/internal/movie"
	"github.com/movieprompt/movieprompt/internal/prompt"
	"github.com/spf13/cobra"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		src     source
		output  string
		stdout  bool
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the movie recommendation prompt for one record",
		Long: `Extract the attributes of one movie record and render the Markdown recommendation
prompt. The record comes from --input, from the movie detail endpoint (--movie-id) or
from the built-in sample. Malformed records still produce a prompt built from defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := src.load(cmd.Context(), a, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res := movie.NewExtractor(a.logger).Extract(raw)
			artifact := prompt.NewFormatter(a.logger).Render(res.Attributes)

			if output == "" {
				output = a.cfg.OutputPath
			}
			w := cmd.OutOrStdout()
			if prompt.Save(output, artifact.Text, a.logger) {
				fmt.Fprintf(w, "Prompt saved to %s (artifact %s)\n", output, artifact.ID)
			} else {
				fmt.Fprintf(w, "Prompt not saved (artifact %s), see log for details\n", artifact.ID)
			}

			switch {
			case preview:
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
				if err != nil {
					return fmt.Errorf("failed to create markdown renderer: %w", err)
				}
				rendered, err := r.Render(artifact.Text)
				if err != nil {
					return fmt.Errorf("failed to render preview: %w", err)
				}
				fmt.Fprint(w, rendered)
			case stdout:
				fmt.Fprintln(w, artifact.Text)
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Prompt file (default $PROMPT_OUTPUT or movie_recommendation_prompt.md)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Also print the prompt")
	cmd.Flags().BoolVar(&preview, "preview", false, "Also print the prompt rendered for the terminal")

	return cmd
}
