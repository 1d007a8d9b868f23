package cmd

import (
	"fmt"

	"github.com/movieprompt/movieprompt/internal/infra/httpx"
	"github.com/movieprompt/movieprompt/internal/llm"
	"github.com/movieprompt/movieprompt/internal/llm/gemini"
	"github.com/movieprompt/movieprompt/internal/llm/ollama"
	"github.com/movieprompt/movieprompt/internal/llm/openai"
	"github.com/movieprompt/movieprompt/internal/movie"
	"github.com/movieprompt/movieprompt/internal/prompt"
	"github.com/spf13/cobra"
)

// provider builds the named backend from configuration. HTTP backends share the
// application's transport with the LLM timeout.
func (a *app) provider(name string) (llm.Provider, error) {
	httpClient := httpx.NewClient(userAgent, a.cfg.LLM.Timeout)
	switch name {
	case llm.Ollama:
		return ollama.New(a.cfg.LLM.Ollama, httpClient, a.logger), nil
	case llm.OpenAI:
		return openai.New(a.cfg.LLM.OpenAI, httpClient, a.logger), nil
	case llm.Gemini:
		return gemini.New(a.cfg.LLM.Gemini, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: ollama, openai, gemini)", name)
	}
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		src         source
		placeholder prompt.Placeholders
		provider    string
		model       string
		system      string
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Render the prompt, fill in preferences and ask an LLM for a recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider(provider)
			if err != nil {
				return err
			}

			raw, err := src.load(cmd.Context(), a, cmd.InOrStdin())
			if err != nil {
				return err
			}
			res := movie.NewExtractor(a.logger).Extract(raw)
			text := prompt.Resolve(prompt.NewFormatter(a.logger).Format(res.Attributes), placeholder)

			answer, err := p.Complete(cmd.Context(), llm.Request{
				Model:       model,
				Temperature: temperature,
				System:      system,
				Prompt:      text,
			})
			if err != nil {
				return fmt.Errorf("%s request failed: %w", provider, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVar(&placeholder.UserPreferences, "preferences", "", "User preferences substituted into the prompt")
	cmd.Flags().StringVar(&placeholder.RecommendationScenario, "scenario", "", "Recommendation scenario substituted into the prompt")
	cmd.Flags().StringVarP(&provider, "provider", "p", llm.Ollama, "LLM provider (ollama, openai, gemini)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (default per provider, see *_MODEL)")
	cmd.Flags().StringVar(&system, "system", "", "Replace the built-in system instruction")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "Sampling temperature")

	return cmd
}
