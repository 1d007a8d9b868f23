package cmd

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/movieprompt/movieprompt/internal/config"
	"github.com/movieprompt/movieprompt/internal/infra/httpx"
	"github.com/movieprompt/movieprompt/internal/maoyan"
	"github.com/spf13/cobra"
)

// userAgent identifies this tool to LLM backends. The movie API gets the configured browser agent.
const userAgent = "movieprompt"

// app carries what the entry point owns: configuration and the logger handed to every component.
type app struct {
	verbose bool
	baseURL string

	cfg    config.Config
	logger *slog.Logger
}

func (a *app) init(stderr io.Writer) {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	a.cfg = config.Load()
	if a.baseURL == "" {
		a.baseURL = a.cfg.BaseURL
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
}

func (a *app) client() *maoyan.Client {
	return maoyan.NewClient(a.baseURL, httpx.NewClient(a.cfg.UserAgent, a.cfg.Timeout))
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "movieprompt",
		Short: "Movie listing lookups and recommendation prompt generation",
		Long: `Movieprompt queries the public Maoyan movie API (cities, cinemas, top rated lists,
search and movie details) and turns movie descriptions into Markdown prompts for an
LLM-driven movie recommendation task.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Verbose logging")
	cmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Movie API base URL (default $MAOYAN_BASE_URL or "+config.DefaultBaseURL+")")

	// Add subcommands
	cmd.AddCommand(newCityCmd(a))
	cmd.AddCommand(newCinemasCmd(a))
	cmd.AddCommand(newTopRatedCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newDetailCmd(a))
	cmd.AddCommand(newPromptCmd(a))
	cmd.AddCommand(newBatchCmd(a))
	cmd.AddCommand(newRecommendCmd(a))

	return cmd
}
