package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/movieprompt/movieprompt/internal/maoyan"
	"github.com/movieprompt/movieprompt/internal/movie"
	"github.com/spf13/cobra"
)

// source selects where a single raw movie record comes from.
type source struct {
	input   string
	movieID int64
	sample  bool
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.input, "input", "", "JSON file holding one movie record (- for stdin)")
	cmd.Flags().Int64Var(&s.movieID, "movie-id", 0, "Fetch the record from the movie detail endpoint")
	cmd.Flags().BoolVar(&s.sample, "sample", false, "Use the built-in sample record (default when no source is given)")
	cmd.MarkFlagsMutuallyExclusive("input", "movie-id", "sample")
}

// load returns the raw record. Its shape is not checked here; the extractor decides what is usable.
func (s *source) load(ctx context.Context, a *app, stdin io.Reader) (any, error) {
	switch {
	case s.input != "":
		return readRecord(s.input, stdin)
	case s.movieID > 0:
		detail, err := a.client().MovieDetail(ctx, s.movieID)
		if err != nil {
			return nil, err
		}
		return maoyan.DetailRecord(detail), nil
	default:
		return movie.Sample(), nil
	}
}

func readRecord(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", path, err)
	}
	return raw, nil
}
