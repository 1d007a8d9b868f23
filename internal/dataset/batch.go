package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/movieprompt/movieprompt/internal/movie"
	"github.com/movieprompt/movieprompt/internal/prompt"
)

// Options configures a batch run.
type Options struct {
	OutputDir string
	Logger    *slog.Logger
	Extractor *movie.Extractor
	Formatter *prompt.Formatter
}

// Item is the outcome for one record of a batch run.
type Item struct {
	Index      int
	Line       int
	ArtifactID string
	PromptPath string // empty when the prompt could not be written
	Attributes movie.Attributes
	Err        error // extraction failure, if any
}

// Run extracts, formats and writes one prompt per record, in order.
// Failures never stop the run: bad records yield default prompts and unwritable files are
// logged and left out of PromptPath.
func Run(records []Record, opts Options) []Item {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = movie.NewExtractor(logger)
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = prompt.NewFormatter(logger)
	}

	items := make([]Item, 0, len(records))
	for i, rec := range records {
		res := extractor.Extract(rec.Raw)
		artifact := formatter.Render(res.Attributes)

		path := filepath.Join(opts.OutputDir, fileName(i+1, res.Attributes.Title))
		if !prompt.Save(path, artifact.Text, logger) {
			path = ""
		}

		items = append(items, Item{
			Index:      i + 1,
			Line:       rec.Line,
			ArtifactID: artifact.ID,
			PromptPath: path,
			Attributes: res.Attributes,
			Err:        res.Err,
		})
	}

	logger.Info("Batch finished", "records", len(records), "failed", countFailed(items))
	return items
}

func countFailed(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// fileName builds "<index>-<slug>.md"; titles reduce to letters and digits.
func fileName(index int, title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	return fmt.Sprintf("%03d-%s.md", index, slug)
}
