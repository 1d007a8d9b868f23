package prompt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/movieprompt/movieprompt/internal/movie"
)

// Placeholder tokens left in the artifact for a downstream consumer to fill.
const (
	UserPreferencesToken        = "{user_preferences}"
	RecommendationScenarioToken = "{recommendation_scenario}"
)

//go:embed template.md
var templateText string

var recommendationTemplate = template.Must(template.New("recommendation").Parse(templateText))

type templateData struct {
	ArtifactID         string
	Title              string
	Genres             string
	Director           string
	Actors             string
	Summary            string
	RatingScore        string
	RatingCount        int64
	RatingDistribution string
	Popularity         string
	ReviewCount        int
}

// Formatter renders movie attributes into the recommendation prompt artifact.
type Formatter struct {
	logger *slog.Logger
	newID  func() string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithIDFunc replaces the artifact id generator (uuid.NewString by default).
func WithIDFunc(fn func() string) Option {
	return func(f *Formatter) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// NewFormatter returns a Formatter that reports through logger.
// A nil logger falls back to slog.Default().
func NewFormatter(logger *slog.Logger, opts ...Option) *Formatter {
	f := &Formatter{logger: logger, newID: uuid.NewString}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Artifact is a rendered prompt and the id embedded in it.
type Artifact struct {
	ID   string
	Text string
}

// Format renders attrs under a fresh artifact id and trims surrounding whitespace.
func (f *Formatter) Format(attrs movie.Attributes) string {
	return f.Render(attrs).Text
}

// Render is Format that also returns the artifact id.
func (f *Formatter) Render(attrs movie.Attributes) Artifact {
	id := f.newID()
	data := templateData{
		ArtifactID:         id,
		Title:              attrs.Title,
		Genres:             strings.Join(attrs.Genres, ", "),
		Director:           attrs.Director,
		Actors:             strings.Join(attrs.Actors, ", "),
		Summary:            attrs.Summary,
		RatingScore:        attrs.RatingScore.String(),
		RatingCount:        attrs.RatingCount,
		RatingDistribution: jsonText(attrs.RatingDistribution, "{}"),
		Popularity:         jsonText(attrs.Popularity, "{}"),
		ReviewCount:        len(attrs.UserReviews),
	}

	var buf bytes.Buffer
	if err := recommendationTemplate.Execute(&buf, data); err != nil {
		// Only reachable if the embedded template is broken.
		f.log().Error("Failed to render prompt template", "err", err)
	}
	f.log().Info("Prompt generated", "artifact_id", id, "title", attrs.Title)
	return Artifact{ID: id, Text: strings.TrimSpace(buf.String())}
}

func (f *Formatter) log() *slog.Logger {
	if f == nil || f.logger == nil {
		return slog.Default()
	}
	return f.logger
}

// Format renders attrs with a Formatter bound to the default logger.
func Format(attrs movie.Attributes) string {
	return NewFormatter(nil).Format(attrs)
}

// jsonText encodes v on one line with ", " and ": " separators. Non-ASCII and HTML
// characters are kept verbatim.
func jsonText(v any, fallback string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fallback
	}
	return spaceSeparators(bytes.TrimRight(buf.Bytes(), "\n"))
}

// spaceSeparators adds a space after every ',' and ':' of compact JSON that sits
// outside a string literal.
func spaceSeparators(compact []byte) string {
	var sb strings.Builder
	sb.Grow(len(compact) + len(compact)/4)
	inString, escaped := false, false
	for _, c := range compact {
		sb.WriteByte(c)
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && (c == ',' || c == ':'):
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Placeholders are the values a consumer substitutes into a rendered artifact.
type Placeholders struct {
	UserPreferences        string
	RecommendationScenario string
}

// Resolve substitutes the placeholder tokens in text. Empty values leave their token untouched.
func Resolve(text string, p Placeholders) string {
	var pairs []string
	if p.UserPreferences != "" {
		pairs = append(pairs, UserPreferencesToken, p.UserPreferences)
	}
	if p.RecommendationScenario != "" {
		pairs = append(pairs, RecommendationScenarioToken, p.RecommendationScenario)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
