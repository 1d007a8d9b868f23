package movie

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestExtractor() (*Extractor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewExtractor(logger), &buf
}

func countLevel(buf *bytes.Buffer, level string) int {
	return strings.Count(buf.String(), "level="+level)
}

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("Failed to decode %q: %v", s, err)
	}
	return v
}

func TestExtractSample(t *testing.T) {
	x, logs := newTestExtractor()

	res := x.Extract(Sample())
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Err)
	}

	want := Attributes{
		Title:       "罗小黑战记2",
		Genres:      []string{"动画", "奇幻"},
		Director:    "MTJJ",
		Actors:      []string{"山新", "郝祥海"},
		Summary:     "小黑的奇幻冒险故事继续展开。",
		RatingScore: ScoreOf(9.3),
		RatingCount: 120000,
		RatingDistribution: Distribution{
			{Label: "5分", Proportion: 0.85},
			{Label: "4分", Proportion: 0.10},
			{Label: "3分", Proportion: 0.03},
		},
		UserReviews: []string{"很治愈！", "比第一部更精彩"},
		Popularity: Popularity{
			WishCount:     500000,
			WatchedCount:  300000,
			TrendingScore: 98,
			NewsScore:     80,
			VideoScore:    85,
			BoxOffice:     120000000,
		},
	}
	if diff := cmp.Diff(want, res.Attributes); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}

	if got := countLevel(logs, "INFO"); got != 1 {
		t.Errorf("Expected 1 info line, got %d", got)
	}
	if got := countLevel(logs, "ERROR"); got != 0 {
		t.Errorf("Expected no error lines, got %d", got)
	}
}

func TestExtractEmptyObject(t *testing.T) {
	x, _ := newTestExtractor()

	res := x.Extract(map[string]any{})
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Err)
	}
	if diff := cmp.Diff(Empty(), res.Attributes); diff != "" {
		t.Errorf("Extract({}) mismatch (-want +got):\n%s", diff)
	}
	if res.Attributes.Genres == nil || res.Attributes.RatingDistribution == nil {
		t.Error("Expected non-nil empty collections")
	}
}

func TestExtractFallsBackOnInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		path string
	}{
		{name: "nil", raw: nil},
		{name: "string", raw: "not a movie"},
		{name: "array", raw: []any{1.0, 2.0}},
		{name: "number", raw: 42.0},
		{name: "rating is a string", raw: decode(t, `{"title":"x","rating":"9.1"}`), path: "rating"},
		{name: "popularity is an array", raw: decode(t, `{"popularity":[1,2]}`), path: "popularity"},
		{name: "details item is a number", raw: decode(t, `{"rating":{"details":[3]}}`), path: "rating.details[0]"},
		{name: "genre is a number", raw: decode(t, `{"genres":["动画",7]}`), path: "genres[1]"},
		{name: "title is an object", raw: decode(t, `{"title":{"zh":"x"}}`), path: "title"},
		{name: "count is text", raw: decode(t, `{"rating":{"count":"many"}}`), path: "rating.count"},
		{name: "count overflows int64", raw: decode(t, `{"rating":{"count":9223372036854775807}}`), path: "rating.count"},
		{name: "count below int64", raw: decode(t, `{"rating":{"count":-1e19}}`), path: "rating.count"},
		{name: "proportion is a bool", raw: decode(t, `{"rating":{"details":[{"score":5,"proportion":true}]}}`), path: "rating.details[0].proportion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, logs := newTestExtractor()

			res := x.Extract(tt.raw)
			if res.OK() {
				t.Fatal("Expected extraction failure")
			}
			var ee *ExtractionError
			if !errors.As(res.Err, &ee) {
				t.Fatalf("Expected *ExtractionError, got %T", res.Err)
			}
			if ee.Path != tt.path {
				t.Errorf("Expected path %q, got %q", tt.path, ee.Path)
			}
			if diff := cmp.Diff(Empty(), res.Attributes); diff != "" {
				t.Errorf("Expected empty record (-want +got):\n%s", diff)
			}
			if got := countLevel(logs, "ERROR"); got != 1 {
				t.Errorf("Expected exactly 1 error line, got %d", got)
			}
			if got := countLevel(logs, "INFO"); got != 0 {
				t.Errorf("Expected no info lines, got %d", got)
			}
		})
	}
}

func TestExtractMissingFieldSubsets(t *testing.T) {
	keys := []string{"title", "genres", "director", "actors", "summary", "rating", "reviews", "popularity"}
	full := Sample()

	// every subset of top-level keys
	for mask := 0; mask < 1<<len(keys); mask++ {
		raw := map[string]any{}
		for i, k := range keys {
			if mask&(1<<i) != 0 {
				raw[k] = full[k]
			}
		}
		res := Extract(raw)
		if !res.OK() {
			t.Fatalf("mask %b: unexpected failure %v", mask, res.Err)
		}
		a := res.Attributes
		if a.Genres == nil || a.Actors == nil || a.UserReviews == nil || a.RatingDistribution == nil {
			t.Fatalf("mask %b: nil collection in %+v", mask, a)
		}
		if _, ok := raw["rating"]; !ok && (a.RatingCount != 0 || a.RatingScore.Valid || len(a.RatingDistribution) != 0) {
			t.Errorf("mask %b: rating defaults not applied: %+v", mask, a)
		}
		if _, ok := raw["popularity"]; !ok && a.Popularity != (Popularity{}) {
			t.Errorf("mask %b: popularity defaults not applied: %+v", mask, a.Popularity)
		}
	}
}

func TestExtractNestedDefaults(t *testing.T) {
	raw := decode(t, `{
		"rating": {"details": [{"proportion": 0.5}, {"score": 4}, {"score": "4.5", "proportion": 0.2}]},
		"popularity": {"wish_count": 10, "box_office": "2500"}
	}`)

	res := Extract(raw)
	if !res.OK() {
		t.Fatalf("Unexpected failure: %v", res.Err)
	}
	wantDist := Distribution{
		{Label: "分", Proportion: 0.5},
		{Label: "4分", Proportion: 0},
		{Label: "4.5分", Proportion: 0.2},
	}
	if diff := cmp.Diff(wantDist, res.Attributes.RatingDistribution); diff != "" {
		t.Errorf("Distribution mismatch (-want +got):\n%s", diff)
	}
	wantPop := Popularity{WishCount: 10, BoxOffice: 2500}
	if res.Attributes.Popularity != wantPop {
		t.Errorf("Expected %+v, got %+v", wantPop, res.Attributes.Popularity)
	}
	if res.Attributes.RatingScore.Valid {
		t.Error("Expected absent score")
	}
}

func TestExtractDuplicateScoresLastWriteWins(t *testing.T) {
	raw := decode(t, `{"rating":{"details":[
		{"score":5,"proportion":0.1},
		{"score":4,"proportion":0.2},
		{"score":5,"proportion":0.7}
	]}}`)

	res := Extract(raw)
	want := Distribution{
		{Label: "5分", Proportion: 0.7},
		{Label: "4分", Proportion: 0.2},
	}
	if diff := cmp.Diff(want, res.Attributes.RatingDistribution); diff != "" {
		t.Errorf("Distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNullsAndLooseTypes(t *testing.T) {
	raw := decode(t, `{
		"title": null,
		"genres": null,
		"rating": {"score": "", "count": 99.9},
		"reviews": ["好看", {"user": "a", "text": "还行"}, 5]
	}`)

	res := Extract(raw)
	if !res.OK() {
		t.Fatalf("Unexpected failure: %v", res.Err)
	}
	a := res.Attributes
	if a.Title != "" || len(a.Genres) != 0 {
		t.Errorf("Expected null fields to default, got %+v", a)
	}
	if a.RatingCount != 99 {
		t.Errorf("Expected truncated count 99, got %d", a.RatingCount)
	}
	if a.RatingScore.String() != "" {
		t.Errorf("Expected empty score, got %q", a.RatingScore.String())
	}
	wantReviews := []string{"好看", `{"text":"还行","user":"a"}`, "5"}
	if diff := cmp.Diff(wantReviews, a.UserReviews); diff != "" {
		t.Errorf("Reviews mismatch (-want +got):\n%s", diff)
	}
}
