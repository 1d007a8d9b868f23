package movie

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Attributes is the normalized view of a movie description.
// Every field is always populated; absent source fields hold their zero defaults.
type Attributes struct {
	Title              string       `json:"movie_title" yaml:"title"`
	Genres             []string     `json:"movie_genres" yaml:"genres"`
	Director           string       `json:"movie_director" yaml:"director"`
	Actors             []string     `json:"movie_actors" yaml:"actors"`
	Summary            string       `json:"movie_summary" yaml:"summary"`
	RatingScore        Score        `json:"movie_rating" yaml:"rating_score"`
	RatingCount        int64        `json:"rating_count" yaml:"rating_count"`
	RatingDistribution Distribution `json:"rating_distribution" yaml:"rating_distribution"`
	UserReviews        []string     `json:"user_reviews" yaml:"user_reviews"`
	Popularity         Popularity   `json:"popularity" yaml:"popularity"`
}

// Empty returns the all-default record used when extraction fails.
func Empty() Attributes {
	return Attributes{
		Genres:             []string{},
		Actors:             []string{},
		RatingDistribution: Distribution{},
		UserReviews:        []string{},
	}
}

// Popularity holds the audience interest counters.
type Popularity struct {
	WishCount     float64 `json:"wish_count" yaml:"wish_count"`
	WatchedCount  float64 `json:"watched_count" yaml:"watched_count"`
	TrendingScore float64 `json:"trending_score" yaml:"trending_score"`
	NewsScore     float64 `json:"news_score" yaml:"news_score"`
	VideoScore    float64 `json:"video_score" yaml:"video_score"`
	BoxOffice     float64 `json:"box_office" yaml:"box_office"`
}

// Score is a rating score that may be absent.
type Score struct {
	Value float64
	Valid bool
}

// ScoreOf returns a present score.
func ScoreOf(v float64) Score {
	return Score{Value: v, Valid: true}
}

// String renders the shortest decimal form, or "" when absent.
func (s Score) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// MarshalJSON encodes an absent score as an empty string.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte(`""`), nil
	}
	return []byte(s.String()), nil
}

// MarshalYAML mirrors MarshalJSON.
func (s Score) MarshalYAML() (interface{}, error) {
	if !s.Valid {
		return "", nil
	}
	return s.Value, nil
}

// Share is one bucket of a rating distribution.
type Share struct {
	Label      string
	Proportion float64
}

// Distribution maps score labels to proportions while keeping insertion order.
type Distribution []Share

// Set stores p under label. An existing label keeps its position and takes the new value.
func (d *Distribution) Set(label string, p float64) {
	for i := range *d {
		if (*d)[i].Label == label {
			(*d)[i].Proportion = p
			return
		}
	}
	*d = append(*d, Share{Label: label, Proportion: p})
}

// Get returns the proportion stored under label.
func (d Distribution) Get(label string) (float64, bool) {
	for _, s := range d {
		if s.Label == label {
			return s.Proportion, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the distribution as a JSON object in insertion order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(s.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(s.Proportion, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the distribution as a label -> proportion mapping.
func (d Distribution) MarshalYAML() (interface{}, error) {
	out := make(map[string]float64, len(d))
	for _, s := range d {
		out[s.Label] = s.Proportion
	}
	return out, nil
}

// Result is the outcome of one extraction.
// Attributes is always usable; Err reports why the defaults were substituted.
type Result struct {
	Attributes Attributes
	Err        error
}

// OK reports whether the attributes came from the input rather than the fallback.
func (r Result) OK() bool { return r.Err == nil }

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
