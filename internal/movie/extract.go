package movie

import (
	"fmt"
	"log/slog"
)

// Extractor normalizes raw movie descriptions into Attributes.
// It is safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor returns an Extractor that reports through logger.
// A nil logger falls back to slog.Default().
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads every known field of raw with its default.
// It never fails: when raw cannot be read, Result carries Empty() and the reason.
func (x *Extractor) Extract(raw any) Result {
	attrs, err := extract(raw)
	if err != nil {
		x.log().Error("Movie attribute extraction failed", "err", err)
		return Result{Attributes: Empty(), Err: err}
	}
	x.log().Info("Movie attributes extracted", "title", attrs.Title, "genres", len(attrs.Genres), "reviews", len(attrs.UserReviews))
	return Result{Attributes: attrs}
}

func (x *Extractor) log() *slog.Logger {
	if x == nil || x.logger == nil {
		return slog.Default()
	}
	return x.logger
}

// Extract runs an Extractor bound to the default logger.
func Extract(raw any) Result {
	return NewExtractor(nil).Extract(raw)
}

func extract(raw any) (Attributes, error) {
	if raw == nil {
		return Attributes{}, &ExtractionError{Reason: "record is null"}
	}
	root, err := asObject(raw, "")
	if err != nil {
		return Attributes{}, err
	}

	attrs := Empty()
	if attrs.Title, err = field(root, "title", "", toString); err != nil {
		return Attributes{}, err
	}
	if attrs.Genres, err = field(root, "genres", []string{}, toStrings); err != nil {
		return Attributes{}, err
	}
	if attrs.Director, err = field(root, "director", "", toString); err != nil {
		return Attributes{}, err
	}
	if attrs.Actors, err = field(root, "actors", []string{}, toStrings); err != nil {
		return Attributes{}, err
	}
	if attrs.Summary, err = field(root, "summary", "", toString); err != nil {
		return Attributes{}, err
	}
	if attrs.UserReviews, err = field(root, "reviews", []string{}, toTexts); err != nil {
		return Attributes{}, err
	}

	rating, err := field(root, "rating", object{path: "rating"}, toObject)
	if err != nil {
		return Attributes{}, err
	}
	if attrs.RatingScore, err = field(rating, "score", Score{}, toScore); err != nil {
		return Attributes{}, err
	}
	if attrs.RatingCount, err = field(rating, "count", int64(0), toInt); err != nil {
		return Attributes{}, err
	}
	if attrs.RatingDistribution, err = distribution(rating); err != nil {
		return Attributes{}, err
	}

	popularity, err := field(root, "popularity", object{path: "popularity"}, toObject)
	if err != nil {
		return Attributes{}, err
	}
	if attrs.Popularity, err = readPopularity(popularity); err != nil {
		return Attributes{}, err
	}

	return attrs, nil
}

func distribution(rating object) (Distribution, error) {
	details, err := field(rating, "details", []any{}, toList)
	if err != nil {
		return nil, err
	}
	dist := Distribution{}
	for i, d := range details {
		item, err := asObject(d, fmt.Sprintf("%s[%d]", rating.child("details"), i))
		if err != nil {
			return nil, err
		}
		label, err := field(item, "score", "", toLabel)
		if err != nil {
			return nil, err
		}
		proportion, err := field(item, "proportion", 0.0, toNumber)
		if err != nil {
			return nil, err
		}
		dist.Set(label+"分", proportion)
	}
	return dist, nil
}

func readPopularity(o object) (Popularity, error) {
	var p Popularity
	targets := []struct {
		key string
		dst *float64
	}{
		{"wish_count", &p.WishCount},
		{"watched_count", &p.WatchedCount},
		{"trending_score", &p.TrendingScore},
		{"news_score", &p.NewsScore},
		{"video_score", &p.VideoScore},
		{"box_office", &p.BoxOffice},
	}
	for _, t := range targets {
		v, err := field(o, t.key, 0.0, toNumber)
		if err != nil {
			return Popularity{}, err
		}
		*t.dst = v
	}
	return p, nil
}
