package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/movieprompt/movieprompt/internal/infra/fsx"
	"github.com/movieprompt/movieprompt/internal/movie"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Row is the flattened parquet layout of a batch item.
type Row struct {
	Index              int      `parquet:"index"`
	Line               int      `parquet:"line"`
	ArtifactID         string   `parquet:"artifact_id"`
	PromptPath         string   `parquet:"prompt_path"`
	Extracted          bool     `parquet:"extracted"`
	Error              string   `parquet:"error"`
	Title              string   `parquet:"title"`
	Genres             []string `parquet:"genres,list"`
	Director           string   `parquet:"director"`
	Actors             []string `parquet:"actors,list"`
	Summary            string   `parquet:"summary"`
	RatingScore        string   `parquet:"rating_score"`
	RatingCount        int64    `parquet:"rating_count"`
	RatingDistribution string   `parquet:"rating_distribution"` // JSON object, insertion ordered
	ReviewCount        int      `parquet:"review_count"`
	WishCount          float64  `parquet:"wish_count"`
	WatchedCount       float64  `parquet:"watched_count"`
	TrendingScore      float64  `parquet:"trending_score"`
	NewsScore          float64  `parquet:"news_score"`
	VideoScore         float64  `parquet:"video_score"`
	BoxOffice          float64  `parquet:"box_office"`
}

// Rows flattens batch items for parquet export.
func Rows(items []Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		a := it.Attributes
		dist, err := json.Marshal(a.RatingDistribution)
		if err != nil {
			dist = []byte("{}")
		}
		row := Row{
			Index:              it.Index,
			Line:               it.Line,
			ArtifactID:         it.ArtifactID,
			PromptPath:         it.PromptPath,
			Extracted:          it.Err == nil,
			Title:              a.Title,
			Genres:             a.Genres,
			Director:           a.Director,
			Actors:             a.Actors,
			Summary:            a.Summary,
			RatingScore:        a.RatingScore.String(),
			RatingCount:        a.RatingCount,
			RatingDistribution: string(dist),
			ReviewCount:        len(a.UserReviews),
			WishCount:          a.Popularity.WishCount,
			WatchedCount:       a.Popularity.WatchedCount,
			TrendingScore:      a.Popularity.TrendingScore,
			NewsScore:          a.Popularity.NewsScore,
			VideoScore:         a.Popularity.VideoScore,
			BoxOffice:          a.Popularity.BoxOffice,
		}
		if it.Err != nil {
			row.Error = it.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteParquet writes rows to path, replacing any existing file.
func WriteParquet(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return file.Close()
}

// ManifestConfig represents the run section of the manifest
type ManifestConfig struct {
	Input     string `yaml:"input"`
	OutputDir string `yaml:"outputdir"`
	Records   int    `yaml:"records"`
	Failed    int    `yaml:"failed"`
	Timestamp string `yaml:"timestamp"`
}

// ManifestItem represents a single generated prompt
type ManifestItem struct {
	Index      int              `yaml:"index"`
	Line       int              `yaml:"line"`
	ArtifactID string           `yaml:"artifactid"`
	PromptPath string           `yaml:"promptpath,omitempty"`
	Error      string           `yaml:"error,omitempty"`
	Attributes movie.Attributes `yaml:"attributes"`
}

// Manifest describes a batch run
type Manifest struct {
	Config ManifestConfig `yaml:"config"`
	Items  []ManifestItem `yaml:"items"`
}

// NewManifest summarizes items produced from input.
func NewManifest(input, outputDir string, items []Item, now time.Time) Manifest {
	m := Manifest{
		Config: ManifestConfig{
			Input:     input,
			OutputDir: outputDir,
			Records:   len(items),
			Failed:    countFailed(items),
			Timestamp: now.Format("2006-01-02_15-04-05"),
		},
		Items: make([]ManifestItem, 0, len(items)),
	}
	for _, it := range items {
		mi := ManifestItem{
			Index:      it.Index,
			Line:       it.Line,
			ArtifactID: it.ArtifactID,
			PromptPath: it.PromptPath,
			Attributes: it.Attributes,
		}
		if it.Err != nil {
			mi.Error = it.Err.Error()
		}
		m.Items = append(m.Items, mi)
	}
	return m
}

// SaveManifest writes the manifest as YAML.
func SaveManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := fsx.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}
