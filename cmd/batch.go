package cmd

import (
	"fmt"
	"time"

	"github.com/movieprompt/movieprompt/internal/dataset"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		input    string
		outDir   string
		limit    int
		parquet  string
		manifest string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render one prompt per record of a JSON or JSONL dataset",
		Example: `  movieprompt batch --input movies.jsonl --out prompts
  movieprompt batch --input movies.json --parquet attributes.parquet --manifest manifest.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := dataset.NewLoader(input, a.logger).LoadSample(limit)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			a.logger.Info("Loaded dataset", "path", input, "records", len(records))

			items := dataset.Run(records, dataset.Options{OutputDir: outDir, Logger: a.logger})

			if parquet != "" {
				if err := dataset.WriteParquet(parquet, dataset.Rows(items)); err != nil {
					return err
				}
				a.logger.Info("Attributes exported", "path", parquet)
			}
			if manifest != "" {
				m := dataset.NewManifest(input, outDir, items, time.Now())
				if err := dataset.SaveManifest(manifest, m); err != nil {
					return err
				}
				a.logger.Info("Manifest saved", "path", manifest)
			}

			written, failed := 0, 0
			for _, it := range items {
				if it.PromptPath != "" {
					written++
				}
				if it.Err != nil {
					failed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Records: %d, prompts written: %d, extraction failures: %d\n",
				len(items), written, failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Dataset file (.json, .jsonl or .ndjson)")
	cmd.Flags().StringVar(&outDir, "out", "prompts", "Directory for generated prompts")
	cmd.Flags().IntVar(&limit, "limit", -1, "Maximum records to process (-1 for all)")
	cmd.Flags().StringVar(&parquet, "parquet", "", "Write extracted attributes to this parquet file")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Write a YAML run manifest to this file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
