package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/config"
)

type parseOutput struct {
	FileName         string                    `json:"fileName"`
	ExtractionSource string                    `json:"extractionSource"`
	Extracted        resumes.ExtractedResponse `json:"extracted"`
}

func newParseCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract and classify a resume without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), cmd.OutOrStdout(), args[0], cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.VocabularyFile, "vocabulary", cfg.VocabularyFile, "YAML vocabulary file (skills and roles)")
	cmd.Flags().StringVar(&cfg.TikaURL, "tika-url", cfg.TikaURL, "Apache Tika server used as fallback extractor")
	cmd.Flags().IntVar(&cfg.MinTextChars, "min-chars", cfg.MinTextChars, "minimum extracted characters before falling back")
	cmd.Flags().DurationVar(&cfg.TikaTimeout, "tika-timeout", cfg.TikaTimeout, "fallback extractor timeout")
	return cmd
}

func runParse(ctx context.Context, out io.Writer, path string, cfg config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w", path, resumes.ErrMalformedInput)
	}

	vocab, err := bootstrap.BuildVocabulary(cfg.VocabularyFile)
	if err != nil {
		return err
	}
	extractor := bootstrap.BuildExtractor(cfg)

	fileName := filepath.Base(path)
	result := extractor.Extract(ctx, data, fileName)
	if !result.OK() {
		return fmt.Errorf("%s: %w", fileName, resumes.ErrExtractionFailed)
	}

	rec := vocab.Screen(fileName, result.Text, time.Now())
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(parseOutput{
		FileName:         fileName,
		ExtractionSource: string(result.Source),
		Extracted:        resumes.Project(rec),
	})
}
