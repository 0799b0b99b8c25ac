package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/rendering"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a saved analysis as a tailored resume PDF",
	Long:  "Render an analysis JSON file (as written by tailor --json) into the tailored resume PDF.",
	RunE:  runExport,
}

var (
	exportAnalysis string
	exportOut      string
)

func init() {
	exportCmd.Flags().StringVarP(&exportAnalysis, "analysis", "a", "", "Path to the analysis JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output PDF path (default <Name>_Tailored_Resume.pdf)")
	_ = exportCmd.MarkFlagRequired("analysis")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(exportAnalysis)
	if err != nil {
		return fmt.Errorf("failed to read analysis: %w", err)
	}

	var req types.ExportRequest
	if err := json.Unmarshal(data, &req.Analysis); err != nil {
		return fmt.Errorf("failed to parse analysis: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid analysis: %w", err)
	}

	store, err := content.Default()
	if err != nil {
		return err
	}
	profile := store.CandidateProfile()

	out := exportOut
	if out == "" {
		out = rendering.FileName(profile.Name)
	}
	if err := writePDF(profile, req.Analysis, out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tailored resume: %s\n", out)
	return nil
}
