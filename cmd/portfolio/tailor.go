package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/alignment"
	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/fetch"
	"github.com/blkdmnd/visual-thesis/internal/ingestion"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/rendering"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Align the resume with a job description",
	Long: `Analyze the candidate profile against a job description and print the match score, gaps,
rewritten experience and profile suggestions. The job description comes from --job, --job-url or
--gig; with none of them an interactive picker lists the target roles.`,
	RunE: runTailor,
}

var (
	tailorJobFile string
	tailorJobURL  string
	tailorGigID   string
	tailorOut     string
	tailorJSONOut string
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorJobFile, "job", "j", "", "Path to a job description text file")
	tailorCmd.Flags().StringVarP(&tailorJobURL, "job-url", "u", "", "URL of a job posting")
	tailorCmd.Flags().StringVarP(&tailorGigID, "gig", "g", "", "ID of a predefined target role")
	tailorCmd.Flags().StringVarP(&tailorOut, "out", "o", "", "Write the tailored resume PDF to this path")
	tailorCmd.Flags().StringVar(&tailorJSONOut, "json", "", "Write the analysis JSON to this path")
	tailorCmd.MarkFlagsMutuallyExclusive("job", "job-url", "gig")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := content.Default()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jd, err := resolveJob(ctx, store, cfg.Fetch.UseBrowser, cfg.Verbose)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	analyzer, err := alignment.NewAnalyzer(client, alignment.WithMetrics(observability.DefaultMetrics()))
	if err != nil {
		return err
	}

	profile := store.CandidateProfile()
	fmt.Fprintf(os.Stderr, "Analyzing %s job description (%d chars)...\n", jd.Source, len(jd.Text))
	analysis, err := analyzer.Analyze(ctx, profile, jd.Text)
	if err != nil {
		var analysisErr *alignment.AnalysisError
		if !errors.As(err, &analysisErr) {
			return err
		}
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[VERBOSE] %v\n", err)
		}
		return errors.New(analysisErr.UserMessage())
	}

	printer := observability.NewPrinter(os.Stdout, !color.NoColor)
	if jd.Title != "" {
		fmt.Printf("Target: %s\n", jd.Title)
	}
	printer.PrintAnalysis(analysis)
	printer.PrintSummaryDiff(profile.Summary, analysis.OptimizedSummary)

	if tailorJSONOut != "" {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		if err := os.WriteFile(tailorJSONOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Analysis: %s\n", tailorJSONOut)
	}

	if tailorOut != "" {
		if err := writePDF(profile, analysis, tailorOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Tailored resume: %s\n", tailorOut)
	}
	return nil
}

// resolveJob reads the job description from whichever source flag was given,
// falling back to the interactive gig picker.
func resolveJob(ctx context.Context, store *content.Store, useBrowser, verbose bool) (*ingestion.JobDescription, error) {
	switch {
	case tailorJobFile != "":
		return ingestion.FromFile(tailorJobFile)
	case tailorJobURL != "":
		ingester := ingestion.NewURLIngester()
		ingester.Verbose = verbose
		if useBrowser {
			ingester.Renderer = fetch.NewChromeRenderer()
		}
		return ingester.FromURL(ctx, tailorJobURL)
	case tailorGigID != "":
		gig, ok := store.Gig(tailorGigID)
		if !ok {
			return nil, fmt.Errorf("unknown gig %q", tailorGigID)
		}
		return ingestion.FromGig(gig)
	default:
		gig, err := pickGig(store.TargetGigs())
		if err != nil {
			return nil, err
		}
		return ingestion.FromGig(gig)
	}
}

func pickGig(gigs []types.TargetGig) (types.TargetGig, error) {
	if len(gigs) == 0 {
		return types.TargetGig{}, errors.New("no target roles configured; pass --job, --job-url or --gig")
	}

	prompt := promptui.Select{
		Label: "Target role",
		Items: gigs,
		Size:  min(len(gigs), 10),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ .Title | cyan }}{{ if .Company }} ({{ .Company }}){{ end }}",
			Inactive: "  {{ .Title }}{{ if .Company }} ({{ .Company }}){{ end }}",
			Selected: "✔ {{ .Title | green }}",
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return types.TargetGig{}, fmt.Errorf("role selection cancelled: %w", err)
	}
	return gigs[i], nil
}

func writePDF(profile *types.Profile, analysis *types.AlignmentAnalysis, path string) error {
	data, err := rendering.ExportPDF(profile, analysis)
	if err != nil {
		observability.DefaultMetrics().IncPDFExport(observability.OutcomeError)
		return err
	}
	observability.DefaultMetrics().IncPDFExport(observability.OutcomeOK)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
