package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/highmark/consult-copilot/internal/config"
	"github.com/highmark/consult-copilot/internal/diagnosis"
	"github.com/highmark/consult-copilot/internal/extraction"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/observability"
	"github.com/highmark/consult-copilot/internal/pipeline"
	"github.com/highmark/consult-copilot/internal/recommendation"
	"github.com/highmark/consult-copilot/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full consulting analysis for one student",
	Long: `Runs the analysis end-to-end: optional résumé extraction, competitiveness
diagnosis, sales recommendation, and quote initialization. The profile is
built from flags; a résumé file fills in whatever the flags left out.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeAPIKey     string
	analyzeDBURL      string
	analyzeJSON       bool

	analyzeName        string
	analyzeUniversity  string
	analyzeLevel       string
	analyzeMajorGroup  string
	analyzeMajor       string
	analyzeGrade       string
	analyzeGradYear    string
	analyzeIndustries  []string
	analyzeRole        string
	analyzeCity        string
	analyzeSalary      string
	analyzeInternships string
	analyzeProjects    string
	analyzeCerts       string
	analyzeGPA         string
	analyzeEnglish     string
	analyzeStatus      string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to a résumé file (PDF or image) to extract profile fields from")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full session view as JSON instead of formatted output")

	analyzeCmd.Flags().StringVarP(&analyzeName, "name", "n", "", "Student name")
	analyzeCmd.Flags().StringVar(&analyzeUniversity, "university", "", "University name")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "University level (985/211/双一流, 普通一本, ...)")
	analyzeCmd.Flags().StringVar(&analyzeMajorGroup, "major-category", "", "Major category")
	analyzeCmd.Flags().StringVar(&analyzeMajor, "major", "", "Major")
	analyzeCmd.Flags().StringVar(&analyzeGrade, "grade", "", "Grade / year of study")
	analyzeCmd.Flags().StringVar(&analyzeGradYear, "graduation-year", "", "Graduation year")
	analyzeCmd.Flags().StringSliceVar(&analyzeIndustries, "industry", nil, "Target industries (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role")
	analyzeCmd.Flags().StringVar(&analyzeCity, "city", "", "Target city")
	analyzeCmd.Flags().StringVar(&analyzeSalary, "salary", "", "Expected salary")
	analyzeCmd.Flags().StringVar(&analyzeInternships, "internships", "", "Internship count")
	analyzeCmd.Flags().StringVar(&analyzeProjects, "projects", "", "Project experience summary")
	analyzeCmd.Flags().StringVar(&analyzeCerts, "certificates", "", "Certificates")
	analyzeCmd.Flags().StringVar(&analyzeGPA, "gpa", "", "GPA / class ranking")
	analyzeCmd.Flags().StringVar(&analyzeEnglish, "english", "", "English level")
	analyzeCmd.Flags().StringVar(&analyzeStatus, "status", "", "Job-search status")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.FromEnv()
	if analyzeConfigPath != "" {
		fileCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDBURL
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required: set GEMINI_API_KEY or pass --api-key")
	}

	client, err := llm.NewGeminiClient(ctx, cfg.LLMConfig())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	var recorder pipeline.Recorder
	if cfg.DatabaseURL != "" {
		st, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		recorder = st
	}

	session := pipeline.NewSession(pipeline.Engines{
		Extractor:   extraction.NewEngine(client),
		Diagnoser:   diagnosis.NewEngine(client),
		Recommender: recommendation.NewEngine(client),
	}, recorder)

	applyProfileFlags(session)

	if analyzeResume != "" {
		if err := importResume(ctx, session, analyzeResume); err != nil {
			// Extraction degradation is not fatal; the placeholder patch is
			// already applied and the operator can correct fields by hand.
			fmt.Fprintf(os.Stderr, "Résumé extraction degraded: %v\n", err)
		}
	}

	err = session.Submit(ctx, func(event pipeline.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
	})
	if err != nil {
		return err
	}

	if analyzeJSON {
		return json.NewEncoder(os.Stdout).Encode(session.View())
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintDiagnosis(session.Diagnosis())
	printer.PrintRecommendation(session.Recommendation())
	printer.PrintQuote(session.Cart().Snapshot(session.Proposal()))
	return nil
}

func applyProfileFlags(session *pipeline.Session) {
	profile := session.Profile()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&profile.Name, analyzeName)
	set(&profile.University, analyzeUniversity)
	set(&profile.UniversityLevel, analyzeLevel)
	set(&profile.MajorCategory, analyzeMajorGroup)
	set(&profile.Major, analyzeMajor)
	set(&profile.Grade, analyzeGrade)
	set(&profile.GraduationYear, analyzeGradYear)
	set(&profile.TargetRole, analyzeRole)
	set(&profile.TargetCity, analyzeCity)
	set(&profile.ExpectedSalary, analyzeSalary)
	set(&profile.InternshipCount, analyzeInternships)
	set(&profile.Projects, analyzeProjects)
	set(&profile.Certificates, analyzeCerts)
	set(&profile.GPARanking, analyzeGPA)
	set(&profile.EnglishLevel, analyzeEnglish)
	set(&profile.Status, analyzeStatus)
	if len(analyzeIndustries) > 0 {
		profile.TargetIndustry = analyzeIndustries
	}
}

func importResume(ctx context.Context, session *pipeline.Session, path string) error {
	document, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read résumé file: %w", err)
	}
	return session.ImportResume(ctx, document, resumeMIMEType(path), filepath.Base(path))
}

// resumeMIMEType guesses the document type from the file extension. The
// vision model accepts PDFs and common image formats.
func resumeMIMEType(path string) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(path)); mimeType != "" {
		return mimeType
	}
	return "application/pdf"
}
