package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/descriptors"
	"github.com/jonathan/resume-recommender/internal/evaluate"
	"github.com/jonathan/resume-recommender/internal/extract"
	"github.com/jonathan/resume-recommender/internal/fetch"
	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/observability"
	"github.com/jonathan/resume-recommender/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [resume files or directories]",
	Short: "Evaluate resumes against a job description",
	Long: `Evaluate one or more resumes against a job description.

Each resume is scored by the model and the output is validated against the
record schema, including any HR-defined custom fields. Failed evaluations are
reported per resume and never abort the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvaluate,
}

var (
	evalConfigPath  string
	evalJobFile     string
	evalJobURL      string
	evalJobTitle    string
	evalDepartment  string
	evalFieldsPath  string
	evalParallelism int
	evalJSONOut     bool
	evalSave        bool
	evalPrecheck    bool
	evalVerbose     bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalConfigPath, "config", "c", "", "Path to JSON config file")
	evaluateCmd.Flags().StringVarP(&evalJobFile, "job", "j", "", "Path to job description text file")
	evaluateCmd.Flags().StringVarP(&evalJobURL, "job-url", "u", "", "URL to fetch the job posting from")
	evaluateCmd.Flags().StringVar(&evalJobTitle, "job-title", "", "Role title shown to the model")
	evaluateCmd.Flags().StringVar(&evalDepartment, "department", "", "Department shown to the model")
	evaluateCmd.Flags().StringVarP(&evalFieldsPath, "fields", "f", "", "Path to custom field descriptor file (JSON or YAML)")
	evaluateCmd.Flags().IntVarP(&evalParallelism, "parallelism", "p", 0, "Concurrent model calls (default 4)")
	evaluateCmd.Flags().BoolVar(&evalJSONOut, "json", false, "Print results as JSON")
	evaluateCmd.Flags().BoolVar(&evalSave, "save", false, "Persist results to the database (requires DATABASE_URL)")
	evaluateCmd.Flags().BoolVar(&evalPrecheck, "precheck", false, "Run pre-evaluation configuration checks first")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print the compiled schema and per-resume detail")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := mergedConfig()
	if err != nil {
		return err
	}
	if cfg.JobTitle == "" {
		return fmt.Errorf("--job-title is required")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()

	resumes, err := collectResumes(args)
	if err != nil {
		return err
	}

	description, err := jobDescription(ctx, cfg)
	if err != nil {
		return err
	}
	job := evaluate.Job{Title: cfg.JobTitle, Department: cfg.Department, Description: description}

	var fields []types.FieldDescriptor
	if cfg.Fields != "" {
		fields, err = descriptors.Load(cfg.Fields)
		if err != nil {
			return err
		}
	}

	client, err := llm.NewGeminiClient(ctx, modelConfig(cfg), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	evaluator, err := evaluate.New(client, job, fields)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if evalVerbose {
		printer.PrintSchema(evaluator.Schema())
	}

	if evalPrecheck {
		check, err := evaluator.Precheck(ctx)
		if err != nil {
			return err
		}
		printPrecheck(cmd.OutOrStdout(), check)
	}

	results := evaluateAll(ctx, evaluator, resumes, cfg.Parallelism)

	if evalVerbose {
		for _, ev := range results {
			printer.PrintEvaluation(ev)
		}
	}

	if evalSave {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		if err := saveResults(ctx, cfg.DatabaseURL, job, results); err != nil {
			return err
		}
	}

	if evalJSONOut {
		return printJSON(cmd.OutOrStdout(), job, results)
	}
	printTable(cmd.OutOrStdout(), results)
	return nil
}

// mergedConfig combines flags, the optional config file, and the environment.
// Flags win over the file; the file wins over the environment.
func mergedConfig() (config.Config, error) {
	cfg := config.Config{
		Job:         evalJobFile,
		JobURL:      evalJobURL,
		JobTitle:    evalJobTitle,
		Department:  evalDepartment,
		Fields:      evalFieldsPath,
		Parallelism: evalParallelism,
	}

	if evalConfigPath != "" {
		fileCfg, err := config.LoadConfig(evalConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// collectResumes expands the argument list into supported resume files,
// walking directories one level deep.
func collectResumes(args []string) ([]string, error) {
	var resumes []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			if !extract.Supported(arg) {
				return nil, fmt.Errorf("unsupported resume file type: %s", arg)
			}
			resumes = append(resumes, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !extract.Supported(entry.Name()) {
				continue
			}
			resumes = append(resumes, filepath.Join(arg, entry.Name()))
		}
	}

	if len(resumes) == 0 {
		return nil, fmt.Errorf("no supported resume files found")
	}
	sort.Strings(resumes)
	return resumes, nil
}

// jobDescription resolves the posting text from the configured file or URL.
func jobDescription(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return fetch.JobDescription(ctx, cfg.JobURL, nil)
}

// modelConfig applies any configured model overrides to the defaults.
func modelConfig(cfg config.Config) *llm.Config {
	mc := llm.DefaultConfig()
	if cfg.LiteModel != "" {
		mc = mc.WithModel(llm.TierLite, cfg.LiteModel)
	}
	if cfg.StandardModel != "" {
		mc = mc.WithModel(llm.TierStandard, cfg.StandardModel)
	}
	return mc
}

// evaluateAll extracts each resume's text and runs the batch evaluation.
// Extraction failures become failed envelopes, keeping one result per file.
func evaluateAll(ctx context.Context, evaluator *evaluate.Evaluator, paths []string, parallelism int) []*types.Evaluation {
	failed := make(map[int]*types.Evaluation)
	var docs []evaluate.Document
	var docIndex []int
	for i, path := range paths {
		text, err := extract.FromFile(path)
		if err != nil {
			failed[i] = &types.Evaluation{ID: uuid.New(), Source: filepath.Base(path), Err: err}
			continue
		}
		docs = append(docs, evaluate.Document{Source: filepath.Base(path), Text: text})
		docIndex = append(docIndex, i)
	}

	evaluated := evaluator.Batch(ctx, docs, parallelism)

	ordered := make([]*types.Evaluation, len(paths))
	for i, ev := range evaluated {
		ordered[docIndex[i]] = ev
	}
	for i, ev := range failed {
		ordered[i] = ev
	}
	return ordered
}

func saveResults(ctx context.Context, databaseURL string, job evaluate.Job, results []*types.Evaluation) error {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	for _, ev := range results {
		if err := database.SaveEvaluation(ctx, job.Title, job.Department, ev); err != nil {
			return err
		}
	}
	return nil
}

func printPrecheck(w io.Writer, check *evaluate.PrecheckResult) {
	fmt.Fprintln(w, "Job requirements summary:")
	fmt.Fprintln(w, check.JobSummary)
	for _, fc := range check.FieldChecks {
		fmt.Fprintf(w, "\nCustom field %q:\n%s\n", fc.Field, fc.Summary)
	}
	fmt.Fprintln(w)
}

func printJSON(w io.Writer, job evaluate.Job, results []*types.Evaluation) error {
	rows := make([]db.StoredEvaluation, len(results))
	for i, ev := range results {
		rows[i] = db.NewStoredEvaluation(job.Title, job.Department, ev)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printTable(w io.Writer, results []*types.Evaluation) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tCANDIDATE\tRECOMMENDATION\tSCORE\tSTATUS")
	for _, ev := range results {
		if ev.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\tfailed: %s\n", ev.Source, ev.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\tok\n",
			ev.Source, ev.Record.CandidateName(), ev.Record.Recommendation(), ev.Record.OverallScore())
	}
	_ = tw.Flush()
}
