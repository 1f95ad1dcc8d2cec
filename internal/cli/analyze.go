package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/roteiro/internal/analyzer"
	"github.com/vampirenirmal/roteiro/internal/batch"
	"github.com/vampirenirmal/roteiro/internal/storage"
)

var analyzeFlags struct {
	videoID string
	dir     string
	save    bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE]",
	Short: "Analyze a script for technique usage",
	Long: `Analyze a script text for hooks, engagement techniques and narrative
structure. Reads the given file, or stdin when no file is passed.
With --dir every *.txt file in the directory is analyzed concurrently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		an := analyzer.New(analyzer.WithLogger(log))

		if analyzeFlags.dir != "" {
			return analyzeDir(cmd, an)
		}

		text, videoID, err := readScript(cmd, args)
		if err != nil {
			return err
		}
		if analyzeFlags.videoID != "" {
			videoID = analyzeFlags.videoID
		}

		result := an.Analyze(text, videoID)
		if analyzeFlags.save {
			store := storage.NewFileSystem(cfg.Paths.DataDir)
			path := filepath.Join("analyses", result.VideoID+".json")
			if err := an.Export(cmd.Context(), store, path, result); err != nil {
				return fmt.Errorf("saving analysis: %w", err)
			}
		}
		if jsonOutput {
			return printJSON(cmd, result)
		}
		printAnalysis(cmd, result)
		return nil
	},
}

// readScript returns the script text and a video ID derived from the source.
func readScript(cmd *cobra.Command, args []string) (text, videoID string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading script file: %w", err)
	}
	base := filepath.Base(args[0])
	return string(data), strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func analyzeDir(cmd *cobra.Command, an *analyzer.Analyzer) error {
	paths, err := filepath.Glob(filepath.Join(analyzeFlags.dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("listing scripts: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.txt files in %s", analyzeFlags.dir)
	}

	tasks := make([]batch.Task[string], len(paths))
	for i, path := range paths {
		base := filepath.Base(path)
		tasks[i] = batch.Task[string]{
			ID:    strings.TrimSuffix(base, filepath.Ext(base)),
			Input: path,
		}
	}

	pool := batch.NewPool(batch.WithWorkers(cfg.Batch.Workers), batch.WithLogger(log))
	outcome := batch.Run(cmd.Context(), pool, tasks, func(ctx context.Context, task batch.Task[string]) (*analyzer.Result, error) {
		data, err := os.ReadFile(task.Input)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", task.Input, err)
		}
		return an.Analyze(string(data), task.ID), nil
	})

	for _, f := range outcome.Failures {
		log.Warn("analysis failed", "id", f.ID, "error", f.Err)
	}

	if analyzeFlags.save {
		store := storage.NewFileSystem(cfg.Paths.DataDir)
		for _, result := range outcome.Results {
			path := filepath.Join("analyses", result.VideoID+".json")
			if err := an.Export(cmd.Context(), store, path, result); err != nil {
				return fmt.Errorf("saving analysis %s: %w", result.VideoID, err)
			}
		}
	}

	if jsonOutput {
		type batchFailure struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		}
		failures := make([]batchFailure, 0, len(outcome.Failures))
		for _, f := range outcome.Failures {
			failures = append(failures, batchFailure{ID: f.ID, Message: f.Err.Error()})
		}
		return printJSON(cmd, map[string]any{
			"results":  outcome.Results,
			"failures": failures,
		})
	}
	for _, result := range outcome.Results {
		printAnalysis(cmd, result)
		cmd.Println()
	}
	cmd.Printf("%d analisados, %d falharam\n", len(outcome.Results), len(outcome.Failures))
	return nil
}

func printAnalysis(cmd *cobra.Command, result *analyzer.Result) {
	cmd.Printf("Vídeo: %s\n", result.VideoID)
	cmd.Printf("Engajamento: %.2f\n", result.EngagementScore)
	cmd.Printf("Duração estimada: %.1f min\n", result.StructureAnalysis.EstimatedDurationMinutes)
	if len(result.Recommendations) > 0 {
		cmd.Println("Recomendações:")
		for _, rec := range result.Recommendations {
			cmd.Println("  - " + rec)
		}
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.videoID, "id", "", "video ID for the analysis (defaults to the file name)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.dir, "dir", "", "analyze every *.txt file in this directory")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.save, "save", false, "save analysis results to the data directory")

	rootCmd.AddCommand(analyzeCmd)
}
