package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/roteiro/internal/generator"
	"github.com/vampirenirmal/roteiro/internal/storage"
	"github.com/vampirenirmal/roteiro/internal/techniques"
)

var generateFlags struct {
	topic       string
	niche       string
	hook        string
	structure   string
	duration    int
	tone        string
	audience    string
	description string
	cta         bool
	variations  int
	save        bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a script draft",
	Long: `Generate a full script draft for a topic. Hook, structure, tone and
audience default to the configured values when not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := techniques.NewDatabase(techniques.WithLogger(log))
		gen := generator.New(db, generator.WithLogger(log))

		req := generator.Request{
			Topic:          generateFlags.topic,
			Niche:          orDefault(generateFlags.niche, cfg.Defaults.Niche),
			HookType:       orDefault(generateFlags.hook, cfg.Defaults.HookType),
			StructureType:  orDefault(generateFlags.structure, cfg.Defaults.StructureType),
			TargetDuration: generateFlags.duration,
			Tone:           generator.Tone(orDefault(generateFlags.tone, cfg.Defaults.Tone)),
			TargetAudience: generator.Audience(orDefault(generateFlags.audience, cfg.Defaults.TargetAudience)),
			Description:    generateFlags.description,
			IncludeCTA:     generateFlags.cta,
		}
		if req.TargetDuration == 0 {
			req.TargetDuration = cfg.Defaults.Duration
		}

		if generateFlags.variations > 1 {
			result := gen.GenerateVariations(req, generateFlags.variations)
			for _, f := range result.Failures {
				log.Warn("variation failed", "index", f.Index, "error", f.Err)
			}
			if err := saveScripts(cmd, result.Scripts); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, result)
			}
			for i, script := range result.Scripts {
				cmd.Printf("=== Variação %d (qualidade %.2f) ===\n\n", i+1, script.QualityScore)
				cmd.Println(script.Text)
			}
			return nil
		}

		script, err := gen.Generate(req)
		if err != nil {
			return fmt.Errorf("generating script: %w", err)
		}
		if err := saveScripts(cmd, []*generator.Script{script}); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, script)
		}
		printScript(cmd, script)
		return nil
	},
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func printScript(cmd *cobra.Command, script *generator.Script) {
	cmd.Println(script.Text)
	cmd.Println()
	cmd.Printf("Duração estimada: %.1f min\n", script.EstimatedDuration)
	cmd.Printf("Qualidade: %.2f\n", script.QualityScore)
	for _, technique := range script.TechniquesUsed {
		cmd.Println("  " + technique)
	}
}

func saveScripts(cmd *cobra.Command, scripts []*generator.Script) error {
	if !generateFlags.save {
		return nil
	}
	store := storage.NewFileSystem(cfg.Paths.DataDir)
	for _, script := range scripts {
		path := filepath.Join("scripts", script.ID+".json")
		if err := store.SaveJSON(cmd.Context(), path, script); err != nil {
			return fmt.Errorf("saving script %s: %w", script.ID, err)
		}
		log.Info("script saved", "path", filepath.Join(cfg.Paths.DataDir, path))
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVar(&generateFlags.topic, "topic", "", "video topic (required)")
	generateCmd.Flags().StringVar(&generateFlags.niche, "niche", "", "content niche")
	generateCmd.Flags().StringVar(&generateFlags.hook, "hook", "", "hook type")
	generateCmd.Flags().StringVar(&generateFlags.structure, "structure", "", "narrative structure")
	generateCmd.Flags().IntVar(&generateFlags.duration, "duration", 0, "target duration in minutes")
	generateCmd.Flags().StringVar(&generateFlags.tone, "tone", "", "tone: casual, professional, enthusiastic or educational")
	generateCmd.Flags().StringVar(&generateFlags.audience, "audience", "", "target audience")
	generateCmd.Flags().StringVar(&generateFlags.description, "description", "", "extra description used to fill the hook")
	generateCmd.Flags().BoolVar(&generateFlags.cta, "cta", true, "include a call to action")
	generateCmd.Flags().IntVar(&generateFlags.variations, "variations", 1, "number of script variations")
	generateCmd.Flags().BoolVar(&generateFlags.save, "save", false, "save generated scripts to the data directory")
	_ = generateCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd)
}
