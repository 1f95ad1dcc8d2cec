package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/roteiro/internal/storage"
	"github.com/vampirenirmal/roteiro/internal/techniques"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the technique catalogue",
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search hooks, structures and patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		db := techniques.NewDatabase(techniques.WithLogger(log))
		results := db.Search(args[0], category)
		if jsonOutput {
			return printJSON(cmd, results)
		}
		cmd.Printf("Hooks: %d\n", len(results.Hooks))
		for _, h := range results.Hooks {
			cmd.Printf("  %s: %s\n", h.Name, h.Description)
		}
		cmd.Printf("Estruturas: %d\n", len(results.Structures))
		for _, s := range results.Structures {
			cmd.Printf("  %s: %s\n", s.Name, s.Description)
		}
		cmd.Printf("Padrões: %d\n", len(results.Patterns))
		for _, p := range results.Patterns {
			cmd.Printf("  %s: %s\n", p.Name, p.Description)
		}
		return nil
	},
}

var catalogRecommendCmd = &cobra.Command{
	Use:   "recommend NICHE",
	Short: "Recommend techniques for a niche",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := techniques.NewDatabase(techniques.WithLogger(log))
		recs := db.RecommendationsForNiche(args[0])
		if jsonOutput {
			return printJSON(cmd, recs)
		}
		cmd.Printf("Recomendações para %s:\n", args[0])
		for _, h := range recs.Hooks {
			cmd.Printf("  hook: %s (%.2f)\n", h.Name, h.EffectivenessScore)
		}
		for _, s := range recs.Structures {
			cmd.Printf("  estrutura: %s (%.2f)\n", s.Name, s.EngagementScore)
		}
		for _, p := range recs.Patterns {
			cmd.Printf("  padrão: %s (%.2f)\n", p.Name, p.EffectivenessScore)
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a hook/structure pairing for a niche",
	RunE: func(cmd *cobra.Command, args []string) error {
		hook, _ := cmd.Flags().GetString("hook")
		structure, _ := cmd.Flags().GetString("structure")
		niche, _ := cmd.Flags().GetString("niche")

		db := techniques.NewDatabase(techniques.WithLogger(log))
		report := db.ValidateCombination(hook, structure, niche)
		if jsonOutput {
			return printJSON(cmd, report)
		}
		if !report.Valid {
			cmd.Println("Combinação inválida: " + report.Reason)
			return nil
		}
		cmd.Printf("Compatibilidade: %.2f\n", report.CompatibilityScore)
		for _, rec := range report.Recommendations {
			cmd.Println("  - " + rec)
		}
		return nil
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := techniques.NewDatabase(techniques.WithLogger(log))
		stats := db.Statistics()
		if jsonOutput {
			return printJSON(cmd, stats)
		}
		cmd.Printf("%d hooks, %d estruturas, %d padrões de engajamento\n",
			stats.TotalHooks, stats.TotalStructures, stats.TotalPatterns)
		cmd.Println("Nichos: " + strings.Join(stats.SupportedNiches, ", "))
		return nil
	},
}

var catalogStructureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Build a complete script structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		niche, _ := cmd.Flags().GetString("niche")
		hook, _ := cmd.Flags().GetString("hook")
		structureType, _ := cmd.Flags().GetString("structure")
		duration, _ := cmd.Flags().GetInt("duration")
		topic, _ := cmd.Flags().GetString("topic")

		db := techniques.NewDatabase(techniques.WithLogger(log))
		structure := db.CompleteStructure(
			orDefault(niche, cfg.Defaults.Niche),
			orDefault(hook, cfg.Defaults.HookType),
			orDefault(structureType, cfg.Defaults.StructureType),
			duration,
			topic,
		)
		if structure == nil {
			return fmt.Errorf("hook %q or structure %q not in catalogue", hook, structureType)
		}
		if jsonOutput {
			return printJSON(cmd, structure)
		}

		cmd.Println(formatStructure(structure))
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Export the full catalogue as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := techniques.NewDatabase(techniques.WithLogger(log))
		if len(args) == 0 {
			data, err := db.Export()
			if err != nil {
				return fmt.Errorf("exporting catalogue: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}
		store := storage.NewFileSystem(cfg.Paths.DataDir)
		if err := db.ExportToFile(cmd.Context(), store, args[0]); err != nil {
			return fmt.Errorf("exporting catalogue: %w", err)
		}
		cmd.Printf("Catálogo exportado para %s\n", args[0])
		return nil
	},
}

// formatStructure renders a script structure as markdown, the shape the
// original web UI shows.
func formatStructure(structure *techniques.ScriptStructure) string {
	var b strings.Builder
	b.WriteString("# Estrutura de Script\n\n")
	b.WriteString("## Metadados\n")
	fmt.Fprintf(&b, "- **Tópico**: %s\n", structure.Metadata.Topic)
	fmt.Fprintf(&b, "- **Nicho**: %s\n", structure.Metadata.Niche)
	fmt.Fprintf(&b, "- **Duração estimada**: %d minutos\n\n", structure.Metadata.EstimatedLength)
	fmt.Fprintf(&b, "## Hook (%s)\n", structure.Hook.Type)
	fmt.Fprintf(&b, "**Template**: %s\n", structure.Hook.Template)
	fmt.Fprintf(&b, "**Exemplo**: %s\n\n", structure.Hook.Example)
	fmt.Fprintf(&b, "## Estrutura Narrativa (%s)\n", structure.Structure.Name)
	for i, section := range structure.Structure.Sections {
		fmt.Fprintf(&b, "**%d. %s** (%.1f min)\n", i+1, section.Name, section.EstimatedMinutes)
		fmt.Fprintf(&b, "   %s\n\n", section.Purpose)
	}
	return b.String()
}

func init() {
	catalogSearchCmd.Flags().String("category", "", "restrict to hooks, structures or patterns")

	catalogValidateCmd.Flags().String("hook", "", "hook type")
	catalogValidateCmd.Flags().String("structure", "", "narrative structure")
	catalogValidateCmd.Flags().String("niche", "", "content niche")
	_ = catalogValidateCmd.MarkFlagRequired("hook")
	_ = catalogValidateCmd.MarkFlagRequired("structure")

	catalogStructureCmd.Flags().String("niche", "", "content niche")
	catalogStructureCmd.Flags().String("hook", "", "hook type")
	catalogStructureCmd.Flags().String("structure", "", "narrative structure")
	catalogStructureCmd.Flags().Int("duration", 10, "target duration in minutes")
	catalogStructureCmd.Flags().String("topic", "", "video topic")

	catalogCmd.AddCommand(
		catalogSearchCmd,
		catalogRecommendCmd,
		catalogValidateCmd,
		catalogStatsCmd,
		catalogStructureCmd,
		catalogExportCmd,
	)
	rootCmd.AddCommand(catalogCmd)
}
