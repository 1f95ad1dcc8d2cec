// Package techniques composes the three catalogue registries behind a single
// entry point used by the generator, the analyzer recommendations, the CLI
// and the HTTP server.
package techniques

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vampirenirmal/roteiro/internal/catalog"
	"github.com/vampirenirmal/roteiro/internal/storage"
)

// bestPatternThreshold is the effectiveness cutoff used when recommending
// engagement techniques. Techniques carry no niche affinity, so niche
// recommendations fall back to this global list.
const bestPatternThreshold = 0.75

// Database is the unified view over hooks, narrative structures and
// engagement techniques. Read-only after construction, safe for concurrent
// callers.
type Database struct {
	hooks      *catalog.Hooks
	structures *catalog.Structures
	patterns   *catalog.Techniques

	log *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for export and lookup diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(db *Database) { db.log = log }
}

// coreTechniques are the engagement keys every complete structure embeds.
// Their absence is a catalogue authoring error, not a runtime condition.
var coreTechniques = []string{"pattern_interrupt", "social_proof", "interaction_prompt"}

// NewDatabase builds the catalogue registries. It panics if the engagement
// catalogue is missing one of the core techniques that CompleteStructure
// unconditionally embeds.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		hooks:      catalog.NewHooks(),
		structures: catalog.NewStructures(),
		patterns:   catalog.NewTechniques(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	for _, key := range coreTechniques {
		if _, ok := db.patterns.Get(key); !ok {
			panic(fmt.Sprintf("techniques: catalogue missing core technique %q", key))
		}
	}
	return db
}

// Hooks exposes the hook registry.
func (db *Database) Hooks() *catalog.Hooks { return db.hooks }

// Structures exposes the narrative structure registry.
func (db *Database) Structures() *catalog.Structures { return db.structures }

// Patterns exposes the engagement technique registry.
func (db *Database) Patterns() *catalog.Techniques { return db.patterns }

// SearchResults groups matches per category. Empty slices mean no match,
// never an error.
type SearchResults struct {
	Hooks      []catalog.Hook      `json:"hooks"`
	Structures []catalog.Structure `json:"structures"`
	Patterns   []catalog.Technique `json:"patterns"`
}

// Search matches query case-insensitively against each record's name,
// description and niche or usage text. category restricts the search to one
// bucket ("hooks", "structures", "patterns"); empty searches all three.
func (db *Database) Search(query, category string) SearchResults {
	results := SearchResults{
		Hooks:      []catalog.Hook{},
		Structures: []catalog.Structure{},
		Patterns:   []catalog.Technique{},
	}
	q := strings.ToLower(query)

	if category == "" || category == "hooks" {
		for _, key := range db.hooks.Keys() {
			hook, _ := db.hooks.Get(key)
			if strings.Contains(strings.ToLower(hook.Name), q) ||
				strings.Contains(strings.ToLower(hook.Description), q) ||
				containsFold(hook.BestNiches, q) {
				results.Hooks = append(results.Hooks, hook)
			}
		}
	}
	if category == "" || category == "structures" {
		for _, key := range db.structures.Keys() {
			st, _ := db.structures.Get(key)
			if strings.Contains(strings.ToLower(st.Name), q) ||
				strings.Contains(strings.ToLower(st.Description), q) ||
				containsFold(st.BestFor, q) {
				results.Structures = append(results.Structures, st)
			}
		}
	}
	if category == "" || category == "patterns" {
		for _, key := range db.patterns.Keys() {
			tech, _ := db.patterns.Get(key)
			if strings.Contains(strings.ToLower(tech.Name), q) ||
				strings.Contains(strings.ToLower(tech.Description), q) ||
				strings.Contains(strings.ToLower(tech.WhenToUse), q) {
				results.Patterns = append(results.Patterns, tech)
			}
		}
	}
	return results
}

func containsFold(values []string, loweredQuery string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), loweredQuery) {
			return true
		}
	}
	return false
}

// Recommendations holds the techniques suggested for one niche. Patterns
// are the global best list since they are not niche-tagged.
type Recommendations struct {
	Hooks      []catalog.Hook      `json:"hooks"`
	Structures []catalog.Structure `json:"structures"`
	Patterns   []catalog.Technique `json:"patterns"`
}

// RecommendationsForNiche returns hooks and structures tagged with niche plus
// the globally best engagement techniques.
func (db *Database) RecommendationsForNiche(niche string) Recommendations {
	return Recommendations{
		Hooks:      db.hooks.ByNiche(niche),
		Structures: db.structures.ByNiche(niche),
		Patterns:   db.patterns.Best(bestPatternThreshold),
	}
}

// Metadata echoes the request that produced a script structure.
type Metadata struct {
	Niche           string `json:"niche"`
	Topic           string `json:"topic"`
	EstimatedLength int    `json:"estimated_length"`
	HookType        string `json:"hook_type"`
	StructureType   string `json:"structure_type"`
}

// HookPlan is the hook portion of a script structure.
type HookPlan struct {
	Type                   string `json:"type"`
	Template               string `json:"template"`
	Example                string `json:"example"`
	PsychologicalPrinciple string `json:"psychological_principle"`
}

// SectionPlan is one narrative section with its share of the target length
// resolved to minutes.
type SectionPlan struct {
	Name               string   `json:"name"`
	Purpose            string   `json:"purpose"`
	DurationPercentage float64  `json:"duration_percentage"`
	KeyElements        []string `json:"key_elements"`
	EstimatedMinutes   float64  `json:"estimated_duration"`
}

// StructurePlan is the narrative portion of a script structure.
type StructurePlan struct {
	Name                   string        `json:"name"`
	Sections               []SectionPlan `json:"sections"`
	PsychologicalPrinciple string        `json:"psychological_principle"`
}

// RecommendedTechniques carries one canonical example per core engagement
// technique.
type RecommendedTechniques struct {
	PatternInterrupts  []string `json:"pattern_interrupts"`
	SocialProof        []string `json:"social_proof"`
	InteractionPrompts []string `json:"interaction_prompts"`
}

// ScriptStructure is the combined plan for one request: metadata, hook,
// narrative sections, engagement plan and the core technique examples. It is
// the generator's input and the structure preview shown by the CLI and UI.
type ScriptStructure struct {
	Metadata              Metadata              `json:"metadata"`
	Hook                  HookPlan              `json:"hook"`
	Structure             StructurePlan         `json:"structure"`
	EngagementPlan        []catalog.PlanSlot    `json:"engagement_plan"`
	RecommendedTechniques RecommendedTechniques `json:"recommended_techniques"`
}

// CompleteStructure composes the full script structure for one request.
// Returns nil when hookType or structureType is not in the catalogue; that
// is the soft not-found signal, callers branch on it instead of an error.
func (db *Database) CompleteStructure(niche, hookType, structureType string, videoLengthMinutes int, topic string) *ScriptStructure {
	hook, ok := db.hooks.Get(hookType)
	if !ok {
		return nil
	}
	structure, ok := db.structures.Get(structureType)
	if !ok {
		return nil
	}

	sections := make([]SectionPlan, 0, len(structure.Sections))
	for _, section := range structure.Sections {
		sections = append(sections, SectionPlan{
			Name:               section.Name,
			Purpose:            section.Purpose,
			DurationPercentage: section.DurationPercentage,
			KeyElements:        section.KeyElements,
			EstimatedMinutes:   section.DurationPercentage * float64(videoLengthMinutes),
		})
	}

	example := ""
	if len(hook.Examples) > 0 {
		example = hook.Examples[0]
	}

	return &ScriptStructure{
		Metadata: Metadata{
			Niche:           niche,
			Topic:           topic,
			EstimatedLength: videoLengthMinutes,
			HookType:        hookType,
			StructureType:   structureType,
		},
		Hook: HookPlan{
			Type:                   hook.Name,
			Template:               hook.Template,
			Example:                example,
			PsychologicalPrinciple: hook.PsychologicalPrinciple,
		},
		Structure: StructurePlan{
			Name:                   structure.Name,
			Sections:               sections,
			PsychologicalPrinciple: structure.PsychologicalPrinciple,
		},
		EngagementPlan: db.patterns.Plan(videoLengthMinutes),
		RecommendedTechniques: RecommendedTechniques{
			PatternInterrupts:  []string{db.firstExample("pattern_interrupt")},
			SocialProof:        []string{db.firstExample("social_proof")},
			InteractionPrompts: []string{db.firstExample("interaction_prompt")},
		},
	}
}

func (db *Database) firstExample(key string) string {
	tech, _ := db.patterns.Get(key)
	if len(tech.Examples) == 0 {
		return ""
	}
	return tech.Examples[0]
}

// CombinationReport is the result of validating a hook/structure pairing.
// When Valid is false only Reason is populated.
type CombinationReport struct {
	Valid               bool     `json:"valid"`
	Reason              string   `json:"reason,omitempty"`
	CompatibilityScore  float64  `json:"compatibility_score,omitempty"`
	HookCompatible      bool     `json:"hook_compatible,omitempty"`
	StructureCompatible bool     `json:"structure_compatible,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
}

// ValidateCombination scores a hook/structure pairing for a niche. Niche
// compatibility is informational only and does not affect validity.
func (db *Database) ValidateCombination(hookType, structureType, niche string) CombinationReport {
	hook, hookOK := db.hooks.Get(hookType)
	structure, structOK := db.structures.Get(structureType)
	if !hookOK || !structOK {
		return CombinationReport{Valid: false, Reason: "Hook ou estrutura não encontrada"}
	}

	hookCompatible := contains(hook.BestNiches, niche)
	structureCompatible := contains(structure.BestFor, niche)
	score := (hook.EffectivenessScore + structure.EngagementScore) / 2

	return CombinationReport{
		Valid:               true,
		CompatibilityScore:  score,
		HookCompatible:      hookCompatible,
		StructureCompatible: structureCompatible,
		Recommendations: []string{
			fmt.Sprintf("Hook effectiveness: %.2f", hook.EffectivenessScore),
			fmt.Sprintf("Structure engagement: %.2f", structure.EngagementScore),
			fmt.Sprintf("Combined score: %.2f", score),
			fmt.Sprintf("Niche compatibility: Hook=%t, Structure=%t", hookCompatible, structureCompatible),
		},
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// Stats summarizes the catalogue. Distinct-value lists are sorted so two
// calls always compare equal.
type Stats struct {
	TotalHooks      int      `json:"total_hooks"`
	TotalStructures int      `json:"total_structures"`
	TotalPatterns   int      `json:"total_patterns"`
	HookTypes       []string `json:"hook_types"`
	StructureTypes  []string `json:"structure_types"`
	PatternTypes    []string `json:"pattern_types"`
	SupportedNiches []string `json:"supported_niches"`
}

// Statistics counts the catalogue entries and collects the distinct type
// identifiers and the union of all niches referenced by any hook.
func (db *Database) Statistics() Stats {
	nicheSet := make(map[string]struct{})
	for _, key := range db.hooks.Keys() {
		hook, _ := db.hooks.Get(key)
		for _, niche := range hook.BestNiches {
			nicheSet[niche] = struct{}{}
		}
	}
	niches := make([]string, 0, len(nicheSet))
	for niche := range nicheSet {
		niches = append(niches, niche)
	}
	sort.Strings(niches)

	hookTypes := db.hooks.Keys()
	structureTypes := db.structures.Keys()
	patternTypes := db.patterns.Keys()
	sort.Strings(hookTypes)
	sort.Strings(structureTypes)
	sort.Strings(patternTypes)

	return Stats{
		TotalHooks:      db.hooks.Len(),
		TotalStructures: db.structures.Len(),
		TotalPatterns:   db.patterns.Len(),
		HookTypes:       hookTypes,
		StructureTypes:  structureTypes,
		PatternTypes:    patternTypes,
		SupportedNiches: niches,
	}
}

// Export serializes the full catalogue to an indented JSON document with one
// top-level key per category. Deterministic given the fixed catalogue data.
func (db *Database) Export() ([]byte, error) {
	doc := map[string]any{
		"hooks":      db.hooks.All(),
		"structures": db.structures.All(),
		"patterns":   db.patterns.All(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalogue: %w", err)
	}
	return data, nil
}

// ExportToFile writes the catalogue export through the given store.
func (db *Database) ExportToFile(ctx context.Context, store storage.Storage, path string) error {
	data, err := db.Export()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, path, data); err != nil {
		return fmt.Errorf("saving catalogue export: %w", err)
	}
	db.log.Info("catalogue exported", "path", path, "bytes", len(data))
	return nil
}
