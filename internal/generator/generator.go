// Package generator renders complete scripts from the technique catalogue:
// it fills the hook template, synthesizes per-section prose, assembles the
// final text and scores it.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vampirenirmal/roteiro/internal/techniques"
)

// wordsPerMinute is the speaking pace used for all duration estimates.
const wordsPerMinute = 150

// ErrStructureNotFound reports a request whose hook or structure key is not
// in the catalogue. This is the one hard failure of Generate; callers are
// expected to surface it, not retry.
var ErrStructureNotFound = errors.New("script structure not found in catalogue")

// Audience selects who the script talks to. It shapes only metadata and the
// technique labels today; the prose rules are audience-neutral.
type Audience string

const (
	AudienceBeginners     Audience = "iniciantes"
	AudienceIntermediates Audience = "intermediarios"
	AudienceAdvanced      Audience = "avancados"
	AudienceGeneral       Audience = "geral"
)

// Request describes one script to generate.
type Request struct {
	Topic          string            `json:"topic" validate:"required"`
	Niche          string            `json:"niche" validate:"required"`
	HookType       string            `json:"hook_type" validate:"required"`
	StructureType  string            `json:"structure_type" validate:"required"`
	TargetDuration int               `json:"target_duration" validate:"required,min=1,max=120"`
	Tone           Tone              `json:"tone" validate:"omitempty,oneof=casual professional enthusiastic educational"`
	TargetAudience Audience          `json:"target_audience" validate:"omitempty,oneof=iniciantes intermediarios avancados geral"`
	IncludeCTA     bool              `json:"include_cta"`
	Description    string            `json:"description"`
	CustomContext  map[string]string `json:"custom_context"`
}

// withDefaults fills the optional enum fields.
func (r Request) withDefaults() Request {
	if r.Tone == "" {
		r.Tone = ToneCasual
	}
	if r.TargetAudience == "" {
		r.TargetAudience = AudienceGeneral
	}
	return r
}

// Metadata echoes the request fields on the generated script.
type Metadata struct {
	Topic          string   `json:"topic"`
	Description    string   `json:"description"`
	Niche          string   `json:"niche"`
	HookType       string   `json:"hook_type"`
	StructureType  string   `json:"structure_type"`
	Tone           Tone     `json:"tone"`
	TargetAudience Audience `json:"target_audience"`
	TargetDuration int      `json:"target_duration"`
}

// Script is one generated script with its quality metadata.
type Script struct {
	ID                 string            `json:"id"`
	Text               string            `json:"script_text"`
	Metadata           Metadata          `json:"metadata"`
	TechniquesUsed     []string          `json:"techniques_used"`
	StructureBreakdown map[string]string `json:"structure_breakdown"`
	EstimatedDuration  float64           `json:"estimated_duration"`
	QualityScore       float64           `json:"quality_score"`
}

// Generator renders scripts against a technique database. Safe for
// concurrent use; the random source is guarded by a mutex.
type Generator struct {
	db       *techniques.Database
	validate *validator.Validate
	log      *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand substitutes the random source, letting tests pin every random
// choice with a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithLogger sets the generator's logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

func New(db *techniques.Database, opts ...Option) *Generator {
	g := &Generator{
		db:       db,
		validate: validator.New(),
		log:      slog.Default(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// pick returns one random item.
func (g *Generator) pick(items []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return items[g.rng.Intn(len(items))]
}

// intn returns a random int in [0, n).
func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

// sample returns k items drawn without replacement.
func (g *Generator) sample(items []string, k int) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, k)
	for _, idx := range g.rng.Perm(len(items))[:k] {
		out = append(out, items[idx])
	}
	return out
}

// section is one assembled block keyed the way the structure breakdown
// reports it.
type section struct {
	key  string
	text string
}

// Generate renders one script. It fails when the request is invalid or when
// its hook/structure keys are not in the catalogue; every other path
// succeeds, differing across calls only by the random word choices.
func (g *Generator) Generate(req Request) (*Script, error) {
	req = req.withDefaults()
	if err := g.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	g.log.Info("generating script", "topic", req.Topic, "structure", req.StructureType)

	structure := g.db.CompleteStructure(req.Niche, req.HookType, req.StructureType, req.TargetDuration, req.Topic)
	if structure == nil {
		return nil, fmt.Errorf("%w: hook=%q structure=%q", ErrStructureNotFound, req.HookType, req.StructureType)
	}

	sections := g.buildSections(structure, req)
	text := assemble(sections)
	score := qualityScore(text, structure)

	wordCount := len(strings.Fields(text))
	script := &Script{
		ID:   uuid.NewString(),
		Text: text,
		Metadata: Metadata{
			Topic:          req.Topic,
			Description:    req.Description,
			Niche:          req.Niche,
			HookType:       req.HookType,
			StructureType:  req.StructureType,
			Tone:           req.Tone,
			TargetAudience: req.TargetAudience,
			TargetDuration: req.TargetDuration,
		},
		TechniquesUsed: []string{
			"Hook: " + structure.Hook.Type,
			"Structure: " + structure.Structure.Name,
			"Tone: " + string(req.Tone),
			"Audience: " + string(req.TargetAudience),
		},
		StructureBreakdown: breakdown(sections),
		EstimatedDuration:  float64(wordCount) / wordsPerMinute,
		QualityScore:       score,
	}

	g.log.Info("script generated", "id", script.ID, "quality_score", fmt.Sprintf("%.2f", score))
	return script, nil
}

// buildSections renders the hook, the content sections in narrative order
// and, when requested, the conclusion.
func (g *Generator) buildSections(structure *techniques.ScriptStructure, req Request) []section {
	sections := []section{{key: "hook", text: g.hookSection(structure, req)}}

	for i, plan := range structure.Structure.Sections {
		key := fmt.Sprintf("section_%d_%s", i+1, strings.ReplaceAll(strings.ToLower(plan.Name), " ", "_"))
		sections = append(sections, section{key: key, text: g.contentSection(plan, req, i+1)})
	}

	if req.IncludeCTA {
		sections = append(sections, section{key: "conclusion", text: g.conclusion(req)})
	}
	return sections
}

// hookSection fills the hook template, applies the tone rewrite and prefixes
// a tone-specific opening connector.
func (g *Generator) hookSection(structure *techniques.ScriptStructure, req Request) string {
	context := buildHookContext(req)

	text := structure.Hook.Template
	for key, value := range context {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	text = applyTone(text, req.Tone)

	opener := g.pick(toneModifiers[req.Tone].connectors)
	return opener + ", " + text
}

// contentSection renders one narrative section: a transition word, one prose
// fragment per key element and, for the second through fourth sections, an
// engagement prompt.
func (g *Generator) contentSection(plan techniques.SectionPlan, req Request, sectionNum int) string {
	parts := []string{g.pick(toneModifiers[req.Tone].transitions) + ","}

	for _, element := range plan.KeyElements {
		parts = append(parts, g.elementContent(element, req))
	}

	if sectionNum >= 2 && sectionNum <= 4 {
		parts = append(parts, g.pick(engagementPrompts))
	}

	return strings.Join(parts, " ")
}

// assemble joins the sections with blank lines between blocks.
func assemble(sections []section) string {
	var parts []string
	for _, s := range sections {
		if s.key == "conclusion" {
			parts = append(parts, s.text)
			continue
		}
		parts = append(parts, s.text, "")
	}
	return strings.Join(parts, "\n")
}

// breakdown reports per-section word counts and estimated minutes.
func breakdown(sections []section) map[string]string {
	out := make(map[string]string, len(sections))
	for _, s := range sections {
		words := len(strings.Fields(s.text))
		out[s.key] = fmt.Sprintf("%d palavras (~%.1f min)", words, float64(words)/wordsPerMinute)
	}
	return out
}

// VariationFailure records one failed iteration of a batch generation.
type VariationFailure struct {
	Index int   `json:"index"`
	Err   error `json:"error"`
}

// BatchResult separates the scripts that generated from the iterations that
// failed, so callers can decide what a partial batch means to them.
type BatchResult struct {
	Scripts  []*Script          `json:"scripts"`
	Failures []VariationFailure `json:"failures,omitempty"`
}

// GenerateVariations renders count scripts from one request; variation comes
// only from the random choices inside generation. A failed iteration is
// recorded and the batch continues.
func (g *Generator) GenerateVariations(req Request, count int) BatchResult {
	var result BatchResult
	for i := 0; i < count; i++ {
		script, err := g.Generate(req)
		if err != nil {
			g.log.Error("variation failed", "index", i, "error", err)
			result.Failures = append(result.Failures, VariationFailure{Index: i, Err: err})
			continue
		}
		result.Scripts = append(result.Scripts, script)
	}
	return result
}
