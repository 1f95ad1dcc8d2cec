// Package analyzer detects storytelling techniques in arbitrary script text
// via pattern matching and scores the result. It is independent of the
// generator; any UTF-8 text can be analyzed.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vampirenirmal/roteiro/internal/storage"
)

// wordsPerMinute is the speaking pace used for duration estimates.
const wordsPerMinute = 150

// hookWindow bounds hook detection to the opening of the script.
const hookWindow = 200

// maxChunks is how many segments the structure analysis divides a script
// into. Scripts shorter than maxChunks words get one chunk per word.
const maxChunks = 4

// Techniques lists the detected technique type names per category.
type Techniques struct {
	Hooks         []string `json:"hooks"`
	Engagement    []string `json:"engagement"`
	StoryElements []string `json:"story_elements"`
}

// distinctCount is the number of distinct technique names across the three
// categories; the diversity metric divides by the full table size.
func (t Techniques) distinctCount() int {
	seen := make(map[string]struct{})
	for _, group := range [][]string{t.Hooks, t.Engagement, t.StoryElements} {
		for _, name := range group {
			seen[name] = struct{}{}
		}
	}
	return len(seen)
}

// StructureAnalysis summarizes the script's shape.
type StructureAnalysis struct {
	TotalWords               int     `json:"total_words"`
	EstimatedDurationMinutes float64 `json:"estimated_duration_minutes"`
	Sections                 int     `json:"sections"`
	HookStrength             float64 `json:"hook_strength"`
	ConclusionStrength       float64 `json:"conclusion_strength"`
	NarrativeFlow            float64 `json:"narrative_flow"`
}

// QualityMetrics are the per-dimension scores, each in [0, 1].
type QualityMetrics struct {
	Readability         float64 `json:"readability"`
	TechniqueDiversity  float64 `json:"technique_diversity"`
	HookQuality         float64 `json:"hook_quality"`
	EngagementFrequency float64 `json:"engagement_frequency"`
	StoryCompleteness   float64 `json:"story_completeness"`
}

// Result is one complete script analysis.
type Result struct {
	VideoID              string            `json:"video_id"`
	ScriptText           string            `json:"script_text"`
	IdentifiedTechniques Techniques        `json:"identified_techniques"`
	StructureAnalysis    StructureAnalysis `json:"structure_analysis"`
	EngagementScore      float64           `json:"engagement_score"`
	QualityMetrics       QualityMetrics    `json:"quality_metrics"`
	Recommendations      []string          `json:"recommendations"`
}

// Analyzer detects techniques in script text. Stateless and safe for
// concurrent use.
type Analyzer struct {
	log *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer's logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze performs a complete analysis of one script. The text is
// lower-cased once at entry; all matching is case-insensitive through that.
// An empty videoID gets a generated one.
func (a *Analyzer) Analyze(text, videoID string) *Result {
	if videoID == "" {
		videoID = uuid.NewString()
	}
	text = strings.ToLower(text)
	words := strings.Fields(text)

	techniques := Techniques{
		Hooks:         detect(hookPatterns, firstWords(words, hookWindow)),
		Engagement:    detect(engagementPatterns, text),
		StoryElements: detect(storyMarkers, text),
	}

	structure := analyzeStructure(words)
	metrics := qualityMetrics(words, text, techniques)

	return &Result{
		VideoID:              videoID,
		ScriptText:           text,
		IdentifiedTechniques: techniques,
		StructureAnalysis:    structure,
		EngagementScore:      engagementScore(len(words), techniques),
		QualityMetrics:       metrics,
		Recommendations:      recommendations(techniques, structure, metrics),
	}
}

func firstWords(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// chunk splits words into up to maxChunks segments of equal size, the last
// absorbing the remainder. Returns nil for empty input.
func chunk(words []string) []string {
	n := len(words)
	if n == 0 {
		return nil
	}
	count := maxChunks
	if n < count {
		count = n
	}
	size := n / count
	chunks := make([]string, 0, count)
	for i := 0; i < count; i++ {
		start := i * size
		end := start + size
		if i == count-1 {
			end = n
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

func analyzeStructure(words []string) StructureAnalysis {
	chunks := chunk(words)

	first, last := "", ""
	if len(chunks) > 0 {
		first = chunks[0]
		last = chunks[len(chunks)-1]
	}

	return StructureAnalysis{
		TotalWords:               len(words),
		EstimatedDurationMinutes: float64(len(words)) / wordsPerMinute,
		Sections:                 len(chunks),
		HookStrength:             hookStrength(first),
		ConclusionStrength:       conclusionStrength(last),
		NarrativeFlow:            narrativeFlow(chunks),
	}
}

// hookStrength scores the opening chunk: hook pattern hits, emotional words
// and explicit promises, capped per component and overall.
func hookStrength(section string) float64 {
	score := 0.0

	hookHits := 0
	for _, set := range hookPatterns {
		for _, pattern := range set.patterns {
			if pattern.MatchString(section) {
				hookHits++
			}
		}
	}
	score += math.Min(float64(hookHits)*0.3, 0.6)

	emotionHits := 0
	for _, word := range emotionalWords {
		if strings.Contains(section, word) {
			emotionHits++
		}
	}
	score += math.Min(float64(emotionHits)*0.1, 0.2)

	promiseHits := 0
	for _, pattern := range promisePatterns {
		if pattern.MatchString(section) {
			promiseHits++
		}
	}
	score += math.Min(float64(promiseHits)*0.1, 0.2)

	return math.Min(score, 1.0)
}

// conclusionStrength scores the closing chunk on calls to action and recap
// markers.
func conclusionStrength(section string) float64 {
	score := 0.0

	ctaHits := 0
	for _, pattern := range ctaPatterns {
		if pattern.MatchString(section) {
			ctaHits++
		}
	}
	score += math.Min(float64(ctaHits)*0.3, 0.6)

	summaryHits := 0
	for _, pattern := range summaryPatterns {
		if pattern.MatchString(section) {
			summaryHits++
		}
	}
	score += math.Min(float64(summaryHits)*0.2, 0.4)

	return math.Min(score, 1.0)
}

// narrativeFlow averages, over every chunk after the first, the transition
// words found in its opening 100 characters.
func narrativeFlow(chunks []string) float64 {
	if len(chunks) < 2 {
		return 0.5
	}

	total := 0.0
	for _, section := range chunks[1:] {
		opening := section
		if runes := []rune(opening); len(runes) > 100 {
			opening = string(runes[:100])
		}
		hits := 0
		for _, pattern := range transitionPatterns {
			if pattern.MatchString(opening) {
				hits++
			}
		}
		total += math.Min(float64(hits)*0.2, 0.3)
	}

	return math.Min(total/float64(len(chunks)-1), 1.0)
}

// engagementScore blends the per-category detection counts with a length
// appropriateness tier. Weights sum to 1.0.
func engagementScore(wordCount int, techniques Techniques) float64 {
	score := 0.0
	score += math.Min(float64(len(techniques.Hooks))*0.05, 0.25)
	score += math.Min(float64(len(techniques.Engagement))*0.08, 0.35)
	score += math.Min(float64(len(techniques.StoryElements))*0.06, 0.25)

	switch {
	case wordCount >= 300 && wordCount <= 2000:
		score += 0.15
	case (wordCount >= 200 && wordCount < 300) || (wordCount > 2000 && wordCount <= 3000):
		score += 0.10
	default:
		score += 0.05
	}

	return math.Min(score, 1.0)
}

func qualityMetrics(words []string, text string, techniques Techniques) QualityMetrics {
	sentences := strings.Split(text, ".")

	// Engagements per 200 words; short texts use a floor of one block so the
	// ratio stays meaningful.
	frequencyBase := math.Max(float64(len(words))/200, 1)

	return QualityMetrics{
		Readability:         readability(len(words), len(sentences)),
		TechniqueDiversity:  clamp01(float64(techniques.distinctCount()) / 12),
		HookQuality:         math.Min(float64(len(techniques.Hooks))/3, 1.0),
		EngagementFrequency: clamp01(float64(len(techniques.Engagement)) / frequencyBase),
		StoryCompleteness:   float64(len(techniques.StoryElements)) / 4,
	}
}

// readability scores average sentence length in tiers.
func readability(wordCount, sentenceCount int) float64 {
	if wordCount == 0 || sentenceCount == 0 {
		return 0.0
	}
	avg := float64(wordCount) / float64(sentenceCount)
	switch {
	case avg >= 10 && avg <= 20:
		return 1.0
	case (avg >= 8 && avg < 10) || (avg > 20 && avg <= 25):
		return 0.8
	case (avg >= 6 && avg < 8) || (avg > 25 && avg <= 30):
		return 0.6
	default:
		return 0.4
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Item is one script submitted for batch analysis.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ItemFailure records one batch item that could not be analyzed.
type ItemFailure struct {
	ID  string `json:"id"`
	Err error  `json:"error"`
}

// BatchResult separates analyzed scripts from the items that failed, so
// callers can decide what a partial batch means to them.
type BatchResult struct {
	Results  []*Result     `json:"results"`
	Failures []ItemFailure `json:"failures,omitempty"`
}

// AnalyzeBatch analyzes every item, recording failures without aborting the
// batch. The only rejection is text that is not valid UTF-8.
func (a *Analyzer) AnalyzeBatch(items []Item) BatchResult {
	var result BatchResult
	for _, item := range items {
		if !utf8.ValidString(item.Text) {
			err := fmt.Errorf("script %q: text is not valid UTF-8", item.ID)
			a.log.Error("analysis failed", "id", item.ID, "error", err)
			result.Failures = append(result.Failures, ItemFailure{ID: item.ID, Err: err})
			continue
		}
		result.Results = append(result.Results, a.Analyze(item.Text, item.ID))
		a.log.Info("script analyzed", "id", item.ID)
	}
	return result
}

// Export writes one analysis result as indented JSON through the store.
func (a *Analyzer) Export(ctx context.Context, store storage.Storage, path string, result *Result) error {
	if err := store.SaveJSON(ctx, path, result); err != nil {
		return fmt.Errorf("exporting analysis: %w", err)
	}
	a.log.Info("analysis exported", "path", path, "video_id", result.VideoID)
	return nil
}
