package generator

import (
	"math"
	"strings"

	"github.com/vampirenirmal/roteiro/internal/techniques"
)

// engagementKeywords are the markers counted by the engagement component of
// the quality score.
var engagementKeywords = []string{"comentários", "like", "inscreva", "compartilhe"}

// qualityScore rates a generated script with four equally weighted
// heuristics: word-count fit against the target length, paragraph count
// against the expected section count, engagement keyword presence and
// words-per-sentence readability. The result is clamped to [0, 1].
func qualityScore(text string, structure *techniques.ScriptStructure) float64 {
	score := 0.0
	words := len(strings.Fields(text))

	// Word count fit, linear falloff from the target.
	targetWords := float64(structure.Metadata.EstimatedLength * wordsPerMinute)
	wordScore := 1.0 - math.Abs(float64(words)-targetWords)/targetWords
	score += math.Max(wordScore, 0) * 0.25

	// Structure completeness: paragraphs against hook + sections + conclusion.
	requiredSections := len(structure.Structure.Sections) + 2
	paragraphs := strings.Count(text, "\n\n") + 1
	score += math.Min(float64(paragraphs)/float64(requiredSections), 1.0) * 0.25

	// Engagement keyword presence.
	lowered := strings.ToLower(text)
	found := 0
	for _, keyword := range engagementKeywords {
		if strings.Contains(lowered, keyword) {
			found++
		}
	}
	score += math.Min(float64(found)/4, 1.0) * 0.25

	// Readability by average sentence length.
	sentences := strings.Split(text, ".")
	avgWords := float64(words) / float64(len(sentences))
	readability := 1.0
	if avgWords < 10 || avgWords > 20 {
		readability = math.Max(0, 1.0-math.Abs(avgWords-15)/15)
	}
	score += readability * 0.25

	return clamp01(score)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
