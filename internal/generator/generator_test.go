package generator

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vampirenirmal/roteiro/internal/techniques"
)

func baseRequest() Request {
	return Request{
		Topic:          "Como aprender Python de forma eficiente",
		Niche:          "tecnologia",
		HookType:       "curiosity_gap",
		StructureType:  "problem_solution",
		TargetDuration: 10,
		Tone:           ToneCasual,
		TargetAudience: AudienceGeneral,
		IncludeCTA:     true,
	}
}

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	return New(techniques.NewDatabase(), WithRand(rand.New(rand.NewSource(seed))))
}

func TestGenerateScript(t *testing.T) {
	g := newTestGenerator(t, 1)

	script, err := g.Generate(baseRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if script.ID == "" {
		t.Error("script has no ID")
	}
	if script.Metadata.Topic != "Como aprender Python de forma eficiente" {
		t.Errorf("metadata topic = %q", script.Metadata.Topic)
	}
	if script.QualityScore < 0 || script.QualityScore > 1 {
		t.Errorf("quality score %f out of [0,1]", script.QualityScore)
	}
	if script.EstimatedDuration <= 0 {
		t.Errorf("estimated duration = %f", script.EstimatedDuration)
	}

	wantTechniques := []string{
		"Hook: Curiosity Gap",
		"Structure: Problema-Solução",
		"Tone: casual",
		"Audience: geral",
	}
	if len(script.TechniquesUsed) != len(wantTechniques) {
		t.Fatalf("techniques used = %v", script.TechniquesUsed)
	}
	for i, want := range wantTechniques {
		if script.TechniquesUsed[i] != want {
			t.Errorf("technique[%d] = %q, want %q", i, script.TechniquesUsed[i], want)
		}
	}

	// hook + 5 sections + conclusion
	if len(script.StructureBreakdown) != 7 {
		t.Errorf("breakdown entries = %d, want 7", len(script.StructureBreakdown))
	}
	for _, key := range []string{"hook", "section_1_problem_identification", "section_5_call_to_action", "conclusion"} {
		entry, ok := script.StructureBreakdown[key]
		if !ok {
			t.Errorf("breakdown missing key %q", key)
			continue
		}
		if !strings.Contains(entry, "palavras") {
			t.Errorf("breakdown[%q] = %q", key, entry)
		}
	}
}

func TestGenerateAssembly(t *testing.T) {
	g := newTestGenerator(t, 2)

	script, err := g.Generate(baseRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	blocks := strings.Split(script.Text, "\n\n")
	if len(blocks) != 7 {
		t.Fatalf("blocks = %d, want 7 (hook, 5 sections, conclusion)", len(blocks))
	}

	conclusion := blocks[len(blocks)-1]
	if !strings.Contains(conclusion, "Valeu pessoal, e até o próximo vídeo!") {
		t.Error("conclusion missing sign-off")
	}
	foundCTA := false
	for _, cta := range ctaSentences {
		if strings.Contains(conclusion, cta) {
			foundCTA = true
			break
		}
	}
	if !foundCTA {
		t.Error("conclusion contains no CTA sentence")
	}
}

func TestGenerateWithoutCTA(t *testing.T) {
	g := newTestGenerator(t, 3)

	req := baseRequest()
	req.IncludeCTA = false
	script, err := g.Generate(req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if strings.Contains(script.Text, "Valeu pessoal") {
		t.Error("sign-off present without CTA")
	}
	if _, ok := script.StructureBreakdown["conclusion"]; ok {
		t.Error("breakdown has conclusion entry without CTA")
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	first, err := newTestGenerator(t, 42).Generate(baseRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := newTestGenerator(t, 42).Generate(baseRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first.Text != second.Text {
		t.Error("same seed produced different scripts")
	}
	if first.QualityScore != second.QualityScore {
		t.Error("same seed produced different quality scores")
	}
}

func TestGenerateUnknownStructure(t *testing.T) {
	g := newTestGenerator(t, 4)

	req := baseRequest()
	req.HookType = "no_such_hook"
	if _, err := g.Generate(req); !errors.Is(err, ErrStructureNotFound) {
		t.Errorf("err = %v, want ErrStructureNotFound", err)
	}
}

func TestGenerateInvalidRequest(t *testing.T) {
	g := newTestGenerator(t, 5)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing topic", func(r *Request) { r.Topic = "" }},
		{"zero duration", func(r *Request) { r.TargetDuration = 0 }},
		{"unknown tone", func(r *Request) { r.Tone = "sarcastic" }},
		{"unknown audience", func(r *Request) { r.TargetAudience = "experts" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			if _, err := g.Generate(req); err == nil {
				t.Error("want validation error")
			}
		})
	}
}

func TestGenerateDefaultsToneAndAudience(t *testing.T) {
	g := newTestGenerator(t, 6)

	req := baseRequest()
	req.Tone = ""
	req.TargetAudience = ""
	script, err := g.Generate(req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if script.Metadata.Tone != ToneCasual {
		t.Errorf("tone = %q, want casual", script.Metadata.Tone)
	}
	if script.Metadata.TargetAudience != AudienceGeneral {
		t.Errorf("audience = %q, want geral", script.Metadata.TargetAudience)
	}
}

func TestApplyTone(t *testing.T) {
	tests := []struct {
		name string
		text string
		tone Tone
		want string
	}{
		{
			name: "enthusiastic exclaims and shouts muito",
			text: "Isso é muito bom. Sério.",
			tone: ToneEnthusiastic,
			want: "Isso é MUITO bom! Sério!",
		},
		{
			name: "professional calms and prefixes",
			text: "Isso muda tudo!",
			tone: ToneProfessional,
			want: "É importante notar que isso muda tudo.",
		},
		{
			name: "professional keeps formal opener",
			text: "Devemos considerar o contexto.",
			tone: ToneProfessional,
			want: "Devemos considerar o contexto.",
		},
		{
			name: "casual untouched",
			text: "Olha só isso!",
			tone: ToneCasual,
			want: "Olha só isso!",
		},
		{
			name: "educational untouched",
			text: "Vamos ver o primeiro ponto.",
			tone: ToneEducational,
			want: "Vamos ver o primeiro ponto.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyTone(tt.text, tt.tone); got != tt.want {
				t.Errorf("applyTone = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildHookContext(t *testing.T) {
	t.Run("python topic defaults", func(t *testing.T) {
		req := baseRequest()
		ctx := buildHookContext(req)
		if ctx["topic"] != "programação" {
			t.Errorf("topic = %q", ctx["topic"])
		}
		if ctx["subject"] != "aprender código" {
			t.Errorf("subject = %q", ctx["subject"])
		}
		if !strings.Contains(ctx["something shocking"], "90%") {
			t.Errorf("something shocking = %q", ctx["something shocking"])
		}
	})

	t.Run("canned defaults override custom entries", func(t *testing.T) {
		req := baseRequest()
		req.CustomContext = map[string]string{"topic": "custom", "extra": "kept"}
		ctx := buildHookContext(req)
		if ctx["topic"] != "programação" {
			t.Errorf("topic = %q, want canned value", ctx["topic"])
		}
		if ctx["extra"] != "kept" {
			t.Errorf("extra = %q, want kept", ctx["extra"])
		}
	})

	t.Run("description flags and interpolation", func(t *testing.T) {
		req := baseRequest()
		req.Description = "Tive muita dificuldade no início, mas achei um método que resolve tudo de vez"
		ctx := buildHookContext(req)
		if ctx["user_description"] != req.Description {
			t.Error("user_description not preserved verbatim")
		}
		if ctx["has_problem_focus"] != "true" {
			t.Error("missing has_problem_focus")
		}
		if ctx["has_solution_focus"] != "true" {
			t.Error("missing has_solution_focus")
		}
		if _, ok := ctx["has_personal_element"]; ok {
			t.Error("unexpected has_personal_element")
		}
		// Interpolated copy is truncated and lower-cased.
		if !strings.Contains(ctx["something shocking"], "tive muita dificuldade") {
			t.Errorf("something shocking = %q", ctx["something shocking"])
		}
		if strings.Contains(ctx["something shocking"], "de vez") {
			t.Error("description not truncated in canned statement")
		}
	})

	t.Run("generic topic fallback", func(t *testing.T) {
		req := baseRequest()
		req.Topic = "Fotografia de paisagem"
		ctx := buildHookContext(req)
		if ctx["topic"] != "fotografia de paisagem" {
			t.Errorf("topic = %q", ctx["topic"])
		}
		if ctx["contradicts expectation"] != "usam métodos desatualizados" {
			t.Errorf("contradicts expectation = %q", ctx["contradicts expectation"])
		}
	})
}

func TestClipDescription(t *testing.T) {
	long := strings.Repeat("Á", 60)
	clipped := clipDescription(long)
	if got := len([]rune(clipped)); got != 50 {
		t.Errorf("clipped length = %d runes, want 50", got)
	}
	if clipped != strings.Repeat("á", 50) {
		t.Error("clip did not lower-case")
	}
}

func TestGenerateVariations(t *testing.T) {
	g := newTestGenerator(t, 7)

	t.Run("all succeed", func(t *testing.T) {
		result := g.GenerateVariations(baseRequest(), 3)
		if len(result.Scripts) != 3 {
			t.Errorf("scripts = %d, want 3", len(result.Scripts))
		}
		if len(result.Failures) != 0 {
			t.Errorf("failures = %d, want 0", len(result.Failures))
		}
	})

	t.Run("failures recorded per iteration", func(t *testing.T) {
		req := baseRequest()
		req.StructureType = "no_such_structure"
		result := g.GenerateVariations(req, 2)
		if len(result.Scripts) != 0 {
			t.Errorf("scripts = %d, want 0", len(result.Scripts))
		}
		if len(result.Failures) != 2 {
			t.Fatalf("failures = %d, want 2", len(result.Failures))
		}
		for i, failure := range result.Failures {
			if failure.Index != i {
				t.Errorf("failure index = %d, want %d", failure.Index, i)
			}
			if !errors.Is(failure.Err, ErrStructureNotFound) {
				t.Errorf("failure err = %v", failure.Err)
			}
		}
	})
}

func TestQualityScoreBounds(t *testing.T) {
	g := newTestGenerator(t, 8)

	for _, tone := range []Tone{ToneCasual, ToneProfessional, ToneEnthusiastic, ToneEducational} {
		req := baseRequest()
		req.Tone = tone
		script, err := g.Generate(req)
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", tone, err)
		}
		if script.QualityScore < 0 || script.QualityScore > 1 {
			t.Errorf("tone %s: quality score %f out of [0,1]", tone, script.QualityScore)
		}
	}
}
