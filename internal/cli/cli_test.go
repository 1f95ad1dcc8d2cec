package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Point config resolution at a path that does not exist so every test
	// runs against the built-in defaults.
	t.Setenv("ROTEIRO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogStats(t *testing.T) {
	out, err := execute(t, "catalog", "stats", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var stats struct {
		TotalHooks      int `json:"total_hooks"`
		TotalStructures int `json:"total_structures"`
		TotalPatterns   int `json:"total_patterns"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if stats.TotalHooks != 5 || stats.TotalStructures != 3 || stats.TotalPatterns != 7 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCatalogValidate(t *testing.T) {
	out, err := execute(t, "catalog", "validate",
		"--hook", "curiosity_gap", "--structure", "problem_solution", "--niche", "tecnologia", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var report struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !report.Valid {
		t.Errorf("valid = false\n%s", out)
	}
}

func TestCatalogStructureMarkdown(t *testing.T) {
	out, err := execute(t, "catalog", "structure",
		"--niche", "tecnologia", "--hook", "curiosity_gap", "--structure", "problem_solution",
		"--duration", "8", "--topic", "Como aprender Python", "--json=false")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Estrutura de Script",
		"**Tópico**: Como aprender Python",
		"## Hook (Curiosity Gap)",
		"## Estrutura Narrativa",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "generate", "--topic", "Como aprender Python", "--json", "--variations", "1")
	if err != nil {
		t.Fatal(err)
	}

	var script struct {
		Text         string  `json:"script_text"`
		QualityScore float64 `json:"quality_score"`
	}
	if err := json.Unmarshal([]byte(out), &script); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if script.Text == "" {
		t.Error("empty script text")
	}
	if script.QualityScore < 0 || script.QualityScore > 1 {
		t.Errorf("quality score = %f", script.QualityScore)
	}
}

func TestGenerateUnknownHook(t *testing.T) {
	_, err := execute(t, "generate", "--topic", "x", "--hook", "nope", "--json")
	if err == nil {
		t.Fatal("expected error for unknown hook")
	}
	if !strings.Contains(err.Error(), "structure") {
		t.Errorf("err = %v", err)
	}
}
