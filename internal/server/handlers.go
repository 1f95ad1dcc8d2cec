package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vampirenirmal/roteiro/internal/analyzer"
	"github.com/vampirenirmal/roteiro/internal/generator"
)

// handleOptions lists everything the UI needs to populate its dropdowns.
func (s *Server) handleOptions(c *gin.Context) {
	stats := s.db.Statistics()
	respondOK(c, gin.H{
		"hooks":      s.db.Hooks().Keys(),
		"structures": s.db.Structures().Keys(),
		"patterns":   s.db.Patterns().Keys(),
		"niches":     stats.SupportedNiches,
		"tones":      []string{"casual", "professional", "enthusiastic", "educational"},
		"audiences":  []string{"iniciantes", "intermediarios", "avancados", "geral"},
	})
}

func (s *Server) handleStructure(c *gin.Context) {
	duration, err := strconv.Atoi(c.DefaultQuery("duration", strconv.Itoa(s.cfg.Defaults.Duration)))
	if err != nil || duration < 1 {
		respondError(c, http.StatusBadRequest, "invalid_duration", "duration must be a positive integer")
		return
	}

	structure := s.db.CompleteStructure(
		c.DefaultQuery("niche", s.cfg.Defaults.Niche),
		c.DefaultQuery("hook", s.cfg.Defaults.HookType),
		c.DefaultQuery("structure", s.cfg.Defaults.StructureType),
		duration,
		c.Query("topic"),
	)
	if structure == nil {
		respondError(c, http.StatusNotFound, "unknown_technique", "hook or structure not in catalogue")
		return
	}
	respondOK(c, structure)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "missing_query", "q parameter is required")
		return
	}
	category := c.Query("category")
	switch category {
	case "", "hooks", "structures", "patterns":
	default:
		respondError(c, http.StatusBadRequest, "invalid_category", "category must be hooks, structures or patterns")
		return
	}
	respondOK(c, s.db.Search(query, category))
}

func (s *Server) handleRecommendations(c *gin.Context) {
	respondOK(c, s.db.RecommendationsForNiche(c.Param("niche")))
}

func (s *Server) handleValidate(c *gin.Context) {
	report := s.db.ValidateCombination(c.Query("hook"), c.Query("structure"), c.Query("niche"))
	respondOK(c, report)
}

func (s *Server) handleStats(c *gin.Context) {
	respondOK(c, s.db.Statistics())
}

func (s *Server) handleExport(c *gin.Context) {
	data, err := s.db.Export()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	script, err := s.gen.Generate(req)
	if err != nil {
		if errors.Is(err, generator.ErrStructureNotFound) {
			respondError(c, http.StatusNotFound, "unknown_technique", err.Error())
			return
		}
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	respondOK(c, script)
}

func (s *Server) handleGenerateVariations(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "3"))
	if err != nil || count < 1 || count > 10 {
		respondError(c, http.StatusBadRequest, "invalid_count", "count must be between 1 and 10")
		return
	}

	var req generator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	result := s.gen.GenerateVariations(req, count)
	respondOK(c, gin.H{
		"scripts":  result.Scripts,
		"failures": failureMessages(result),
	})
}

// failureMessages flattens batch failures to strings; error values do not
// marshal usefully.
func failureMessages(result generator.BatchResult) []gin.H {
	out := make([]gin.H, 0, len(result.Failures))
	for _, f := range result.Failures {
		out = append(out, gin.H{"index": f.Index, "message": f.Err.Error()})
	}
	return out
}

type analyzeRequest struct {
	Text    string `json:"text" binding:"required"`
	VideoID string `json:"video_id"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	respondOK(c, s.analyzer.Analyze(req.Text, req.VideoID))
}

type analyzeBatchRequest struct {
	Scripts []analyzer.Item `json:"scripts" binding:"required,min=1"`
}

func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var req analyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	result := s.analyzer.AnalyzeBatch(req.Scripts)
	failures := make([]gin.H, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, gin.H{"id": f.ID, "message": f.Err.Error()})
	}
	respondOK(c, gin.H{
		"results":  result.Results,
		"failures": failures,
	})
}
