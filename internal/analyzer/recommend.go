package analyzer

// recommendations builds the ordered advisory list. Each threshold is
// evaluated independently; any subset, including none, may fire.
func recommendations(techniques Techniques, structure StructureAnalysis, quality QualityMetrics) []string {
	recs := []string{}

	switch len(techniques.Hooks) {
	case 0:
		recs = append(recs, "Adicione um hook forte no início do vídeo para capturar atenção")
	case 1:
		recs = append(recs, "Considere combinar múltiplas técnicas de hook para maior impacto")
	}

	if len(techniques.Engagement) < 2 {
		recs = append(recs, "Adicione mais elementos de engajamento ao longo do vídeo")
	}

	if structure.HookStrength < 0.5 {
		recs = append(recs, "Fortaleça o hook com mais curiosidade, controvérsia ou história pessoal")
	}
	if structure.ConclusionStrength < 0.5 {
		recs = append(recs, "Melhore a conclusão com call-to-actions claros e resumo dos pontos principais")
	}
	if structure.NarrativeFlow < 0.5 {
		recs = append(recs, "Use mais palavras de transição para melhorar o fluxo narrativo")
	}

	if quality.Readability < 0.6 {
		recs = append(recs, "Ajuste o tamanho das frases para melhorar a legibilidade")
	}
	if quality.TechniqueDiversity < 0.4 {
		recs = append(recs, "Diversifique as técnicas de storytelling usadas")
	}

	if structure.EstimatedDurationMinutes < 3 {
		recs = append(recs, "Considere expandir o conteúdo - vídeos muito curtos podem ter menor alcance")
	} else if structure.EstimatedDurationMinutes > 15 {
		recs = append(recs, "Considere dividir em vídeos menores ou remover conteúdo menos essencial")
	}

	return recs
}
