package catalog

import "strings"

// EngagementType identifies a mid-video attention technique.
type EngagementType string

const (
	EngagementPatternInterrupt  EngagementType = "pattern_interrupt"
	EngagementCallback          EngagementType = "callback"
	EngagementSuspenseBuilder   EngagementType = "suspense_builder"
	EngagementInteractionPrompt EngagementType = "interaction_prompt"
	EngagementVisualTransition  EngagementType = "visual_transition"
	EngagementEnergyShift       EngagementType = "energy_shift"
	EngagementPreviewHook       EngagementType = "preview_hook"
	EngagementSocialProof       EngagementType = "social_proof"
)

// Technique is an engagement technique applied mid-video. Unlike hooks and
// structures, techniques carry no niche affinity; recommendations fall back
// to the global best list. That asymmetry is intentional and preserved from
// the catalogue's authors (whether techniques should ever be niche-tagged is
// an open question nobody resolved).
type Technique struct {
	Name                  string         `json:"name"`
	Type                  EngagementType `json:"type"`
	Description           string         `json:"description"`
	WhenToUse             string         `json:"when_to_use"`
	Template              string         `json:"template"`
	Examples              []string       `json:"examples"`
	EffectivenessScore    float64        `json:"effectiveness_score"`
	TimingRecommendations []string       `json:"timing_recommendations"`
}

// PlanSlot is one entry of an engagement plan: the techniques suggested for
// one minute mark. Slots are ordered by minute.
type PlanSlot struct {
	Minute     int      `json:"minute"`
	Techniques []string `json:"techniques"`
}

// Techniques is the engagement technique registry.
type Techniques struct {
	techniques map[string]Technique
	order      []string
}

func NewTechniques() *Techniques {
	t := &Techniques{techniques: make(map[string]Technique)}
	for _, tech := range techniqueData() {
		key := string(tech.Type)
		t.techniques[key] = tech
		t.order = append(t.order, key)
	}
	return t
}

// Get returns the technique for key; false for a soft miss.
func (t *Techniques) Get(key string) (Technique, bool) {
	tech, ok := t.techniques[key]
	return tech, ok
}

// ByTiming returns techniques whose timing recommendations contain timing as
// a case-insensitive substring.
func (t *Techniques) ByTiming(timing string) []Technique {
	needle := strings.ToLower(timing)
	var out []Technique
	for _, key := range t.order {
		tech := t.techniques[key]
		for _, rec := range tech.TimingRecommendations {
			if strings.Contains(strings.ToLower(rec), needle) {
				out = append(out, tech)
				break
			}
		}
	}
	return out
}

// Best returns techniques with effectiveness score >= minScore.
func (t *Techniques) Best(minScore float64) []Technique {
	var out []Technique
	for _, key := range t.order {
		if tech := t.techniques[key]; tech.EffectivenessScore >= minScore {
			out = append(out, tech)
		}
	}
	return out
}

// SuggestForTimestamp suggests techniques for a moment of the video.
// The first two minutes draw from the "início" bucket, everything up to 80%
// of the video length from the "meio" bucket (with a pattern interrupt forced
// in every third minute), and the tail from the "final" bucket.
func (t *Techniques) SuggestForTimestamp(timestampMinutes, videoLengthMinutes int) []Technique {
	switch {
	case timestampMinutes <= 2:
		return t.ByTiming("início")
	case float64(timestampMinutes) <= float64(videoLengthMinutes)*0.8:
		out := t.ByTiming("meio")
		if timestampMinutes%3 == 0 {
			if tech, ok := t.Get(string(EngagementPatternInterrupt)); ok {
				out = append(out, tech)
			}
		}
		return out
	default:
		return t.ByTiming("final")
	}
}

// Plan builds an engagement plan for a video, suggesting up to two
// techniques at the 25%, 50% and 75% marks.
func (t *Techniques) Plan(videoLengthMinutes int) []PlanSlot {
	marks := []int{
		int(float64(videoLengthMinutes) * 0.25),
		int(float64(videoLengthMinutes) * 0.50),
		int(float64(videoLengthMinutes) * 0.75),
	}
	plan := make([]PlanSlot, 0, len(marks))
	for _, minute := range marks {
		suggestions := t.SuggestForTimestamp(minute, videoLengthMinutes)
		if len(suggestions) > 2 {
			suggestions = suggestions[:2]
		}
		names := make([]string, 0, len(suggestions))
		for _, tech := range suggestions {
			names = append(names, tech.Name)
		}
		plan = append(plan, PlanSlot{Minute: minute, Techniques: names})
	}
	return plan
}

// Keys returns the registry keys in catalogue order.
func (t *Techniques) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Techniques) Len() int { return len(t.techniques) }

// All returns the backing map. Callers must not mutate it.
func (t *Techniques) All() map[string]Technique { return t.techniques }

func techniqueData() []Technique {
	return []Technique{
		{
			Name:        "Pattern Interrupt",
			Type:        EngagementPatternInterrupt,
			Description: "Quebrar o padrão esperado para reganhar atenção",
			WhenToUse:   "Quando a energia está baixando ou o conteúdo está ficando monótono",
			Template:    "Espera, {unexpected statement}. Deixe-me explicar melhor...",
			Examples: []string{
				"Espera, eu acabei de falar bobagem. Na verdade...",
				"Pare tudo! Esqueci de mencionar o mais importante...",
				"Ops, você percebeu esse erro que cometi?",
				"Aliás, você sabia que isso que acabei de falar pode estar errado?",
			},
			EffectivenessScore:    0.80,
			TimingRecommendations: []string{"3-4 minutos", "7-8 minutos", "Quando notar queda de energia"},
		},
		{
			Name:        "Callback Reference",
			Type:        EngagementCallback,
			Description: "Referenciar algo mencionado anteriormente no vídeo",
			WhenToUse:   "Para criar coesão e fazer a audiência se sentir 'por dentro'",
			Template:    "Lembra do {previous_point} que mencionei no início? Agora faz sentido porque...",
			Examples: []string{
				"Lembra da história que contei no início sobre meu fracasso? Agora você entende porque foi importante...",
				"Aquela estatística chocante do começo? Agora vou te mostrar como mudá-la...",
				"Voltando àquela pergunta que fiz no início...",
			},
			EffectivenessScore:    0.75,
			TimingRecommendations: []string{"Meio do vídeo", "Conclusão", "Após explicações complexas"},
		},
		{
			Name:        "Suspense Builder",
			Type:        EngagementSuspenseBuilder,
			Description: "Criar antecipação para o que vem a seguir",
			WhenToUse:   "Antes de revelar informações importantes",
			Template:    "Em {time}, vou revelar {important_information}. Mas primeiro...",
			Examples: []string{
				"Em 2 minutos, vou te mostrar o segredo que mudou tudo. Mas primeiro, você precisa entender...",
				"Daqui a pouco vou revelar o erro que 90% das pessoas cometem. Mas antes...",
				"Aguenta aí que a parte mais importante vem agora...",
				"O que vou te contar em seguida vai te chocar, mas antes preciso contextualizar...",
			},
			EffectivenessScore:    0.85,
			TimingRecommendations: []string{"Antes de pontos importantes", "Transições entre seções", "Meio do vídeo"},
		},
		{
			Name:        "Interaction Prompt",
			Type:        EngagementInteractionPrompt,
			Description: "Pedir interação direta da audiência",
			WhenToUse:   "Para aumentar engagement e manter atenção ativa",
			Template:    "Deixe nos comentários: {specific_question}. Quero saber sua experiência com...",
			Examples: []string{
				"Deixe nos comentários: qual foi seu maior erro ao começar? Quero ler todas as histórias...",
				"Escreva SIM nos comentários se você já passou por isso...",
				"Pausa o vídeo agora e responda honestamente: você realmente faz isso?",
				"Dê like se você concorda comigo até aqui...",
			},
			EffectivenessScore:    0.70,
			TimingRecommendations: []string{"Meio do vídeo", "Após pontos importantes", "Final do vídeo"},
		},
		{
			Name:        "Preview Hook",
			Type:        EngagementPreviewHook,
			Description: "Dar preview do que está por vir para manter interesse",
			WhenToUse:   "Durante transições e para manter expectativa",
			Template:    "Daqui a pouco você vai ver {preview_content}, mas primeiro...",
			Examples: []string{
				"Daqui a pouco você vai ver exatamente como fazer isso, mas primeiro precisa entender a teoria...",
				"Em breve vou mostrar os resultados na tela, mas antes...",
				"Aguarde que vou te mostrar um exemplo real disso funcionando...",
				"Mais à frente você vai entender porque isso é tão importante...",
			},
			EffectivenessScore:    0.75,
			TimingRecommendations: []string{"Início de novas seções", "Antes de exemplos práticos", "Transições"},
		},
		{
			Name:        "Energy Shift",
			Type:        EngagementEnergyShift,
			Description: "Mudar o nível de energia para reengajar a audiência",
			WhenToUse:   "Quando a energia está baixa ou o ritmo está lento",
			Template:    "Agora vou falar mais {energy_change} porque isso é {importance_level}...",
			Examples: []string{
				"Agora vou falar mais devagar porque isso é fundamental...",
				"Prestem atenção agora porque isso é crucial!",
				"Vou repetir isso porque é importante: ...",
				"Okay, agora vamos acelerar porque eu quero te mostrar...",
			},
			EffectivenessScore:    0.65,
			TimingRecommendations: []string{"Pontos cruciais", "Quando detectar perda de atenção", "Transições importantes"},
		},
		{
			Name:        "Social Proof",
			Type:        EngagementSocialProof,
			Description: "Usar evidência social para aumentar credibilidade",
			WhenToUse:   "Para validar pontos importantes e aumentar confiança",
			Template:    "Não sou só eu dizendo isso. {social_proof_example}...",
			Examples: []string{
				"Não sou só eu dizendo isso. Mais de 1000 pessoas já me mandaram mensagem confirmando...",
				"Olha só esses comentários de pessoas que aplicaram isso...",
				"Semana passada recebi 20 mensagens de pessoas que...",
				"Meus alunos sempre me perguntam sobre isso...",
			},
			EffectivenessScore:    0.80,
			TimingRecommendations: []string{"Após fazer afirmações importantes", "Meio do vídeo", "Antes do call-to-action"},
		},
	}
}
