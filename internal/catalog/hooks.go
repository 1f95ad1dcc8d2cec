package catalog

import "strings"

// HookType identifies an opening technique. The enum is wider than the
// populated catalogue: variants without backing data are a valid state,
// callers must treat a missing key as "not in catalogue" rather than an error.
type HookType string

const (
	HookCuriosityGap       HookType = "curiosity_gap"
	HookControversy        HookType = "controversy"
	HookPersonalStory      HookType = "personal_story"
	HookStatisticsShock    HookType = "statistics_shock"
	HookQuestionDirect     HookType = "question_direct"
	HookPromiseBenefit     HookType = "promise_benefit"
	HookPatternInterrupt   HookType = "pattern_interrupt"
	HookPreviewTeaser      HookType = "preview_teaser"
	HookEmotionalTrigger   HookType = "emotional_trigger"
	HookAuthorityStatement HookType = "authority_statement"
)

// Hook is an opening technique for the first seconds of a video.
// Records are built once at registry construction and never mutated.
type Hook struct {
	Name                   string   `json:"name"`
	Type                   HookType `json:"type"`
	Description            string   `json:"description"`
	Template               string   `json:"template"`
	Examples               []string `json:"examples"`
	EffectivenessScore     float64  `json:"effectiveness_score"`
	BestNiches             []string `json:"best_niches"`
	PsychologicalPrinciple string   `json:"psychological_principle"`
}

// Hooks is the hook registry. Read-only after construction, safe for
// concurrent readers without locking.
type Hooks struct {
	hooks map[string]Hook
	order []string
}

func NewHooks() *Hooks {
	h := &Hooks{hooks: make(map[string]Hook)}
	for _, hook := range hookData() {
		key := string(hook.Type)
		h.hooks[key] = hook
		h.order = append(h.order, key)
	}
	return h
}

// Get returns the hook for key. The second return is false when the key is
// not in the catalogue; that is a soft miss, not an error.
func (h *Hooks) Get(key string) (Hook, bool) {
	hook, ok := h.hooks[key]
	return hook, ok
}

// ByNiche returns every hook whose best-niche set contains niche.
func (h *Hooks) ByNiche(niche string) []Hook {
	var out []Hook
	for _, key := range h.order {
		hook := h.hooks[key]
		for _, n := range hook.BestNiches {
			if n == niche {
				out = append(out, hook)
				break
			}
		}
	}
	return out
}

// Best returns hooks with effectiveness score >= minScore.
func (h *Hooks) Best(minScore float64) []Hook {
	var out []Hook
	for _, key := range h.order {
		if hook := h.hooks[key]; hook.EffectivenessScore >= minScore {
			out = append(out, hook)
		}
	}
	return out
}

// Render fills the hook template with context. Every "{k}" occurrence is
// replaced for each key in context; placeholders without a context entry stay
// verbatim in the output. Returns "" when the key is not in the catalogue.
func (h *Hooks) Render(key string, context map[string]string) string {
	hook, ok := h.hooks[key]
	if !ok {
		return ""
	}
	return RenderTemplate(hook.Template, context)
}

// Keys returns the registry keys in catalogue order.
func (h *Hooks) Keys() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

func (h *Hooks) Len() int { return len(h.hooks) }

// All returns the backing map. Callers must not mutate it.
func (h *Hooks) All() map[string]Hook { return h.hooks }

// RenderTemplate substitutes "{name}" tokens from context into template.
// Unmatched placeholders are left untouched; this is defined behavior, the
// generator relies on it to surface missing context visibly.
func RenderTemplate(template string, context map[string]string) string {
	out := template
	for key, value := range context {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

func hookData() []Hook {
	return []Hook{
		{
			Name:        "Curiosity Gap",
			Type:        HookCuriosityGap,
			Description: "Create a gap between what the viewer knows and wants to know",
			Template:    "Eu descobri {something shocking} que {contradicts expectation}... mas antes de revelar, deixe-me contar como cheguei até aqui.",
			Examples: []string{
				"Eu descobri que 90% das pessoas estão fazendo isso errado... mas antes de revelar o que é, deixe-me contar como descobri isso.",
				"Existe um segredo que apenas 1% das pessoas conhecem sobre {topic}... e hoje vou compartilhar com você.",
				"O que vou te mostrar nos próximos minutos pode mudar completamente sua forma de pensar sobre {subject}.",
			},
			EffectivenessScore:     0.85,
			BestNiches:             []string{"educacao", "tecnologia", "negocios"},
			PsychologicalPrinciple: "Information Gap Theory - O cérebro humano tem necessidade compulsiva de preencher lacunas de informação",
		},
		{
			Name:        "Controversy Hook",
			Type:        HookControversy,
			Description: "Present a controversial statement or opinion",
			Template:    "{Controversial statement about popular belief}. Eu sei que isso vai contra tudo que você acredita, mas...",
			Examples: []string{
				"A faculdade é uma perda de tempo e dinheiro. Eu sei que isso vai contra tudo que seus pais te ensinaram, mas...",
				"Trabalhar duro NÃO te fará rico. Na verdade, pode até te deixar mais pobre...",
				"95% dos cursos online são golpe. E vou provar isso para você nos próximos minutos.",
			},
			EffectivenessScore:     0.75,
			BestNiches:             []string{"negocios", "educacao", "lifestyle"},
			PsychologicalPrinciple: "Cognitive Dissonance - Desconforto mental quando apresentado com informações que contradizem crenças existentes",
		},
		{
			Name:        "Personal Story Hook",
			Type:        HookPersonalStory,
			Description: "Start with a personal, relatable story",
			Template:    "Há {time period} atrás, eu estava {negative situation}. Hoje, {positive outcome}. Deixe-me contar como isso mudou.",
			Examples: []string{
				"Há 2 anos atrás, eu estava dormindo no sofá da casa da minha mãe. Hoje, tenho uma empresa de 7 dígitos. Deixe-me contar como tudo mudou.",
				"Eu já perdi mais de R$ 50.000 tentando aprender marketing digital. Mas esse erro me ensinou a estratégia que uso hoje para...",
				"Na escola, eu era o nerd que ninguém levava a sério. Hoje, ensino empreendedorismo para mais de 100.000 pessoas.",
			},
			EffectivenessScore:     0.80,
			BestNiches:             []string{"lifestyle", "negocios", "desenvolvimento_pessoal"},
			PsychologicalPrinciple: "Narrative Transportation - Pessoas se conectam emocionalmente através de histórias pessoais",
		},
		{
			Name:        "Statistics Shock",
			Type:        HookStatisticsShock,
			Description: "Present shocking or surprising statistics",
			Template:    "{Shocking percentage} das pessoas {negative behavior/outcome}. Se você não quer fazer parte dessa estatística...",
			Examples: []string{
				"97% das pessoas que começam um negócio online falham no primeiro ano. Se você não quer fazer parte dessa estatística...",
				"A pessoa média gasta 7 anos da sua vida no trabalho e morre com apenas R$ 1.000 na conta. Mas existe uma forma diferente...",
				"Apenas 2% das pessoas conseguem se aposentar confortavelmente. O resto depende da família ou do governo.",
			},
			EffectivenessScore:     0.70,
			BestNiches:             []string{"negocios", "financas", "saude"},
			PsychologicalPrinciple: "Loss Aversion - Medo de perder ou ficar para trás motiva mais que o desejo de ganhar",
		},
		{
			Name:        "Direct Question",
			Type:        HookQuestionDirect,
			Description: "Ask a direct, engaging question to the viewer",
			Template:    "Você já se perguntou {relatable question}? A resposta pode te surpreender...",
			Examples: []string{
				"Você já se perguntou por que algumas pessoas conseguem tudo que querem enquanto outras lutam a vida inteira?",
				"Qual é a diferença entre pessoas que ganham R$ 5.000 e pessoas que ganham R$ 50.000 por mês?",
				"Se você pudesse mudar uma coisa na sua vida hoje, o que seria? E se eu te dissesse que é possível?",
			},
			EffectivenessScore:     0.65,
			BestNiches:             []string{"desenvolvimento_pessoal", "educacao", "lifestyle"},
			PsychologicalPrinciple: "Self-Reference Effect - Pessoas prestam mais atenção quando se sentem diretamente incluídas",
		},
	}
}
