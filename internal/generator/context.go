package generator

import (
	"fmt"
	"strings"
)

// descriptionClip bounds how much of the free-text description is
// interpolated into canned hook statements.
const descriptionClip = 50

// clipDescription lower-cases and truncates a description for interpolation.
func clipDescription(description string) string {
	runes := []rune(description)
	if len(runes) > descriptionClip {
		runes = runes[:descriptionClip]
	}
	return strings.ToLower(string(runes))
}

// topicRule maps a topic keyword family to the canned default context for
// hooks. Rules are evaluated top-down; the first match wins. The fallback
// rule always matches.
type topicRule struct {
	match func(topic string) bool
	apply func(context map[string]string, req Request)
}

var topicRules = []topicRule{
	{
		match: func(topic string) bool {
			return strings.Contains(topic, "python") || strings.Contains(topic, "programação")
		},
		apply: func(context map[string]string, req Request) {
			if req.Description != "" {
				context["something shocking"] = fmt.Sprintf(
					"90%% das pessoas que %s... fazem isso completamente errado", clipDescription(req.Description))
			} else {
				context["something shocking"] = "90% das pessoas aprendem programação de forma totalmente errada"
			}
			context["contradicts expectation"] = "pensam que precisam decorar sintaxe"
			context["topic"] = "programação"
			context["subject"] = "aprender código"
		},
	},
	{
		match: func(topic string) bool {
			return strings.Contains(topic, "negócio") || strings.Contains(topic, "empreend")
		},
		apply: func(context map[string]string, req Request) {
			if req.Description != "" {
				context["something shocking"] = fmt.Sprintf(
					"95%% das pessoas que tentam %s... falham nos primeiros 6 meses", clipDescription(req.Description))
			} else {
				context["something shocking"] = "95% dos negócios online falham nos primeiros 6 meses"
			}
			context["contradicts expectation"] = "focam no produto errado"
			context["topic"] = "empreendedorismo"
			context["subject"] = "construir um negócio"
		},
	},
	{
		match: func(topic string) bool {
			return strings.Contains(topic, "youtube")
		},
		apply: func(context map[string]string, req Request) {
			if req.Description != "" {
				context["something shocking"] = fmt.Sprintf(
					"apenas 2%% dos youtubers que %s... conseguem viver do canal", clipDescription(req.Description))
			} else {
				context["something shocking"] = "apenas 2% dos youtubers conseguem viver do canal"
			}
			context["contradicts expectation"] = "fazem tudo pensando no algoritmo"
			context["topic"] = "YouTube"
			context["subject"] = "crescer no YouTube"
		},
	},
	{
		match: func(string) bool { return true },
		apply: func(context map[string]string, req Request) {
			topic := strings.ToLower(req.Topic)
			if req.Description != "" {
				context["something shocking"] = fmt.Sprintf(
					"a maioria das pessoas que %s... faz isso de forma completamente errada", clipDescription(req.Description))
			} else {
				context["something shocking"] = fmt.Sprintf("a maioria das pessoas não sabe como %s", topic)
			}
			context["contradicts expectation"] = "usam métodos desatualizados"
			context["topic"] = topic
			context["subject"] = topic
		},
	},
}

// descriptionFlags are keyword families sniffed from the description to flag
// its focus for templates that care.
var descriptionFlags = []struct {
	key      string
	keywords []string
}{
	{"has_problem_focus", []string{"problema", "dificuldade", "desafio"}},
	{"has_solution_focus", []string{"solução", "resolver", "método"}},
	{"has_personal_element", []string{"experiência", "história", "aconteceu"}},
}

// buildHookContext assembles the substitution map for the hook template.
// Custom context goes in first, then description-derived flags, then the
// topic-keyword defaults; later writers win on key collisions, so the canned
// defaults deliberately override custom entries for their four keys.
func buildHookContext(req Request) map[string]string {
	context := make(map[string]string, len(req.CustomContext)+8)
	for k, v := range req.CustomContext {
		context[k] = v
	}

	if req.Description != "" {
		lowered := strings.ToLower(req.Description)
		context["user_description"] = req.Description
		for _, flag := range descriptionFlags {
			for _, keyword := range flag.keywords {
				if strings.Contains(lowered, keyword) {
					context[flag.key] = "true"
					break
				}
			}
		}
	}

	topic := strings.ToLower(req.Topic)
	for _, rule := range topicRules {
		if rule.match(topic) {
			rule.apply(context, req)
			break
		}
	}

	return context
}
