package generator

import (
	"fmt"
	"strings"
)

// engagementPrompts are the mid-section prompts; one is appended to each of
// the second through fourth content sections.
var engagementPrompts = []string{
	"Deixe nos comentários: você já passou por isso? Quero saber sua experiência!",
	"Se você está gostando até aqui, dê aquele like para me ajudar!",
	"Pausa o vídeo agora e pensa: você realmente faz isso na prática?",
	"Lembra do que falei no início? Agora você está entendendo o porquê.",
	"Aguarda que vou te mostrar algo que vai te surpreender...",
}

// ctaSentences is the closing call-to-action pool; the conclusion samples two
// or three without replacement.
var ctaSentences = []string{
	"Se esse vídeo foi útil para você, deixa aquele like.",
	"Se inscreve no canal se ainda não é inscrito.",
	"Ativa o sininho para não perder os próximos vídeos.",
	"E comenta embaixo: qual vai ser seu primeiro passo?",
}

// elementRule pairs a key-element predicate with a prose builder. Rules are
// evaluated top-down; the last rule always matches.
type elementRule struct {
	match func(element string) bool
	build func(g *Generator, req Request, topic string) string
}

var elementRules = []elementRule{
	{
		match: func(element string) bool { return strings.Contains(element, "problema") },
		build: func(g *Generator, req Request, topic string) string {
			if strings.Contains(topic, "python") {
				if req.Description != "" {
					return fmt.Sprintf("O maior problema que vejo é que as pessoas tentam %s, mas fazem isso decorando sintaxe. Isso não funciona porque programação não é sobre decorar, é sobre resolver problemas. Você passa horas tentando lembrar como escrever um loop, quando deveria estar focando em entender a lógica por trás.", strings.ToLower(req.Description))
				}
				return "O maior problema que vejo é que as pessoas tentam aprender Python decorando sintaxe. Isso não funciona porque programação não é sobre decorar, é sobre resolver problemas. Você passa horas tentando lembrar como escrever um loop, quando deveria estar focando em entender a lógica por trás."
			}
			base := fmt.Sprintf("O principal problema com %s", topic)
			if req.Description != "" {
				return fmt.Sprintf("%s é que quando você %s, a maioria das pessoas aborda de forma completamente errada. Elas focam nos detalhes técnicos sem entender os fundamentos.", base, strings.ToLower(req.Description))
			}
			return fmt.Sprintf("%s é que a maioria das pessoas aborda de forma completamente errada. Elas focam nos detalhes técnicos sem entender os fundamentos.", base)
		},
	},
	{
		match: func(element string) bool { return strings.Contains(element, "solução") },
		build: func(g *Generator, req Request, topic string) string {
			if req.Description != "" {
				return fmt.Sprintf("A solução que descobri muda tudo. Em vez de %s da forma tradicional, especialmente quando você %s, você precisa começar com uma abordagem diferente. Vou te mostrar exatamente como fazer isso.", topic, strings.ToLower(req.Description))
			}
			return fmt.Sprintf("A solução que descobri muda tudo. Em vez de %s da forma tradicional, você precisa começar com uma abordagem diferente. Vou te mostrar exatamente como fazer isso.", topic)
		},
	},
	{
		match: func(element string) bool {
			return strings.Contains(element, "exemplo") || strings.Contains(element, "demonstração")
		},
		build: func(g *Generator, req Request, topic string) string {
			if req.Description != "" {
				return fmt.Sprintf("Deixe-me te mostrar um exemplo prático. Quando eu estava %s, cometi esse mesmo erro. Mas depois que descobri essa técnica, tudo ficou mais claro.", strings.ToLower(req.Description))
			}
			return fmt.Sprintf("Deixe-me te mostrar um exemplo prático. Quando eu estava aprendendo %s, cometi esse mesmo erro. Mas depois que descobri essa técnica, tudo ficou mais claro.", topic)
		},
	},
	{
		match: func(element string) bool { return strings.Contains(element, "resultado") },
		build: func(g *Generator, req Request, topic string) string {
			if req.Description != "" {
				return fmt.Sprintf("Os resultados foram impressionantes. Em apenas algumas semanas aplicando essa metodologia para %s, consegui %s de forma muito mais eficiente.", strings.ToLower(req.Description), topic)
			}
			return fmt.Sprintf("Os resultados foram impressionantes. Em apenas algumas semanas aplicando essa metodologia, consegui %s de forma muito mais eficiente.", topic)
		},
	},
	{
		match: func(string) bool { return true },
		build: func(g *Generator, req Request, topic string) string {
			emphasis := g.pick(toneModifiers[req.Tone].emphasis)
			if req.Description != "" {
				return fmt.Sprintf("Isso é %s importante para %s, especialmente quando você %s. A diferença está nos detalhes e na forma como você aborda cada etapa do processo.", emphasis, topic, strings.ToLower(req.Description))
			}
			return fmt.Sprintf("Isso é %s importante para %s. A diferença está nos detalhes e na forma como você aborda cada etapa do processo.", emphasis, topic)
		},
	},
}

// elementContent renders the prose for one key element by the first matching
// rule.
func (g *Generator) elementContent(element string, req Request) string {
	lowered := strings.ToLower(element)
	topic := strings.ToLower(req.Topic)
	for _, rule := range elementRules {
		if rule.match(lowered) {
			return rule.build(g, req, topic)
		}
	}
	return "" // unreachable, last rule always matches
}

// conclusion builds the closing block: recap, call to action now, a random
// sample of the CTA pool and the sign-off.
func (g *Generator) conclusion(req Request) string {
	parts := []string{
		fmt.Sprintf("Então, recapitulando: hoje você aprendeu sobre %s.", req.Topic),
		"O mais importante é que você comece a aplicar isso hoje mesmo.",
	}
	parts = append(parts, g.sample(ctaSentences, 2+g.intn(2))...)
	parts = append(parts, "Valeu pessoal, e até o próximo vídeo!")
	return strings.Join(parts, " ")
}
