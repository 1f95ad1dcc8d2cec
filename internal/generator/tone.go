package generator

import "strings"

// Tone selects the register of the generated prose.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneEducational  Tone = "educational"
)

// toneModifier holds the word pools for one tone. Connectors open the hook,
// transitions open each content section, emphasis feeds the generic element
// branch.
type toneModifier struct {
	connectors  []string
	emphasis    []string
	transitions []string
}

var toneModifiers = map[Tone]toneModifier{
	ToneCasual: {
		connectors:  []string{"Olha", "Cara", "Mano", "Galera", "Pessoal"},
		emphasis:    []string{"super", "muito", "demais", "pra caramba"},
		transitions: []string{"Agora", "Aí", "Então", "Daí", "Tipo assim"},
	},
	ToneProfessional: {
		connectors:  []string{"Vamos analisar", "É importante notar", "Considerando"},
		emphasis:    []string{"significativamente", "consideravelmente", "extremamente"},
		transitions: []string{"Em seguida", "Posteriormente", "Ademais", "Além disso"},
	},
	ToneEnthusiastic: {
		connectors:  []string{"Gente!", "Isso é incrível!", "Olha que incrível!"},
		emphasis:    []string{"MUITO", "extremamente", "incrivelmente", "fantasticamente"},
		transitions: []string{"E agora", "E mais", "E tem mais", "Espera que tem mais"},
	},
	ToneEducational: {
		connectors:  []string{"Vamos entender", "É fundamental", "Primeiro ponto"},
		emphasis:    []string{"claramente", "precisamente", "especificamente"},
		transitions: []string{"Primeiro", "Segundo", "Em terceiro lugar", "Para concluir"},
	},
}

// formalOpeners are the prefixes that exempt a professional-tone sentence
// from the "É importante notar que" rewrite.
var formalOpeners = []string{"É importante", "Devemos", "Precisamos"}

// applyTone rewrites text for the enthusiastic and professional tones; the
// other tones leave the text unchanged. Applied to the hook only.
func applyTone(text string, tone Tone) string {
	switch tone {
	case ToneEnthusiastic:
		text = strings.ReplaceAll(text, ".", "!")
		text = strings.ReplaceAll(text, " muito ", " MUITO ")
	case ToneProfessional:
		text = strings.ReplaceAll(text, "!", ".")
		if !hasFormalOpener(text) {
			text = "É importante notar que " + strings.ToLower(text)
		}
	}
	return text
}

func hasFormalOpener(text string) bool {
	for _, opener := range formalOpeners {
		if strings.HasPrefix(text, opener) {
			return true
		}
	}
	return false
}
