package catalog

import "fmt"

// StructureType identifies a narrative structure. Like HookType, the enum
// declares more variants than the catalogue populates.
type StructureType string

const (
	StructureHeroJourney     StructureType = "hero_journey"
	StructureProblemSolution StructureType = "problem_solution"
	StructureBeforeAfter     StructureType = "before_after"
	StructureListFormat      StructureType = "list_format"
	StructureTutorialStep    StructureType = "tutorial_step"
	StructureStoryLesson     StructureType = "story_lesson"
	StructureCompareContrast StructureType = "compare_contrast"
	StructureChronological   StructureType = "chronological"
)

// Section is one segment of a narrative structure. Sections are owned by
// their parent structure; their order is the narrative order.
type Section struct {
	Name               string   `json:"name"`
	Purpose            string   `json:"purpose"`
	DurationPercentage float64  `json:"duration_percentage"`
	KeyElements        []string `json:"key_elements"`
	Examples           []string `json:"examples"`
}

// Structure is a complete narrative structure. Across all sections of one
// structure the duration percentages sum to 1.0.
type Structure struct {
	Name                   string        `json:"name"`
	Type                   StructureType `json:"type"`
	Description            string        `json:"description"`
	Sections               []Section     `json:"sections"`
	BestFor                []string      `json:"best_for"`
	EngagementScore        float64       `json:"engagement_score"`
	TypicalDuration        string        `json:"typical_duration"`
	PsychologicalPrinciple string        `json:"psychological_principle"`
}

// Structures is the narrative structure registry.
type Structures struct {
	structures map[string]Structure
	order      []string
}

func NewStructures() *Structures {
	s := &Structures{structures: make(map[string]Structure)}
	for _, st := range structureData() {
		key := string(st.Type)
		s.structures[key] = st
		s.order = append(s.order, key)
	}
	return s
}

// Get returns the structure for key; false for a soft miss.
func (s *Structures) Get(key string) (Structure, bool) {
	st, ok := s.structures[key]
	return st, ok
}

// ByNiche returns structures whose best-for set contains niche.
func (s *Structures) ByNiche(niche string) []Structure {
	var out []Structure
	for _, key := range s.order {
		st := s.structures[key]
		for _, n := range st.BestFor {
			if n == niche {
				out = append(out, st)
				break
			}
		}
	}
	return out
}

// Best returns structures with engagement score >= minScore.
func (s *Structures) Best(minScore float64) []Structure {
	var out []Structure
	for _, key := range s.order {
		if st := s.structures[key]; st.EngagementScore >= minScore {
			out = append(out, st)
		}
	}
	return out
}

// Outline renders a plain section-by-section outline for the structure, one
// line per section plus an indented line per key element. Empty for an
// unknown key.
func (s *Structures) Outline(key string) []string {
	st, ok := s.structures[key]
	if !ok {
		return nil
	}
	var out []string
	for _, sec := range st.Sections {
		out = append(out, fmt.Sprintf("%s: %s", sec.Name, sec.Purpose))
		for _, el := range sec.KeyElements {
			out = append(out, "  - "+el)
		}
	}
	return out
}

// Keys returns the registry keys in catalogue order.
func (s *Structures) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Structures) Len() int { return len(s.structures) }

// All returns the backing map. Callers must not mutate it.
func (s *Structures) All() map[string]Structure { return s.structures }

func structureData() []Structure {
	return []Structure{
		{
			Name:        "Jornada do Herói",
			Type:        StructureHeroJourney,
			Description: "Estrutura clássica que segue uma jornada de transformação pessoal",
			Sections: []Section{
				{
					Name:               "Ordinary World",
					Purpose:            "Estabelecer o status quo e criar identificação",
					DurationPercentage: 0.10,
					KeyElements:        []string{"Situação inicial", "Vida comum", "Identificação com audiência"},
					Examples:           []string{"Eu era apenas mais um funcionário comum...", "Como qualquer pessoa da minha idade..."},
				},
				{
					Name:               "Call to Adventure",
					Purpose:            "Apresentar o desafio ou oportunidade",
					DurationPercentage: 0.15,
					KeyElements:        []string{"Momento de mudança", "Oportunidade", "Desafio"},
					Examples:           []string{"Até que um dia...", "Foi quando descobri...", "Tudo mudou quando..."},
				},
				{
					Name:               "Journey & Challenges",
					Purpose:            "Mostrar a jornada e os obstáculos",
					DurationPercentage: 0.50,
					KeyElements:        []string{"Obstáculos", "Aprendizados", "Progressão"},
					Examples:           []string{"O primeiro desafio foi...", "Cada erro me ensinou...", "Depois de muito tentar..."},
				},
				{
					Name:               "Transformation",
					Purpose:            "Revelar a mudança e o resultado",
					DurationPercentage: 0.20,
					KeyElements:        []string{"Resultado", "Transformação", "Novo estado"},
					Examples:           []string{"Hoje posso dizer que...", "A diferença é clara...", "Agora eu entendo..."},
				},
				{
					Name:               "Return with Gift",
					Purpose:            "Compartilhar o aprendizado com a audiência",
					DurationPercentage: 0.05,
					KeyElements:        []string{"Lição", "Aplicação", "Call to action"},
					Examples:           []string{"O que aprendi foi...", "Você também pode...", "Agora é sua vez..."},
				},
			},
			BestFor:                []string{"desenvolvimento_pessoal", "empreendedorismo", "lifestyle"},
			EngagementScore:        0.90,
			TypicalDuration:        "8-15 minutos",
			PsychologicalPrinciple: "Monomyth - Estrutura narrativa universal que ressoa profundamente com humanos",
		},
		{
			Name:        "Problema-Solução",
			Type:        StructureProblemSolution,
			Description: "Estrutura focada em identificar problemas e apresentar soluções práticas",
			Sections: []Section{
				{
					Name:               "Problem Identification",
					Purpose:            "Identificar e amplificar o problema",
					DurationPercentage: 0.25,
					KeyElements:        []string{"Problema comum", "Dor", "Frustração"},
					Examples:           []string{"Você já passou por isso?", "O problema que todo mundo tem...", "A frustração de..."},
				},
				{
					Name:               "Problem Amplification",
					Purpose:            "Mostrar as consequências do problema",
					DurationPercentage: 0.20,
					KeyElements:        []string{"Consequências", "Custos", "Impacto"},
					Examples:           []string{"Se isso continuar...", "O custo de não resolver...", "As pessoas não percebem que..."},
				},
				{
					Name:               "Solution Introduction",
					Purpose:            "Apresentar a solução",
					DurationPercentage: 0.15,
					KeyElements:        []string{"Solução", "Método", "Abordagem"},
					Examples:           []string{"A solução é simples...", "Existe uma forma melhor...", "O método que funciona é..."},
				},
				{
					Name:               "Solution Explanation",
					Purpose:            "Explicar como a solução funciona",
					DurationPercentage: 0.30,
					KeyElements:        []string{"Passo a passo", "Exemplos", "Evidências"},
					Examples:           []string{"Primeiro você...", "Veja como funciona...", "O processo é..."},
				},
				{
					Name:               "Call to Action",
					Purpose:            "Motivar a implementação",
					DurationPercentage: 0.10,
					KeyElements:        []string{"Próximos passos", "Motivação", "Urgência"},
					Examples:           []string{"Agora é com você...", "Comece hoje mesmo...", "Não espere mais..."},
				},
			},
			BestFor:                []string{"educacao", "tecnologia", "negocios", "tutoriais"},
			EngagementScore:        0.85,
			TypicalDuration:        "5-12 minutos",
			PsychologicalPrinciple: "Problem-Solution Fit - Criar tensão através do problema e alívio através da solução",
		},
		{
			Name:        "Formato Lista",
			Type:        StructureListFormat,
			Description: "Estrutura baseada em listas numeradas ou com bullet points",
			Sections: []Section{
				{
					Name:               "Introduction & Promise",
					Purpose:            "Prometer valor e estabelecer expectativas",
					DurationPercentage: 0.15,
					KeyElements:        []string{"Promessa", "Benefícios", "Preview"},
					Examples:           []string{"5 estratégias que vão...", "Os segredos que mudaram...", "Tudo que você precisa saber sobre..."},
				},
				{
					Name:               "Item Development",
					Purpose:            "Desenvolver cada item da lista",
					DurationPercentage: 0.70,
					KeyElements:        []string{"Itens numerados", "Explicações", "Exemplos"},
					Examples:           []string{"Primeiro...", "Segundo ponto...", "A terceira estratégia é..."},
				},
				{
					Name:               "Summary & Next Steps",
					Purpose:            "Resumir e dar próximos passos",
					DurationPercentage: 0.15,
					KeyElements:        []string{"Resumo", "Recapitulação", "Ação"},
					Examples:           []string{"Recapitulando...", "Em resumo...", "Agora que você sabe..."},
				},
			},
			BestFor:                []string{"educacao", "dicas", "reviews", "comparacoes"},
			EngagementScore:        0.75,
			TypicalDuration:        "3-10 minutos",
			PsychologicalPrinciple: "Cognitive Ease - Listas são fáceis de processar e lembrar",
		},
	}
}
