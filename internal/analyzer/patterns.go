package analyzer

import "regexp"

// patternSet maps one technique type to the expressions that betray it.
// Sets are held in slices so detection and reporting order is stable.
type patternSet struct {
	name     string
	patterns []*regexp.Regexp
}

func compileSet(name string, exprs ...string) patternSet {
	set := patternSet{name: name, patterns: make([]*regexp.Regexp, 0, len(exprs))}
	for _, expr := range exprs {
		set.patterns = append(set.patterns, regexp.MustCompile(expr))
	}
	return set
}

// hookPatterns betray opening techniques; matched only against the first 200
// words of a script.
var hookPatterns = []patternSet{
	compileSet("curiosity_gap",
		`eu descobri que`,
		`existe um segredo`,
		`o que vou.*mostrar`,
		`você não vai acreditar`,
		`descoberta.*surpreendente`,
	),
	compileSet("controversy",
		`vai contra tudo`,
		`é uma mentira`,
		`não é verdade`,
		`estão.*errado`,
		`a verdade é`,
	),
	compileSet("personal_story",
		`há.*anos.*atrás`,
		`eu estava`,
		`comigo aconteceu`,
		`minha história`,
		`quando eu.*tinha`,
	),
	compileSet("statistics_shock",
		`\d+%.*pessoas`,
		`\d+.*em cada`,
		`apenas \d+%`,
		`mais de \d+.*milhões`,
		`estatística.*chocante`,
	),
	compileSet("question_direct",
		`você já se perguntou`,
		`qual.*diferença`,
		`por que.*algumas pessoas`,
		`você sabia que`,
		`já aconteceu.*você`,
	),
}

// engagementPatterns betray mid-video techniques; matched against the whole
// text.
var engagementPatterns = []patternSet{
	compileSet("pattern_interrupt",
		`espera`,
		`pare tudo`,
		`calma aí`,
		`ops`,
		`aliás`,
	),
	compileSet("callback",
		`lembra.*início`,
		`como.*falei`,
		`voltando.*aquela`,
		`aquela.*história`,
		`como.*mencionei`,
	),
	compileSet("social_proof",
		`não sou só eu`,
		`mais de.*pessoas`,
		`meus.*alunos`,
		`especialistas.*recomendam`,
		`estudos.*mostram`,
	),
	compileSet("interaction",
		`deixe.*comentários`,
		`escreva.*sim`,
		`dê.*like`,
		`se.*inscreva`,
		`compartilhe`,
	),
}

// storyMarkers betray narrative structure elements.
var storyMarkers = []patternSet{
	compileSet("beginning",
		`era uma vez`,
		`começou quando`,
		`tudo.*começou`,
		`primeira vez`,
		`no início`,
	),
	compileSet("conflict",
		`problema.*surgiu`,
		`dificuldade.*apareceu`,
		`desafio.*maior`,
		`obstáculo`,
		`erro.*cometi`,
	),
	compileSet("resolution",
		`solução.*encontrei`,
		`descobri.*como`,
		`finalmente.*consegui`,
		`resultado.*foi`,
		`aprendi.*que`,
	),
	compileSet("lesson",
		`lição.*importante`,
		`o.*que.*aprendi`,
		`moral.*história`,
		`takeaway`,
		`resumindo`,
	),
}

// Scoring helper patterns used by the structure assessments.
var (
	emotionalWords = []string{"incrível", "surpreendente", "chocante", "impressionante", "revolucionário"}

	promisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`vou.*mostrar`),
		regexp.MustCompile(`você.*vai.*aprender`),
		regexp.MustCompile(`vai.*descobrir`),
	}

	ctaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`se inscreva`),
		regexp.MustCompile(`deixe.*like`),
		regexp.MustCompile(`compartilhe`),
		regexp.MustCompile(`comenta`),
		regexp.MustCompile(`ative.*sino`),
	}

	summaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`resumindo`),
		regexp.MustCompile(`recapitulando`),
		regexp.MustCompile(`em resumo`),
		regexp.MustCompile(`principais.*pontos`),
	}

	transitionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`agora`),
		regexp.MustCompile(`depois`),
		regexp.MustCompile(`então`),
		regexp.MustCompile(`em seguida`),
		regexp.MustCompile(`primeiro`),
		regexp.MustCompile(`segundo`),
	}
)

// detect returns the names of the sets with at least one pattern matching
// text; a set counts once regardless of how many of its patterns match.
func detect(sets []patternSet, text string) []string {
	found := []string{}
	for _, set := range sets {
		for _, pattern := range set.patterns {
			if pattern.MatchString(text) {
				found = append(found, set.name)
				break
			}
		}
	}
	return found
}
