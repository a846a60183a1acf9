// Package causal extracts cause→effect relations from narrative text, links
// them into chains over a causal graph, and detects structural gaps.
package causal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Relation is one extracted cause→effect statement. Immutable after
// extraction.
type Relation struct {
	ID                  string
	Cause               string
	Effect              string
	Type                Type
	Strength            Strength
	Confidence          float64
	Evidence            []string
	IntermediateFactors []string
	Description         string
}

// Reasoner extracts and links causal relations. Stateless across calls.
type Reasoner struct{}

// NewReasoner creates a new causal reasoner.
func NewReasoner() *Reasoner {
	return &Reasoner{}
}

// ExtractRelations applies the connective-pattern table over the whole text,
// then adds implicit relations between adjacent sentences carrying
// start/follow ordering cues. Results are deduplicated on exact
// (cause, effect) identity, first occurrence wins.
func (r *Reasoner) ExtractRelations(text string) []Relation {
	relations := make([]Relation, 0)
	relationID := 1

	for _, pat := range causalPatterns {
		for _, groups := range pat.re.FindAllStringSubmatch(text, -1) {
			cause := cleanCauseEffect(groups[1])
			effect := cleanCauseEffect(groups[2])
			if len(cause) <= 2 || len(effect) <= 2 {
				continue
			}

			relations = append(relations, Relation{
				ID:          fmt.Sprintf("causal_%d", relationID),
				Cause:       cause,
				Effect:      effect,
				Type:        pat.typ,
				Strength:    StrengthModerate,
				Confidence:  0.85,
				Description: fmt.Sprintf("%s → %s", cause, effect),
			})
			relationID++
		}
	}

	relations = append(relations, implicitRelations(text)...)

	return dedupeRelations(relations)
}

// cleanCauseEffect strips punctuation and connective words from a captured
// span.
func cleanCauseEffect(text string) string {
	text = rePunctuation.ReplaceAllString(text, "")
	text = reConnectives.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// implicitRelations finds weak indirect links between adjacent sentences
// where the first opens a sequence (先/首先/…) and the second continues it
// (然后/随后/…).
func implicitRelations(text string) []Relation {
	relations := make([]Relation, 0)

	sentences := reSentenceEnd.Split(text, -1)
	for i := 0; i+1 < len(sentences); i++ {
		s1 := strings.TrimSpace(sentences[i])
		s2 := strings.TrimSpace(sentences[i+1])
		if utf8.RuneCountInString(s1) < 5 || utf8.RuneCountInString(s2) < 5 {
			continue
		}
		if !containsAny(s1, startCues) || !containsAny(s2, followCues) {
			continue
		}

		relations = append(relations, Relation{
			ID:          fmt.Sprintf("causal_implicit_%d", i),
			Cause:       s1,
			Effect:      s2,
			Type:        TypeIndirect,
			Strength:    StrengthWeak,
			Confidence:  0.6,
			Description: fmt.Sprintf("隐式因果: %s → %s", s1, s2),
		})
	}

	return relations
}

func dedupeRelations(relations []Relation) []Relation {
	type key struct{ cause, effect string }
	seen := make(map[key]bool)
	unique := make([]Relation, 0, len(relations))

	for _, rel := range relations {
		k := key{rel.Cause, rel.Effect}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, rel)
	}

	return unique
}

// EvaluateStrength scores one relation in [0,1]: a type weight plus a
// strength weight, scaled by confidence.
func (r *Reasoner) EvaluateStrength(relation Relation) float64 {
	score, ok := typeWeights[relation.Type]
	if !ok {
		score = 0.5
	}

	sw, ok := strengthWeights[relation.Strength]
	if !ok {
		sw = 0.1
	}
	score += sw

	score *= relation.Confidence
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
