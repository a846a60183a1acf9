package causal

import (
	"regexp"
)

// Type classifies how a cause produces its effect.
type Type string

const (
	TypeDirect       Type = "direct"
	TypeIndirect     Type = "indirect"
	TypeNecessary    Type = "necessary"
	TypeSufficient   Type = "sufficient"
	TypeContributory Type = "contributory"
)

// Label returns the Chinese type name used in rendered output.
func (t Type) Label() string {
	switch t {
	case TypeDirect:
		return "直接因果"
	case TypeIndirect:
		return "间接因果"
	case TypeNecessary:
		return "必要条件"
	case TypeSufficient:
		return "充分条件"
	case TypeContributory:
		return "促成因素"
	}
	return string(t)
}

// Strength grades how firmly a relation is asserted.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// Label returns the Chinese strength name used in rendered output.
func (s Strength) Label() string {
	switch s {
	case StrengthStrong:
		return "强"
	case StrengthModerate:
		return "中"
	case StrengthWeak:
		return "弱"
	}
	return string(s)
}

// GapType categorizes a causal-chain discontinuity.
type GapType string

const (
	GapMissingCause        GapType = "missing_cause"
	GapMissingEffect       GapType = "missing_effect"
	GapMissingIntermediate GapType = "missing_intermediate"
)

// causalPattern pairs one connective regex with the relation type it implies.
// Each pattern captures exactly two spans: cause, then effect.
type causalPattern struct {
	re  *regexp.Regexp
	typ Type
}

// causalPatterns is the ordered connective table. All patterns are applied
// over the whole text; duplicates are collapsed later on exact
// (cause, effect) identity with the first occurrence winning.
var causalPatterns = []causalPattern{
	{regexp.MustCompile(`因为(.{0,100}?)(?:所以|因此|因而|故而)(.{0,100})`), TypeDirect},
	{regexp.MustCompile(`由于(.{0,100}?)(?:导致|引起|造成)(.{0,100})`), TypeDirect},
	{regexp.MustCompile(`(.{0,30}?)(?:造成|引起|致使)(.{0,30})`), TypeDirect},
	{regexp.MustCompile(`(.{0,100}?)(?:所以|因此|因而)(.{0,100})`), TypeDirect},
	{regexp.MustCompile(`(.{0,100}?)(?:进而|从而)(.{0,100})`), TypeIndirect},
}

var (
	rePunctuation = regexp.MustCompile(`[，。！？；：、,;:!?\n]`)
	reConnectives = regexp.MustCompile(`因为|由于|所以|因此|因而|导致|引起|造成|使得|致使|使`)
	reSentenceEnd = regexp.MustCompile(`[。！？\n]`)
)

// start-class cues opening a sequence of actions
var startCues = []string{"先", "开始", "首先", "最初"}

// follow-class cues continuing a sequence of actions
var followCues = []string{"后", "接着", "然后", "随后", "最后"}

// typeWeights scores the kind of causal link in strength evaluation.
var typeWeights = map[Type]float64{
	TypeDirect:       0.9,
	TypeSufficient:   0.85,
	TypeNecessary:    0.7,
	TypeIndirect:     0.6,
	TypeContributory: 0.5,
}

// strengthWeights scores assertion firmness in strength evaluation.
var strengthWeights = map[Strength]float64{
	StrengthStrong:   0.3,
	StrengthModerate: 0.2,
	StrengthWeak:     0.1,
}
