// Package scoring implements the hierarchical reputation scorer: the
// pure function that turns a prover's raw per-category scores into the
// ScoreResult consumed as private witness input by the threshold AIR.
package scoring

import "fmt"

// Category is a tagged reputation category. Custom carries its own
// label; the other variants are fixed tags.
type Category struct {
	tag   categoryTag
	label string // only meaningful when tag == categoryCustom
}

type categoryTag int

const (
	categoryGovernance categoryTag = iota
	categoryCommunity
	categoryTechnical
	categoryFaithTech
	categoryDeFi
	categoryCustom
)

// Fixed category values.
var (
	Governance = Category{tag: categoryGovernance}
	Community  = Category{tag: categoryCommunity}
	Technical  = Category{tag: categoryTechnical}
	FaithTech  = Category{tag: categoryFaithTech}
	DeFi       = Category{tag: categoryDeFi}
)

// Custom builds a Custom(label) category. Equality and key derivation
// are on (tag, label).
func Custom(label string) Category {
	return Category{tag: categoryCustom, label: label}
}

// Equal reports whether two categories are the same tag (and, for
// Custom, the same label).
func (c Category) Equal(other Category) bool {
	if c.tag != other.tag {
		return false
	}
	if c.tag == categoryCustom {
		return c.label == other.label
	}
	return true
}

// key returns a value suitable for use as a map key, distinguishing
// every Custom label from every other Custom label and from the fixed
// variants.
func (c Category) key() string {
	if c.tag == categoryCustom {
		return "custom:" + c.label
	}
	return fmt.Sprintf("tag:%d", c.tag)
}

// String renders a human-readable category name.
func (c Category) String() string {
	switch c.tag {
	case categoryGovernance:
		return "Governance"
	case categoryCommunity:
		return "Community"
	case categoryTechnical:
		return "Technical"
	case categoryFaithTech:
		return "FaithTech"
	case categoryDeFi:
		return "DeFi"
	default:
		return "Custom(" + c.label + ")"
	}
}

// ScoredCategory pairs a category with a raw score.
type ScoredCategory struct {
	Category Category
	Score    uint32
}

// DecayParameters configures time-based decay and the sustained-activity
// multiplicative bonus.
type DecayParameters struct {
	// BaseDecayRate is in basis points (100 = 1%).
	BaseDecayRate uint16
	// MultiplicativeFactor scales the sustained-activity bonus.
	MultiplicativeFactor float32
	// MinThreshold floors the post-decay score.
	MinThreshold uint32
}

// ScoreResult is the immutable output of CalculateScore.
type ScoreResult struct {
	BaseScore            uint32
	SynergyBonus         uint32
	MultiplicativeBonus  uint32
	FinalScore           uint32
	ActiveCategories     []Category
	DecayApplied         bool
	Timestamp            uint64
}

type synergyKey struct {
	a, b string
}

// Scorer is the hierarchical scoring engine: per-category weights, a
// symmetric synergy matrix, and optional decay configuration.
type Scorer struct {
	weights  map[string]float32
	synergy  map[synergyKey]float32
	decay    *DecayParameters
}

// New returns a Scorer preloaded with the default category weights
// and cross-category synergy bonuses.
func New() *Scorer {
	s := &Scorer{
		weights: map[string]float32{
			Governance.key(): 1.0,
			Community.key():  0.8,
			Technical.key():  1.2,
			FaithTech.key():  0.9,
			DeFi.key():       1.1,
		},
		synergy: map[synergyKey]float32{},
	}
	s.SetSynergy(Governance, Technical, 1.3)
	s.SetSynergy(Community, FaithTech, 1.25)
	s.SetSynergy(Technical, DeFi, 1.2)
	return s
}

// WithDecay returns a copy of the scorer configured with decay parameters.
func (s *Scorer) WithDecay(params DecayParameters) *Scorer {
	clone := *s
	clone.decay = &params
	return &clone
}

// SetCategoryWeight overrides (or adds) a category's base weight.
func (s *Scorer) SetCategoryWeight(c Category, weight float32) {
	s.weights[c.key()] = weight
}

// SetSynergy records a symmetric synergy multiplier between two
// categories; both lookup directions are inserted at set-time so
// CalculateScore only ever needs one map probe.
func (s *Scorer) SetSynergy(a, b Category, multiplier float32) {
	s.synergy[synergyKey{a.key(), b.key()}] = multiplier
	s.synergy[synergyKey{b.key(), a.key()}] = multiplier
}

// CalculateScore computes the weighted base score, cross-category
// synergy bonus, optional time decay, and sustained-activity bonus for
// a set of raw category scores, per the hierarchical scoring algorithm.
//
// Pair iteration for the synergy bonus follows insertion order of
// ActiveCategories (the order categories first appear with a positive
// score in userScores).
func (s *Scorer) CalculateScore(userScores []ScoredCategory, timestamp, timeWindow uint64) ScoreResult {
	var baseScore float32
	var active []Category
	rawByKey := make(map[string]float32, len(userScores))

	for _, sc := range userScores {
		if sc.Score == 0 {
			continue
		}
		active = append(active, sc.Category)
		rawByKey[sc.Category.key()] = float32(sc.Score)

		weight, ok := s.weights[sc.Category.key()]
		if !ok {
			weight = 1.0
		}
		baseScore += float32(sc.Score) * weight
	}

	var synergyBonus float32
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			key := synergyKey{active[i].key(), active[j].key()}
			multiplier, ok := s.synergy[key]
			if !ok {
				continue
			}
			score1 := rawByKey[active[i].key()]
			score2 := rawByKey[active[j].key()]
			synergyBonus += (score1 + score2) * (multiplier - 1.0)
		}
	}

	finalScore := baseScore + synergyBonus

	var decayApplied bool
	if s.decay != nil && timestamp > timeWindow {
		timeDiff := timestamp - timeWindow
		rate := float32(s.decay.BaseDecayRate) / 10000.0
		decayAmount := finalScore * rate * (float32(timeDiff) / 86400.0)
		finalScore -= decayAmount
		decayApplied = true

		if finalScore < float32(s.decay.MinThreshold) {
			finalScore = float32(s.decay.MinThreshold)
		}
	}

	var multiplicativeBonus float32
	if s.decay != nil {
		multiplicativeBonus = float32(len(active)) * s.decay.MultiplicativeFactor
	}
	finalScore += multiplicativeBonus

	return ScoreResult{
		BaseScore:           uint32(baseScore),
		SynergyBonus:        uint32(synergyBonus),
		MultiplicativeBonus: uint32(multiplicativeBonus),
		FinalScore:          uint32(finalScore),
		ActiveCategories:    active,
		DecayApplied:        decayApplied,
		Timestamp:           timestamp,
	}
}

// ScoreRange buckets a raw score into the ANFIS-style fuzzy tiers used
// by GenerateFuzzyRules. It is informational only: it never feeds
// back into CalculateScore, and the fuzzy rule set is generated but
// never consulted during scoring.
type ScoreRange int

const (
	ScoreLow ScoreRange = iota
	ScoreMedium
	ScoreHigh
	ScoreExpert
)

// RangeFromScore buckets a raw score: 0-33 Low, 34-66 Medium, 67-100
// High, 101 and above Expert.
func RangeFromScore(score uint32) ScoreRange {
	switch {
	case score <= 33:
		return ScoreLow
	case score <= 66:
		return ScoreMedium
	case score <= 100:
		return ScoreHigh
	default:
		return ScoreExpert
	}
}

func (r ScoreRange) String() string {
	switch r {
	case ScoreLow:
		return "Low"
	case ScoreMedium:
		return "Medium"
	case ScoreHigh:
		return "High"
	default:
		return "Expert"
	}
}

// FuzzyRule describes a named combination of category/range conditions
// and the multiplier applied when all of them hold.
type FuzzyRule struct {
	Conditions       []RuleCondition
	OutputMultiplier float32
	Description      string
}

// RuleCondition pairs a category with the score range it must fall in.
type RuleCondition struct {
	Category Category
	Range    ScoreRange
}

// GenerateFuzzyRules returns the fixed set of ANFIS-style tier rules
// carried over from the original scoring model, for callers that want
// a human-readable tier label alongside the numeric ScoreResult.
func GenerateFuzzyRules() []FuzzyRule {
	return []FuzzyRule{
		{
			Conditions: []RuleCondition{
				{Category: Governance, Range: ScoreHigh},
				{Category: Technical, Range: ScoreHigh},
			},
			OutputMultiplier: 1.5,
			Description:      "Leadership tier - Strong governance and technical skills",
		},
		{
			Conditions: []RuleCondition{
				{Category: Community, Range: ScoreHigh},
				{Category: FaithTech, Range: ScoreHigh},
			},
			OutputMultiplier: 1.3,
			Description:      "Purpose-driven tier - Strong community and faith-tech alignment",
		},
		{
			Conditions: []RuleCondition{
				{Category: Governance, Range: ScoreMedium},
				{Category: Community, Range: ScoreMedium},
				{Category: Technical, Range: ScoreMedium},
			},
			OutputMultiplier: 1.2,
			Description:      "Well-rounded contributor - Balanced across categories",
		},
	}
}
