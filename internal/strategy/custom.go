package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/letitride/internal/analysis"
)

// Rule pairs a condition with the decision taken when it matches.
// Conditions reference the analysis field vocabulary: a bare boolean
// field ("is_royal_draw"), a count comparison ("high_cards >= 2"), or
// the "default" pseudo-condition which always matches.
type Rule struct {
	When     string
	Decision Decision
}

// Custom evaluates an ordered rule list, first match wins. Conditions
// are resolved to predicate funcs at construction so no string lookups
// happen per hand. An unmatched list pulls.
type Custom struct {
	name  string
	rules []compiledRule
}

type compiledRule struct {
	match    func(*analysis.Analysis) bool
	decision Decision
}

type fieldKind int

const (
	boolField fieldKind = iota
	intField
)

type field struct {
	kind   fieldKind
	boolFn func(*analysis.Analysis) bool
	intFn  func(*analysis.Analysis) int
}

// The closed condition vocabulary. Resolved once at strategy
// construction; unknown names and type mismatches fail there.
var fields = map[string]field{
	"has_paying_hand":       {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.HasPayingHand }},
	"has_pair":              {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.HasPair }},
	"has_trips":             {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.HasTrips }},
	"suited":                {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.Suited }},
	"four_flush":            {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.FourFlush }},
	"is_royal_draw":         {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.IsRoyalDraw }},
	"consecutive":           {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.Consecutive }},
	"open_straight":         {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.OpenStraight }},
	"inside_straight_high":  {kind: boolField, boolFn: func(a *analysis.Analysis) bool { return a.InsideStraightHigh }},
	"cards":                 {kind: intField, intFn: func(a *analysis.Analysis) int { return a.Cards }},
	"suited_count":          {kind: intField, intFn: func(a *analysis.Analysis) int { return a.SuitedCount }},
	"high_cards":            {kind: intField, intFn: func(a *analysis.Analysis) int { return a.HighCards }},
	"spread":                {kind: intField, intFn: func(a *analysis.Analysis) int { return a.Spread }},
	"straight_flush_spread": {kind: intField, intFn: func(a *analysis.Analysis) int { return a.StraightFlushSpread }},
	"pair_rank":             {kind: intField, intFn: func(a *analysis.Analysis) int { return int(a.PairRank) }},
	"low_rank":              {kind: intField, intFn: func(a *analysis.Analysis) int { return int(a.LowRank) }},
}

// NewCustom compiles an ordered rule list. It fails if a rule
// references an unknown field, uses an operator on a boolean field, or
// names a count field without a comparison.
func NewCustom(name string, rules []Rule) (*Custom, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("custom strategy %s: no rules", name)
	}

	c := &Custom{name: name, rules: make([]compiledRule, 0, len(rules))}
	for i, rule := range rules {
		match, err := compileCondition(rule.When)
		if err != nil {
			return nil, fmt.Errorf("custom strategy %s: rule %d: %w", name, i+1, err)
		}
		c.rules = append(c.rules, compiledRule{match: match, decision: rule.Decision})
	}
	return c, nil
}

// MustCustom compiles a rule list and panics on error. For built-in
// presets whose rules are known valid.
func MustCustom(name string, rules []Rule) *Custom {
	c, err := NewCustom(name, rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Name implements Strategy.
func (c *Custom) Name() string { return c.name }

// Bet1 implements Strategy.
func (c *Custom) Bet1(a *analysis.Analysis, _ *Context) Decision {
	return c.decide(a)
}

// Bet2 implements Strategy.
func (c *Custom) Bet2(a *analysis.Analysis, _ *Context) Decision {
	return c.decide(a)
}

func (c *Custom) decide(a *analysis.Analysis) Decision {
	for _, rule := range c.rules {
		if rule.match(a) {
			return rule.decision
		}
	}
	return Pull
}

func compileCondition(cond string) (func(*analysis.Analysis) bool, error) {
	parts := strings.Fields(cond)
	switch len(parts) {
	case 1:
		if parts[0] == "default" {
			return func(*analysis.Analysis) bool { return true }, nil
		}
		f, ok := fields[parts[0]]
		if !ok {
			return nil, fmt.Errorf("unknown condition field %q", parts[0])
		}
		if f.kind != boolField {
			return nil, fmt.Errorf("field %q is a count and needs a comparison", parts[0])
		}
		return f.boolFn, nil

	case 3:
		f, ok := fields[parts[0]]
		if !ok {
			return nil, fmt.Errorf("unknown condition field %q", parts[0])
		}
		if f.kind != intField {
			return nil, fmt.Errorf("field %q is boolean and takes no comparison", parts[0])
		}
		operand, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid operand %q for field %q", parts[2], parts[0])
		}
		cmp, err := compileOp(parts[1])
		if err != nil {
			return nil, err
		}
		return func(a *analysis.Analysis) bool {
			return cmp(f.intFn(a), operand)
		}, nil

	default:
		return nil, fmt.Errorf("cannot parse condition %q", cond)
	}
}

func compileOp(op string) (func(a, b int) bool, error) {
	switch op {
	case "=", "==":
		return func(a, b int) bool { return a == b }, nil
	case "!=":
		return func(a, b int) bool { return a != b }, nil
	case "<":
		return func(a, b int) bool { return a < b }, nil
	case "<=":
		return func(a, b int) bool { return a <= b }, nil
	case ">":
		return func(a, b int) bool { return a > b }, nil
	case ">=":
		return func(a, b int) bool { return a >= b }, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}
