package rules

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/dghubble/trie"
)

// ErrInvalidRuleset is matched by all ruleset construction errors.
var ErrInvalidRuleset = errors.New("invalid ruleset")

// ValidationError describes why a ruleset definition was rejected.
type ValidationError struct {
	Ruleset string
	Step    string
	Suffix  string
	Reason  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "invalid ruleset %q", e.Ruleset)

	if e.Step != "" {
		fmt.Fprintf(&b, ", step %q", e.Step)
	}

	if e.Suffix != "" {
		fmt.Fprintf(&b, ", suffix %q", e.Suffix)
	}

	b.WriteString(": ")
	b.WriteString(e.Reason)

	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRuleset
}

// Definition is the static description of a ruleset.
type Definition struct {
	Name        string
	Description string
	// Vowels is the vowel grouping used for regions and vowel tests.
	Vowels string
	// Regions computes R1 and R2. When nil both regions are empty.
	Regions RegionFunc
	// Exceptions map whole words to their stems and bypass all steps.
	Exceptions map[string]string
	// MinWordLength is the length in characters below which only the
	// ShortWord steps are run.
	MinWordLength int
	// MinStemLength is the shortest result a rule is allowed to leave
	// behind. Rules that would shorten a word below it don't fire.
	MinStemLength int
	ShortWord     []Step
	Prelude       func(w *Word)
	Steps         []Step
	Postlude      func(w *Word)
}

// Ruleset is a validated, compiled definition. It's immutable and safe for
// concurrent use.
type Ruleset struct {
	name          string
	description   string
	vowels        Grouping
	regions       RegionFunc
	exceptions    map[string]string
	minWordLength int
	minStemLength int
	shortWord     []*compiledStep
	prelude       func(w *Word)
	steps         []*compiledStep
	postlude      func(w *Word)
}

type compiledStep struct {
	name      string
	region    Region
	condition Condition
	index     *trie.RuneTrie
}

type compiledRule struct {
	suffix string
	length int
	rule   Rule
	then   *compiledStep
}

// New validates and compiles a ruleset definition. All errors match
// ErrInvalidRuleset.
func New(def Definition) (*Ruleset, error) {
	invalid := func(reason string, args ...any) error {
		return &ValidationError{
			Ruleset: def.Name,
			Reason:  fmt.Sprintf(reason, args...),
		}
	}

	if def.Name == "" {
		return nil, invalid("missing name")
	}

	if def.Vowels == "" {
		return nil, invalid("no vowels defined")
	}

	if def.MinWordLength < 0 {
		return nil, invalid("negative minimum word length")
	}

	if def.MinStemLength < 0 {
		return nil, invalid("negative minimum stem length")
	}

	if len(def.Steps) == 0 {
		return nil, invalid("no steps defined")
	}

	for word := range def.Exceptions {
		if word == "" {
			return nil, invalid("empty exception")
		}
	}

	c := compiler{
		ruleset:  def.Name,
		compiled: make(map[*Step]*compiledStep),
		visiting: make(map[*Step]bool),
	}

	steps, err := c.compileAll(def.Steps)
	if err != nil {
		return nil, err
	}

	shortWord, err := c.compileAll(def.ShortWord)
	if err != nil {
		return nil, err
	}

	return &Ruleset{
		name:          def.Name,
		description:   def.Description,
		vowels:        NewGrouping(def.Vowels),
		regions:       def.Regions,
		exceptions:    maps.Clone(def.Exceptions),
		minWordLength: def.MinWordLength,
		minStemLength: def.MinStemLength,
		shortWord:     shortWord,
		prelude:       def.Prelude,
		steps:         steps,
		postlude:      def.Postlude,
	}, nil
}

func (rs *Ruleset) Name() string {
	return rs.name
}

func (rs *Ruleset) Description() string {
	return rs.description
}

type compiler struct {
	ruleset  string
	names    map[string]bool
	compiled map[*Step]*compiledStep
	visiting map[*Step]bool
}

func (c *compiler) compileAll(steps []Step) ([]*compiledStep, error) {
	if c.names == nil {
		c.names = make(map[string]bool)
	}

	res := make([]*compiledStep, len(steps))

	for i := range steps {
		if steps[i].Name != "" && c.names[steps[i].Name] {
			return nil, &ValidationError{
				Ruleset: c.ruleset,
				Step:    steps[i].Name,
				Reason:  "duplicate step name",
			}
		}

		c.names[steps[i].Name] = true

		cs, err := c.compile(&steps[i])
		if err != nil {
			return nil, err
		}

		res[i] = cs
	}

	return res, nil
}

func (c *compiler) compile(s *Step) (*compiledStep, error) {
	if cs, ok := c.compiled[s]; ok {
		return cs, nil
	}

	invalid := func(suffix string, reason string, args ...any) error {
		return &ValidationError{
			Ruleset: c.ruleset,
			Step:    s.Name,
			Suffix:  suffix,
			Reason:  fmt.Sprintf(reason, args...),
		}
	}

	if s.Name == "" {
		return nil, invalid("", "unnamed step")
	}

	if c.visiting[s] {
		return nil, invalid("", "step chains back to itself")
	}

	if len(s.Rules) == 0 {
		return nil, invalid("", "step has no rules")
	}

	if !s.Region.valid() {
		return nil, invalid("", "unknown region %v", s.Region)
	}

	c.visiting[s] = true
	defer delete(c.visiting, s)

	cs := compiledStep{
		name:      s.Name,
		region:    s.Region,
		condition: s.Condition,
		index:     trie.NewRuneTrie(),
	}

	for _, rule := range s.Rules {
		switch {
		case !rule.Region.valid():
			return nil, invalid(rule.Suffix, "unknown region %v", rule.Region)
		case !rule.Flow.valid():
			return nil, invalid(rule.Suffix, "unknown flow %v", rule.Flow)
		case rule.Keep && (rule.Replacement != "" || rule.Action != nil):
			return nil, invalid(rule.Suffix,
				"kept suffix can't also be rewritten")
		case rule.Action != nil && rule.Replacement != "":
			return nil, invalid(rule.Suffix,
				"both replacement and action set")
		case rule.Keep && rule.Then != nil:
			return nil, invalid(rule.Suffix,
				"kept suffix can't chain a step")
		}

		suffixes, err := ExpandPattern(rule.Suffix)
		if err != nil {
			return nil, invalid(rule.Suffix, "bad suffix pattern: %v", err)
		}

		var then *compiledStep

		if rule.Then != nil {
			then, err = c.compile(rule.Then)
			if err != nil {
				return nil, err
			}
		}

		for _, suffix := range suffixes {
			key := reverse(suffix)

			if cs.index.Get(key) != nil {
				return nil, invalid(suffix, "suffix declared twice")
			}

			cs.index.Put(key, &compiledRule{
				suffix: suffix,
				length: len([]rune(suffix)),
				rule:   rule,
				then:   then,
			})
		}
	}

	c.compiled[s] = &cs

	return &cs, nil
}

func reverse(s string) string {
	r := []rune(s)

	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	return string(r)
}
