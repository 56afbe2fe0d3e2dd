package stemmer

import (
	"github.com/ttab/elephant-stem/internal/languages"
	"github.com/ttab/elephant-stem/internal/rules"
)

var (
	// ErrUnknownLanguage is matched by errors for languages that have no
	// stemmer.
	ErrUnknownLanguage = languages.ErrUnknownLanguage
	// ErrInvalidRuleset is matched by errors for built in rulesets that
	// failed validation.
	ErrInvalidRuleset = rules.ErrInvalidRuleset
)

// UnknownLanguageError carries the identifier that couldn't be resolved.
type UnknownLanguageError = languages.UnknownLanguageError

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Native      bool     `json:"native"`
	StopWords   bool     `json:"stop_words"`
}

// Languages lists the supported languages sorted by name.
func Languages() []LanguageInfo {
	list := languages.List()

	res := make([]LanguageInfo, 0, len(list))

	for _, l := range list {
		info := LanguageInfo{
			Name:      l.Name,
			Aliases:   l.Aliases,
			Native:    l.Native,
			StopWords: l.HasStopWords(),
		}

		algo, err := l.Algorithm()
		if err == nil {
			info.Description = algo.Description()
		}

		res = append(res, info)
	}

	return res
}

// Validate checks that all built in rulesets can be constructed.
func Validate() error {
	return languages.Validate() //nolint: wrapcheck
}
