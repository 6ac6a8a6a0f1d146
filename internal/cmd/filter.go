package cmd

import (
	"github.com/ezerfernandes/codetabs/internal/mdcode"
	"github.com/gobwas/glob"
)

type filterFunc func(lang string, meta mdcode.Meta) bool

// filter matches samples whose language matches any lang pattern and whose
// metadata matches every meta pattern.
func filter(langs []string, meta map[string]string) (filterFunc, error) {
	langGlobs := make([]glob.Glob, 0, len(langs))

	for _, pattern := range langs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}

		langGlobs = append(langGlobs, g)
	}

	metaGlobs := make(map[string]glob.Glob, len(meta))

	for key, pattern := range meta {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}

		metaGlobs[key] = g
	}

	return func(lang string, m mdcode.Meta) bool {
		matched := len(langGlobs) == 0

		for _, g := range langGlobs {
			if g.Match(lang) {
				matched = true

				break
			}
		}

		if !matched {
			return false
		}

		for key, g := range metaGlobs {
			if !g.Match(m.Get(key)) {
				return false
			}
		}

		return true
	}, nil
}
