// Package roadmap holds the curated career roadmaps.
package roadmap

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Project is a suggested practice project.
type Project struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Projects groups practice projects by difficulty.
type Projects struct {
	Simple       []Project `yaml:"simple" json:"simple"`
	Intermediate []Project `yaml:"intermediate" json:"intermediate"`
	Advanced     []Project `yaml:"advanced" json:"advanced"`
}

// Step is one stage of a roadmap.
type Step struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Topics       []string `yaml:"topics" json:"topics"`
	Projects     Projects `yaml:"projects" json:"projects"`
	Toolset      []string `yaml:"professionalToolset,omitempty" json:"professionalToolset,omitempty"`
	WhyThisOrder string   `yaml:"whyThisOrder" json:"whyThisOrder"`
}

type Roadmap struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

var (
	ErrNotFound = errors.New("roadmap not found")
	ErrInvalid  = errors.New("invalid roadmap catalog")
)

//go:embed data/roadmaps.yaml
var roadmapsYAML []byte

// Catalog is a read-only set of roadmaps.
type Catalog struct {
	byID map[string]*Roadmap
	ids  []string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(roadmapsYAML)
}

// Parse reads a YAML list of roadmaps. Every roadmap needs a unique ID and at
// least one step, and step IDs must be unique within their roadmap.
func Parse(data []byte) (*Catalog, error) {
	var roadmaps []*Roadmap

	if err := yaml.Unmarshal(data, &roadmaps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	c := &Catalog{byID: make(map[string]*Roadmap, len(roadmaps))}

	for _, r := range roadmaps {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: roadmap %q has no id", ErrInvalid, r.Title)
		}

		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate roadmap %q", ErrInvalid, r.ID)
		}

		if len(r.Steps) == 0 {
			return nil, fmt.Errorf("%w: roadmap %q has no steps", ErrInvalid, r.ID)
		}

		steps := make(map[string]bool, len(r.Steps))

		for _, s := range r.Steps {
			if steps[s.ID] {
				return nil, fmt.Errorf("%w: duplicate step %q in %q", ErrInvalid, s.ID, r.ID)
			}

			steps[s.ID] = true
		}

		c.byID[r.ID] = r
		c.ids = append(c.ids, r.ID)
	}

	sort.Strings(c.ids)

	return c, nil
}

// List returns all roadmaps ordered by ID.
func (c *Catalog) List() []*Roadmap {
	out := make([]*Roadmap, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}

	return out
}

func (c *Catalog) Get(id string) (*Roadmap, error) {
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return r, nil
}
