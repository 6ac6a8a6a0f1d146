// Package content serves the site's articles: the built-in catalog, posts
// written by signed-in users, likes, and topic and category filtering.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Post is an article as stored, before preprocessing.
type Post struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Type        string   `yaml:"type" json:"type"`
	Tags        []string `yaml:"tags" json:"tags"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	Content     string   `yaml:"content" json:"content"`
	Date        string   `yaml:"date" json:"date"`
	ReadTime    string   `yaml:"readTime" json:"readTime"`
	Author      string   `yaml:"author" json:"author"`
	AuthorID    string   `yaml:"-" json:"authorId,omitempty"`
}

// Topic groups tags under a browsable heading.
type Topic struct {
	Name        string   `yaml:"name" json:"name"`
	FullName    string   `yaml:"fullName" json:"fullName"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Catalog is the built-in content shipped with the binary.
type Catalog struct {
	Posts  []Post  `yaml:"posts"`
	Topics []Topic `yaml:"topics"`
}

//go:embed data/catalog.yaml
var catalogYAML []byte

var errDuplicateID = errors.New("duplicate post id")

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog parses a YAML catalog and checks that post IDs are unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Posts))

	for i := range c.Posts {
		p := &c.Posts[i]

		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", errDuplicateID, p.ID)
		}

		seen[p.ID] = true

		if p.Type == "" {
			p.Type = postType
		}
	}

	return &c, nil
}
