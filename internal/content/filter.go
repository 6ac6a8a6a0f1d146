package content

import "strings"

// Filter narrows a post listing. Empty fields match everything.
type Filter struct {
	// Category is one of Categories; posts match when a tag contains one of
	// the category's tags.
	Category string
	// Topics lists exact tags; posts match when they carry any of them.
	Topics []string
	// Query matches title, description or tags, case-insensitively.
	Query string
}

// AllCategories is the category that disables category filtering.
const AllCategories = "All"

// Categories lists the browsable categories, AllCategories first.
var Categories = []string{AllCategories, "Self Help", "DSA", "Web Dev", "AI"}

var categoryTags = map[string][]string{
	"Self Help": {"Life", "Career", "Soft Skills", "Self Improvement"},
	"DSA":       {"DSA", "Algorithms", "Data Structures"},
	"Web Dev":   {"Web", "React", "Frontend", "Backend", "CSS", "JavaScript", "TypeScript"},
	"AI":        {"AI", "ML", "Machine Learning", "Deep Learning"},
}

// ParseTopics splits a comma-separated topics parameter.
func ParseTopics(param string) []string {
	var topics []string

	for _, t := range strings.Split(param, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	return topics
}

// Match reports whether p passes every filter.
func (f Filter) Match(p Post) bool {
	return f.matchCategory(p) && f.matchTopics(p) && f.matchQuery(p)
}

func (f Filter) matchCategory(p Post) bool {
	if f.Category == "" || f.Category == AllCategories {
		return true
	}

	// Unknown categories map to no tags and so match nothing.
	for _, tag := range p.Tags {
		for _, catTag := range categoryTags[f.Category] {
			if strings.Contains(tag, catTag) {
				return true
			}
		}
	}

	return false
}

func (f Filter) matchTopics(p Post) bool {
	if len(f.Topics) == 0 {
		return true
	}

	for _, tag := range p.Tags {
		for _, topic := range f.Topics {
			if tag == topic {
				return true
			}
		}
	}

	return false
}

func (f Filter) matchQuery(p Post) bool {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}
