package multilang

import "strings"

var displayNames = map[string]string{
	"cpp":    "C++",
	"python": "Python",
	"java":   "Java",
	"js":     "JavaScript",
	"ts":     "TypeScript",
	"go":     "Go",
	"c":      "C",
	"cs":     "C#",
}

// DisplayName returns the tab label for a language tag. Unknown tags are
// shown upper-cased.
func DisplayName(lang string) string {
	if name, ok := displayNames[strings.ToLower(lang)]; ok {
		return name
	}

	return strings.ToUpper(lang)
}
