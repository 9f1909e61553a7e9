package labelscript

import (
	"fmt"
	"strings"
)

// Label marks a named animation segment. Frame is 1-based, as authored.
type Label struct {
	Name    string
	Frame   int
	Comment string
}

func (l *Label) String() string {
	s := fmt.Sprintf("$%s %d", l.Name, l.Frame)
	if l.Comment != "" {
		s += " // " + l.Comment
	}
	return s
}

// Table flattens labels into a name -> 1-based frame mapping.
// Later lines override earlier ones.
func Table(labels []*Label) map[string]int {
	table := make(map[string]int, len(labels))
	for _, l := range labels {
		table[l.Name] = l.Frame
	}
	return table
}

func Render(labels []*Label) string {
	lines := make([]string, 0, len(labels))
	for _, l := range labels {
		lines = append(lines, l.String())
	}
	return strings.Join(lines, "\n") + "\n"
}
