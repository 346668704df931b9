package diff

import (
	"fmt"
	"strings"
)

// Stats aggregates change counts across a set of files.
type Stats struct {
	Files     int `json:"files"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// Summarize counts files, added lines and deleted lines.
func Summarize(files []File) Stats {
	s := Stats{Files: len(files)}
	for _, f := range files {
		add, del := f.Counts()
		s.Additions += add
		s.Deletions += del
	}
	return s
}

// Counts returns the file's added and deleted line totals.
func (f File) Counts() (additions, deletions int) {
	for _, h := range f.Hunks {
		for _, ch := range h.Changes {
			switch ch.Kind {
			case KindAdd:
				additions++
			case KindDelete:
				deletions++
			}
		}
	}
	return additions, deletions
}

// String formats the stats the way git's --shortstat does. Zero
// insertion or deletion clauses are left out.
func (s Stats) String() string {
	parts := []string{fmt.Sprintf("%d file%s changed", s.Files, plural(s.Files))}
	if s.Additions > 0 {
		parts = append(parts, fmt.Sprintf("%d insertion%s(+)", s.Additions, plural(s.Additions)))
	}
	if s.Deletions > 0 {
		parts = append(parts, fmt.Sprintf("%d deletion%s(-)", s.Deletions, plural(s.Deletions)))
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
