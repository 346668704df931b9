package diff

import "fmt"

// Status describes what happened to a file in a diff.
type Status int

const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

var statusNames = map[Status]string{
	StatusModified: "modified",
	StatusAdded:    "added",
	StatusDeleted:  "deleted",
	StatusRenamed:  "renamed",
	StatusCopied:   "copied",
}

// String returns the lower-case status name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ChangeKind classifies a single line within a hunk.
type ChangeKind int

const (
	KindNormal ChangeKind = iota
	KindAdd
	KindDelete
)

var changeKindNames = map[ChangeKind]string{
	KindNormal: "normal",
	KindAdd:    "add",
	KindDelete: "delete",
}

// String returns the lower-case kind name.
func (k ChangeKind) String() string {
	if name, ok := changeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalJSON encodes the kind as its name.
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// TokenKind classifies a word token produced by Annotate.
type TokenKind int

const (
	TokenNormal TokenKind = iota
	TokenAdd
	TokenDelete
)

var tokenKindNames = map[TokenKind]string{
	TokenNormal: "normal",
	TokenAdd:    "add",
	TokenDelete: "delete",
}

// String returns the lower-case kind name.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// MarshalJSON encodes the kind as its name.
func (k TokenKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// File is one per-file section of a unified diff.
type File struct {
	OldPath  string `json:"oldPath"`
	NewPath  string `json:"newPath"`
	Status   Status `json:"status"`
	Binary   bool   `json:"binary,omitempty"`
	Expanded bool   `json:"expanded"`
	Hunks    []Hunk `json:"hunks"`
}

// Path returns the file's display path: the new path, falling back to the
// old one for deletions.
func (f File) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Hunk is one @@-delimited block of changes.
type Hunk struct {
	// Header is the @@ line exactly as it appeared in the input.
	Header string `json:"header"`
	// Section is the text after the closing @@, without the separating
	// space. Usually the enclosing function name; never validated.
	Section  string   `json:"section,omitempty"`
	OldStart int      `json:"oldStart"`
	OldLines int      `json:"oldLines"`
	NewStart int      `json:"newStart"`
	NewLines int      `json:"newLines"`
	Expanded bool     `json:"expanded"`
	Changes  []Change `json:"changes"`
}

// Change is one line of a hunk with the marker stripped. OldLine is 0 for
// additions and NewLine is 0 for deletions; normal lines carry both.
type Change struct {
	Kind     ChangeKind  `json:"kind"`
	Content  string      `json:"content"`
	OldLine  int         `json:"oldLine"`
	NewLine  int         `json:"newLine"`
	WordDiff []WordToken `json:"wordDiff,omitempty"`
}

// WordToken is one token of a word-level annotation. Normal tokens appear
// on both sides of a paired replacement; add/delete tokens only on theirs.
type WordToken struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"`
}
