// Package report holds the difference report produced by a comparison run
// and writes it out as the run's single artifact.
package report

// Structural note texts. These strings appear verbatim in reports.
const (
	NoteAdditionalLines         = "Additional lines in deployed file start here"
	NoteMissingLines            = "Missing lines in deployed file start here"
	NoteFileOnlyInOriginal      = "File exists in original but not in deployed"
	NoteDirectoryOnlyInOriginal = "Directory exists in original but not in deployed"
	NoteFileOnlyInDeployed      = "File exists in deployed but not in original"
	NoteDirectoryOnlyInDeployed = "Directory exists in deployed but not in original"
)

// Record is one difference found for a path. It is either a line mismatch
// (Original and Deployed set) or a structural note (Note set). Line is
// 1-based; zero means the record is not tied to a line.
type Record struct {
	Line     int     `json:"line,omitempty" yaml:"line,omitempty"`
	Original *string `json:"original,omitempty" yaml:"original,omitempty"`
	Deployed *string `json:"deployed,omitempty" yaml:"deployed,omitempty"`
	Note     string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Mismatch builds a line mismatch record.
func Mismatch(line int, original, deployed string) Record {
	return Record{Line: line, Original: &original, Deployed: &deployed}
}

// LineNote builds a structural note anchored at a line.
func LineNote(line int, note string) Record {
	return Record{Line: line, Note: note}
}

// Note builds a structural note with no line.
func Note(note string) Record {
	return Record{Note: note}
}

// IsNote reports whether r is a structural note.
func (r Record) IsNote() bool {
	return r.Note != ""
}

// OriginalText returns the original line of a mismatch, or "" for notes.
func (r Record) OriginalText() string {
	if r.Original == nil {
		return ""
	}
	return *r.Original
}

// DeployedText returns the deployed line of a mismatch, or "" for notes.
func (r Record) DeployedText() string {
	if r.Deployed == nil {
		return ""
	}
	return *r.Deployed
}
