package migrate

import "time"

// placeholder fills audit cells that have no value, such as the source
// columns of a synthesized item.
const placeholder = "--"

// ItemReport is one audit row: the source identity of an item and what
// became of it.
type ItemReport struct {
	Filename string
	SrcPath  string
	SrcUID   string
	SrcType  string
	SrcState string
	DstPath  string
	DstUID   string
	DstType  string
	DstState string
	LastStep string
	Dropped  bool
}

// reportHeader matches the field order of reportRow.
var reportHeader = []string{
	"filename",
	"src_path", "src_uid", "src_type", "src_state",
	"dst_path", "dst_uid", "dst_type", "dst_state",
	"last_step",
}

func (r ItemReport) row() []string {
	return []string{
		r.Filename,
		r.SrcPath, r.SrcUID, r.SrcType, r.SrcState,
		r.DstPath, r.DstUID, r.DstType, r.DstState,
		r.LastStep,
	}
}

// State accumulates run counters and audit rows. Total starts at the number
// of pending content files and grows by one for every synthesized item, so
// Processed equals Total when the run completes.
type State struct {
	Total     int
	Processed int
	Exported  int
	Dropped   int
	Elapsed   time.Duration

	// ExportedByType tallies retained outcomes by their final portal type.
	ExportedByType map[string]int
	// DroppedByStep tallies dropped outcomes by the audit step name.
	DroppedByStep map[string]int

	// Seen holds the destination UIDs written during the run.
	Seen map[string]struct{}
	// UIDs maps retained and remapped source UIDs to destination UIDs.
	UIDs map[string]string

	Transforms []ItemReport

	// MetadataPath is the consolidated metadata document written at the end.
	MetadataPath string
	// ReportPath is the audit CSV, empty when reporting was disabled.
	ReportPath string
	// Skipped counts content files left out by an incremental run.
	Skipped int
}

func newState(total int) *State {
	return &State{
		Total:          total,
		ExportedByType: make(map[string]int),
		DroppedByStep:  make(map[string]int),
		Seen:           make(map[string]struct{}),
		UIDs:           make(map[string]string),
	}
}
