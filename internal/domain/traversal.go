package domain

import "time"

// TraversalContext is the immutable configuration for one copy run. Both
// roots are absolute, cleaned paths; SourceRoot must be an existing directory
// and TargetRoot must be a directory (created beforehand if absent).
type TraversalContext struct {
	SourceRoot         string
	TargetRoot         string
	PromptOnOverwrite  bool
	PreserveAttributes bool
	DryRun             bool
}

type EntryKind int

const (
	DirEnter EntryKind = iota
	DirLeave
	File
)

func (k EntryKind) String() string {
	switch k {
	case DirEnter:
		return "dir-enter"
	case DirLeave:
		return "dir-leave"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Entry is one node discovered during the walk. Entries are produced and
// consumed one at a time; they carry no identity beyond the traversal.
type Entry struct {
	RelativePath string
	Kind         EntryKind
	ModTime      time.Time
}
