package domain

type OutcomeKind int

const (
	Copied OutcomeKind = iota
	SkippedUpToDate
	SkippedUserDeclined
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Copied:
		return "copied"
	case SkippedUpToDate:
		return "up-to-date"
	case SkippedUserDeclined:
		return "declined"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one copy decision. Err is set only for Failed.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Report aggregates outcome counts over one run. Used for the summary and
// the TUI; never persisted.
type Report struct {
	Copied   int
	UpToDate int
	Declined int
	Failed   int
	Cycles   int
	Dirs     int
}

func (r *Report) Record(o Outcome) {
	switch o.Kind {
	case Copied:
		r.Copied++
	case SkippedUpToDate:
		r.UpToDate++
	case SkippedUserDeclined:
		r.Declined++
	case Failed:
		r.Failed++
	}
}
