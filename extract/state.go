package extract

import "fmt"

// State is the phase an Extractor is in.
type State int

const (
	StateInit State = iota
	StateSeekingPeak
	StateFitting
	StatePrewhitening
	StateCheckingTermination
	StateDone
	// StateFailed is entered when a step returns an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSeekingPeak:
		return "seeking peak"
	case StateFitting:
		return "fitting"
	case StatePrewhitening:
		return "prewhitening"
	case StateCheckingTermination:
		return "checking termination"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
