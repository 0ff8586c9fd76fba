package gather

import (
	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/library"
	"github.com/matzehuels/noticer/pkg/license"
)

// Status is the result category of one dependency.
type Status int

const (
	Resolved Status = iota
	Skipped
	Failed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is what happened to one input dependency.
type Outcome struct {
	Coordinate coord.Coordinate
	UniqueID   string // descriptor id; equals Coordinate.UniqueID() unless the descriptor disagrees
	Status     Status
	Library    library.Library   // set when Resolved
	Licenses   []license.License // set when Resolved
	Reason     string            // why it was skipped
	Err        error             // why it failed
}

func skipped(c coord.Coordinate, id, reason string) Outcome {
	return Outcome{Coordinate: c, UniqueID: id, Status: Skipped, Reason: reason}
}

func failed(c coord.Coordinate, id string, err error) Outcome {
	return Outcome{Coordinate: c, UniqueID: id, Status: Failed, Err: err}
}

// Stats counts outcomes of a run.
type Stats struct {
	Resolved  int `json:"resolved"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Overrides int `json:"overrides"`
}

func (s *Stats) count(o Outcome) {
	switch o.Status {
	case Resolved:
		s.Resolved++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

// Report is the result of [Gatherer.Gather].
type Report struct {
	RunID    string          `json:"runId"`
	Result   *library.Result `json:"result"`
	Stats    Stats           `json:"stats"`
	Outcomes []Outcome       `json:"-"`
	Budget   *license.Budget `json:"budget,omitempty"` // remaining remote budget; nil when fetching was off
}

// Failures returns the failed outcomes in input order.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == Failed {
			out = append(out, o)
		}
	}
	return out
}
