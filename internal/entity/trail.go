package entity

import "time"

type TrailStatus string

const (
	TrailStatusOK      TrailStatus = "ok"
	TrailStatusMiss    TrailStatus = "miss"
	TrailStatusFailed  TrailStatus = "failed"
	TrailStatusSkipped TrailStatus = "skipped"
)

// TrailEvent is one step of a generation request, returned as debug output
type TrailEvent struct {
	Step   string      `json:"step"`
	Status TrailStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
	At     time.Time   `json:"at"`
}

// Trail is an ordered list of steps attempted by a single operation.
// It is a value: each operation builds its own and attaches it to its result.
type Trail []TrailEvent

func (t Trail) Add(step string, status TrailStatus, detail string) Trail {
	return append(t, TrailEvent{
		Step:   step,
		Status: status,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// Steps returns step names in order
func (t Trail) Steps() []string {
	steps := make([]string, len(t))
	for i, e := range t {
		steps[i] = e.Step
	}
	return steps
}

// Last returns the most recent event, if any
func (t Trail) Last() (TrailEvent, bool) {
	if len(t) == 0 {
		return TrailEvent{}, false
	}
	return t[len(t)-1], true
}
