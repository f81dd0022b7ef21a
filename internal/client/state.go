// Package client holds the UI-facing state machine and the HTTP API client.
// The machine makes illegal state combinations unrepresentable: every
// transition goes through an explicit table.
package client

import (
	"fmt"

	"betterfeedback/internal/domain/feedback"
)

// State of the analyze flow.
type State int

const (
	StateIdle State = iota
	StateReady
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event driving the analyze flow.
type Event int

const (
	EventUpload Event = iota
	EventClear
	EventAnalyze
	EventResolveOK
	EventResolveErr
)

func (e Event) String() string {
	switch e {
	case EventUpload:
		return "upload"
	case EventClear:
		return "clear"
	case EventAnalyze:
		return "analyze"
	case EventResolveOK:
		return "resolve-ok"
	case EventResolveErr:
		return "resolve-err"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// View toggles between the analyze dashboard and the history browser.
type View int

const (
	ViewAnalyze View = iota
	ViewHistory
)

// transitions is the full table. Absent entries are illegal. Analyze is
// only enabled in ready/success/error (success and error re-trigger back
// to loading); a new upload re-enters ready from success or error.
// Clearing while already idle is a no-op, not an error.
var transitions = map[State]map[Event]State{
	StateIdle: {
		EventUpload: StateReady,
		EventClear:  StateIdle,
	},
	StateReady: {
		EventUpload:  StateReady,
		EventClear:   StateIdle,
		EventAnalyze: StateLoading,
	},
	StateLoading: {
		EventResolveOK:  StateSuccess,
		EventResolveErr: StateError,
	},
	StateSuccess: {
		EventUpload:  StateReady,
		EventClear:   StateIdle,
		EventAnalyze: StateLoading,
	},
	StateError: {
		EventUpload:  StateReady,
		EventClear:   StateIdle,
		EventAnalyze: StateLoading,
	},
}

// TransitionError reports an event that is not legal in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %s not allowed in state %s", e.Event, e.From)
}

// Machine drives the upload → ready → loading → success/error flow plus the
// analyze/history view toggle. Not safe for concurrent use; a UI session
// owns exactly one machine, which also enforces the single-in-flight-request
// rule (EventAnalyze is illegal while in loading).
type Machine struct {
	state State
	view  View

	// Text is the uploaded content handed to the analyzer.
	Text string
	// Items/SkippedCount hold the last successful result.
	Items        []feedback.FeedbackItem
	SkippedCount int
	// ErrMsg holds the banner text while in StateError.
	ErrMsg string
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle, view: ViewAnalyze}
}

func (m *Machine) State() State { return m.state }
func (m *Machine) View() View   { return m.view }

// Step applies one event from the transition table.
func (m *Machine) Step(e Event) error {
	next, ok := transitions[m.state][e]
	if !ok {
		return &TransitionError{From: m.state, Event: e}
	}
	m.state = next
	return nil
}

// CanAnalyze reports whether the analyze action is enabled right now.
func (m *Machine) CanAnalyze() bool {
	_, ok := transitions[m.state][EventAnalyze]
	return ok
}

// Upload loads new content. Empty content counts as clearing the upload.
func (m *Machine) Upload(text string) error {
	if text == "" {
		if err := m.Step(EventClear); err != nil {
			return err
		}
		m.Text = ""
		return nil
	}
	if err := m.Step(EventUpload); err != nil {
		return err
	}
	m.Text = text
	return nil
}

// Analyze marks the request in flight.
func (m *Machine) Analyze() error {
	return m.Step(EventAnalyze)
}

// Resolve applies the outcome of an analyze request. A response with a
// non-nil error resolves to the error state, everything else to success.
func (m *Machine) Resolve(resp feedback.AnalyzeResponse) error {
	if resp.Error != nil {
		if err := m.Step(EventResolveErr); err != nil {
			return err
		}
		m.ErrMsg = *resp.Error
		m.Items = nil
		m.SkippedCount = 0
		return nil
	}
	if err := m.Step(EventResolveOK); err != nil {
		return err
	}
	m.Items = resp.Items
	m.SkippedCount = resp.SkippedCount
	m.ErrMsg = ""
	return nil
}

// Fail resolves an in-flight request with a transport-level error message.
func (m *Machine) Fail(msg string) error {
	if err := m.Step(EventResolveErr); err != nil {
		return err
	}
	m.ErrMsg = msg
	m.Items = nil
	m.SkippedCount = 0
	return nil
}

// ToggleView flips between the analyze and history screens.
func (m *Machine) ToggleView() {
	if m.view == ViewAnalyze {
		m.view = ViewHistory
	} else {
		m.view = ViewAnalyze
	}
}

// RestoreRun injects a stored run's items directly into the success state
// without re-invoking the API. Illegal while a request is in flight.
func (m *Machine) RestoreRun(run *feedback.AnalysisRun) error {
	if m.state == StateLoading {
		return &TransitionError{From: m.state, Event: EventResolveOK}
	}
	m.state = StateSuccess
	m.view = ViewAnalyze
	m.Text = run.InputText
	if m.Text == "" {
		m.Text = run.InputPreview
	}
	m.Items = run.Items
	m.SkippedCount = 0
	m.ErrMsg = ""
	return nil
}
