package wheel

import (
	"errors"
	"time"

	"github.com/Makepad-fr/spinwin/internal/model"
)

// DefaultSpinDuration is how long a spin animates before it resolves.
const DefaultSpinDuration = 5 * time.Second

var (
	// ErrNoLabels reports a generation that finished without any label.
	ErrNoLabels = errors.New("no labels generated")
	// ErrNoGenerator reports a generation request with nothing to serve it.
	ErrNoGenerator = errors.New("no generator configured")
)

// Status is the spin state.
type Status int

const (
	Idle Status = iota
	Spinning
	ResultShown
	Generating
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case ResultShown:
		return "result"
	case Generating:
		return "generating"
	}
	return "unknown"
}

// Token identifies one spin. A settle carrying an older token is stale.
type Token uint64

// NoticeKind classifies a user-facing message.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeValidation
	NoticeFailure
)

// Notice is a transient message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Winner is the resolved slice. Only set in ResultShown.
type Winner struct {
	Index int
	Item  model.Item
}

// State is everything the wheel knows. It is a value; Transition returns a
// new one.
type State struct {
	Status   Status
	Items    model.List
	Rotation float64
	Winner   *Winner
	Token    Token  // latest spin
	Request  uint64 // latest generation request
	Notice   Notice
}

// NewState starts idle at rotation 0.
func NewState(items model.List) State {
	return State{Status: Idle, Items: items}
}

// CanSpin reports whether a spin request would be accepted.
func (s State) CanSpin() bool {
	return (s.Status == Idle || s.Status == ResultShown) && s.Items.Len() >= model.MinItems
}

// Event is an input to Transition.
type Event interface{ event() }

type (
	SpinRequested struct{}
	SpinSettled   struct{ Token Token }

	ResultDismissed struct{}

	ItemAdded     struct{ Label string }
	ItemRemoved   struct{ ID string }
	ItemsReplaced struct{ Labels []string }

	GenerationRequested struct{ Theme string }
	GenerationFinished  struct {
		Request uint64
		Labels  []string
		Err     error
	}
	GenerationAbandoned struct{}
)

func (SpinRequested) event()       {}
func (SpinSettled) event()         {}
func (ResultDismissed) event()     {}
func (ItemAdded) event()           {}
func (ItemRemoved) event()         {}
func (ItemsReplaced) event()       {}
func (GenerationRequested) event() {}
func (GenerationFinished) event()  {}
func (GenerationAbandoned) event() {}

// Effect is work the driver must carry out after a transition.
type Effect interface{ effect() }

type (
	// ScheduleSettle asks for SpinSettled{Token} after the animation.
	ScheduleSettle struct {
		Token Token
		After time.Duration
	}
	// CancelSettle drops a pending settle.
	CancelSettle struct{ Token Token }
	// StartGeneration asks for the theme to be sent to the generator.
	StartGeneration struct {
		Request uint64
		Theme   string
	}
	// Notify surfaces a message.
	Notify struct{ Notice Notice }
)

func (ScheduleSettle) effect()  {}
func (CancelSettle) effect()    {}
func (StartGeneration) effect() {}
func (Notify) effect()          {}
