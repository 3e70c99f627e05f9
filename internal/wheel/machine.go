package wheel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Makepad-fr/spinwin/internal/model"
)

// User-facing texts for rejected input.
const (
	MsgEmptyLabel      = "Label cannot be empty."
	MsgMinimumItems    = "Keep at least 2 items!"
	MsgTooFewToSpin    = "Add at least 2 items to spin."
	MsgAlreadyRunning  = "Already generating, hang on."
	MsgWaitForWheel    = "Wait for the wheel to stop."
	MsgWaitForItems    = "Wait for the new items first."
	MsgGenerationReady = "Wheel loaded with %d items."
)

// Env carries what Transition needs from the outside world.
type Env struct {
	// Spin returns the next cumulative rotation.
	Spin func(current float64) float64
	// Duration is the animation length a settle is scheduled after.
	Duration time.Duration
	// Explain turns a generation error into a user message.
	Explain func(error) string
}

// Transition is the reducer: it applies ev to s and returns the new state
// and the effects to run. Rejected events return s unchanged and no effects.
func Transition(s State, ev Event, env Env) (State, []Effect) {
	switch ev := ev.(type) {
	case SpinRequested:
		switch s.Status {
		case Spinning:
			return s, nil
		case Generating:
			return notify(s, NoticeValidation, MsgWaitForItems)
		}
		if s.Items.Len() < model.MinItems {
			return notify(s, NoticeValidation, MsgTooFewToSpin)
		}
		s.Notice = Notice{}
		s.Token++
		s.Status = Spinning
		s.Winner = nil
		s.Rotation = env.Spin(s.Rotation)
		return s, []Effect{ScheduleSettle{Token: s.Token, After: env.Duration}}

	case SpinSettled:
		if s.Status != Spinning || ev.Token != s.Token {
			return s, nil
		}
		idx := ResolveWinner(s.Rotation, s.Items.Len())
		s.Notice = Notice{}
		if idx < 0 {
			s.Status = Idle
			return s, nil
		}
		s.Status = ResultShown
		s.Winner = &Winner{Index: idx, Item: s.Items.At(idx)}
		return s, nil

	case ResultDismissed:
		if s.Status != ResultShown {
			return s, nil
		}
		s.Status = Idle
		s.Winner = nil
		s.Notice = Notice{}
		return s, nil

	case ItemAdded:
		next, _, err := s.Items.Add(ev.Label)
		if err != nil {
			return notify(s, NoticeValidation, MsgEmptyLabel)
		}
		s.Items = next
		s.Notice = Notice{}
		return afterMutation(s)

	case ItemRemoved:
		next, err := s.Items.Remove(ev.ID)
		switch {
		case errors.Is(err, model.ErrMinimumItems):
			return notify(s, NoticeValidation, MsgMinimumItems)
		case err != nil:
			return s, nil
		}
		s.Items = next
		s.Notice = Notice{}
		return afterMutation(s)

	case ItemsReplaced:
		if len(model.Compact(ev.Labels)) == 0 {
			return notify(s, NoticeValidation, MsgEmptyLabel)
		}
		s.Items = s.Items.ReplaceAll(ev.Labels)
		s.Notice = Notice{}
		return afterMutation(s)

	case GenerationRequested:
		theme := strings.TrimSpace(ev.Theme)
		if theme == "" {
			return s, nil
		}
		switch s.Status {
		case Generating:
			return notify(s, NoticeValidation, MsgAlreadyRunning)
		case Spinning:
			return notify(s, NoticeValidation, MsgWaitForWheel)
		}
		s.Request++
		s.Status = Generating
		s.Winner = nil
		s.Notice = Notice{}
		return s, []Effect{StartGeneration{Request: s.Request, Theme: theme}}

	case GenerationFinished:
		// Late or abandoned responses are dropped.
		if s.Status != Generating || ev.Request != s.Request {
			return s, nil
		}
		s.Status = Idle
		labels := model.Compact(ev.Labels)
		err := ev.Err
		if err == nil && len(labels) == 0 {
			err = ErrNoLabels
		}
		if err != nil {
			return notify(s, NoticeFailure, explain(env, err))
		}
		s.Items = s.Items.ReplaceAll(labels)
		return notify(s, NoticeInfo, fmt.Sprintf(MsgGenerationReady, len(labels)))

	case GenerationAbandoned:
		if s.Status != Generating {
			return s, nil
		}
		s.Status = Idle
		s.Notice = Notice{}
		return s, nil
	}
	return s, nil
}

// afterMutation keeps the winner and any pending settle consistent with a
// changed list: a running spin is cancelled and a shown result is cleared.
func afterMutation(s State) (State, []Effect) {
	switch s.Status {
	case Spinning:
		s.Status = Idle
		s.Winner = nil
		return s, []Effect{CancelSettle{Token: s.Token}}
	case ResultShown:
		s.Status = Idle
		s.Winner = nil
	}
	return s, nil
}

func notify(s State, kind NoticeKind, text string) (State, []Effect) {
	s.Notice = Notice{Kind: kind, Text: text}
	return s, []Effect{Notify{Notice: s.Notice}}
}

func explain(env Env, err error) string {
	if env.Explain != nil {
		return env.Explain(err)
	}
	return err.Error()
}

// Machine owns a State and feeds events through Transition.
// It is not safe for concurrent use; Session adds locking.
type Machine struct {
	state    State
	rand     *Randomizer
	duration time.Duration
	explain  func(error) string
	log      *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

func WithRandomizer(r *Randomizer) Option { return func(m *Machine) { m.rand = r } }

func WithDuration(d time.Duration) Option { return func(m *Machine) { m.duration = d } }

func WithExplain(fn func(error) string) Option { return func(m *Machine) { m.explain = fn } }

func WithLogger(l *slog.Logger) Option { return func(m *Machine) { m.log = l } }

func NewMachine(items model.List, opts ...Option) *Machine {
	m := &Machine{
		state:    NewState(items),
		duration: DefaultSpinDuration,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	if m.rand == nil {
		m.rand = NewRandomizer(nil)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Duration is the animation length. Renderers must animate over exactly this.
func (m *Machine) Duration() time.Duration { return m.duration }

// Dispatch applies ev and returns the effects the caller must run.
func (m *Machine) Dispatch(ev Event) []Effect {
	from := m.state
	next, effects := Transition(from, ev, Env{
		Spin:     m.rand.NextRotation,
		Duration: m.duration,
		Explain:  m.explain,
	})
	m.state = next
	if from.Status != next.Status {
		m.log.Debug("wheel transition",
			"event", fmt.Sprintf("%T", ev),
			"from", from.Status.String(),
			"to", next.Status.String(),
			"token", next.Token,
			"rotation", next.Rotation,
		)
	}
	if next.Winner != nil && from.Winner == nil {
		m.log.Debug("spin resolved",
			"token", next.Token,
			"index", next.Winner.Index,
			"label", next.Winner.Item.Label,
		)
	}
	return effects
}
