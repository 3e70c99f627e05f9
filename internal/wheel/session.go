package wheel

import (
	"context"
	"sync"
	"time"
)

// Deferred is a single-shot task that can be cancelled before it fires.
type Deferred struct {
	timer *time.Timer
}

// After runs fn once d has elapsed, on its own goroutine.
func After(d time.Duration, fn func()) *Deferred {
	return &Deferred{timer: time.AfterFunc(d, fn)}
}

// Cancel stops the task. It reports false if the task already ran.
func (d *Deferred) Cancel() bool {
	if d == nil {
		return false
	}
	return d.timer.Stop()
}

// GenerateFunc fetches labels for a theme.
type GenerateFunc func(ctx context.Context, theme string) ([]string, error)

// Session drives a Machine without a UI: settles fire from Deferred timers
// and generation runs on a goroutine. All dispatches are serialised.
type Session struct {
	mu       sync.Mutex
	m        *Machine
	pending  map[Token]*Deferred
	changed  chan struct{}
	closed   bool
	generate GenerateFunc
	notices  func(Notice)

	ctx    context.Context
	cancel context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithGenerator wires the theme generator used for StartGeneration.
func WithGenerator(fn GenerateFunc) SessionOption {
	return func(s *Session) { s.generate = fn }
}

// WithNotices receives every Notify effect.
func WithNotices(fn func(Notice)) SessionOption {
	return func(s *Session) { s.notices = fn }
}

func NewSession(m *Machine, opts ...SessionOption) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		m:       m,
		pending: make(map[Token]*Deferred),
		changed: make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot of the machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.State()
}

// Spin requests a spin. It reports whether the spin started.
func (s *Session) Spin() bool {
	before := s.State().Token
	s.Dispatch(SpinRequested{})
	return s.State().Token != before
}

// Dispatch feeds ev to the machine and runs the resulting effects.
// It is a no-op after Close.
func (s *Session) Dispatch(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	effects := s.m.Dispatch(ev)
	var notices []Notice
	for _, eff := range effects {
		switch eff := eff.(type) {
		case ScheduleSettle:
			s.schedule(eff)
		case CancelSettle:
			if d, ok := s.pending[eff.Token]; ok {
				d.Cancel()
				delete(s.pending, eff.Token)
			}
		case StartGeneration:
			s.startGeneration(eff)
		case Notify:
			notices = append(notices, eff.Notice)
		}
	}
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	if s.notices != nil {
		for _, n := range notices {
			s.notices(n)
		}
	}
}

// schedule must be called with mu held.
func (s *Session) schedule(eff ScheduleSettle) {
	for tok, d := range s.pending {
		d.Cancel()
		delete(s.pending, tok)
	}
	token := eff.Token
	s.pending[token] = After(eff.After, func() {
		s.mu.Lock()
		delete(s.pending, token)
		s.mu.Unlock()
		s.Dispatch(SpinSettled{Token: token})
	})
}

// startGeneration must be called with mu held.
func (s *Session) startGeneration(eff StartGeneration) {
	if s.generate == nil {
		go s.Dispatch(GenerationFinished{Request: eff.Request, Err: ErrNoGenerator})
		return
	}
	gen, ctx := s.generate, s.ctx
	go func() {
		labels, err := gen(ctx, eff.Theme)
		s.Dispatch(GenerationFinished{Request: eff.Request, Labels: labels, Err: err})
	}()
}

// Wait blocks until the wheel is neither spinning nor generating, or ctx
// is done.
func (s *Session) Wait(ctx context.Context) (State, error) {
	for {
		s.mu.Lock()
		st := s.m.State()
		ch := s.changed
		closed := s.closed
		s.mu.Unlock()

		if closed || (st.Status != Spinning && st.Status != Generating) {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ch:
		}
	}
}

// Close cancels pending settles and in-flight generation. Late results are
// dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for tok, d := range s.pending {
		d.Cancel()
		delete(s.pending, tok)
	}
	s.cancel()
	close(s.changed)
	s.changed = make(chan struct{})
}

// Pending reports how many settles are scheduled.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
