package timer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
)

const (
	StateKeyPrefix = "timer-state:"
	// RestoreWindow bounds how old a persisted active timer may be to be picked up again.
	RestoreWindow = time.Hour

	subscriberBuffer = 64
)

var (
	ErrTimerNotFound  = errors.New("timer not found")
	ErrUnknownCommand = errors.New("unknown timer command")
	ErrManagerClosed  = errors.New("timer manager closed")
)

type request struct {
	kind  MessageType
	reply chan State
}

type countdown struct {
	id   string
	cmds chan request
	done chan struct{}
}

// Manager runs one goroutine per timer and fans out its updates to subscribers.
type Manager struct {
	kv             store.KV
	clock          Clock
	metricsManager *metrics.Manager

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// serializes commands so a restart of the same timer id never interleaves
	handleMu sync.Mutex

	mu     sync.Mutex
	timers map[string]*countdown

	subsMu  sync.RWMutex
	subs    map[int]chan Message
	nextSub int
}

func NewManager(kv store.KV, metricsManager *metrics.Manager) *Manager {
	return NewManagerWithClock(kv, realClock{}, metricsManager)
}

func NewManagerWithClock(kv store.KV, clock Clock, metricsManager *metrics.Manager) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		kv:             kv,
		clock:          clock,
		metricsManager: metricsManager,
		ctx:            ctx,
		cancel:         cancel,
		timers:         make(map[string]*countdown),
		subs:           make(map[int]chan Message),
	}
}

// Subscribe returns a channel receiving every outbound message, and a func to stop receiving.
// A subscriber that falls behind loses messages rather than stalling the timers.
func (m *Manager) Subscribe() (<-chan Message, func()) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Message, subscriberBuffer)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subsMu.Lock()
			delete(m.subs, id)
			m.subsMu.Unlock()
		})
	}
}

func (m *Manager) publish(msg Message) {
	m.subsMu.RLock()
	defer m.subsMu.RUnlock()
	for id, ch := range m.subs {
		select {
		case ch <- msg:
		default:
			log.Warnf("timer: subscriber %d is full, dropping %s for [%s]", id, msg.Type, msg.TimerID)
		}
	}
}

// Handle applies a command. It returns once the owning timer goroutine has processed it.
func (m *Manager) Handle(ctx context.Context, cmd Command) (*State, error) {
	m.handleMu.Lock()
	defer m.handleMu.Unlock()

	if m.ctx.Err() != nil {
		return nil, ErrManagerClosed
	}

	switch cmd.Type {
	case TypeStart:
		return m.start(ctx, cmd)
	case TypePause, TypeResume, TypeStop:
		return m.send(ctx, cmd.TimerID, cmd.Type)
	case TypeSync:
		timers := m.snapshot(ctx)
		m.publish(Message{Type: TypeSync, Timers: timers})
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Type)
	}
}

func (m *Manager) start(ctx context.Context, cmd Command) (*State, error) {
	now := m.clock.Now()
	if cmd.TimerID == "" {
		cmd.TimerID = NewTimerID(now)
	}
	if cmd.Duration <= 0 {
		cmd.Duration = DefaultDuration
	}

	m.mu.Lock()
	_, exists := m.timers[cmd.TimerID]
	m.mu.Unlock()
	if exists {
		if _, err := m.send(ctx, cmd.TimerID, TypeStop); err != nil && !errors.Is(err, ErrTimerNotFound) {
			return nil, fmt.Errorf("replace timer %s: %w", cmd.TimerID, err)
		}
	}

	st := State{
		TimerID:       cmd.TimerID,
		Duration:      cmd.Duration,
		RemainingTime: cmd.Duration,
		IsActive:      true,
		StartedAt:     now,
		EndTime:       now.Add(time.Duration(cmd.Duration) * time.Second),
	}
	m.persist(ctx, &st)
	m.spawn(st)

	log.Debugf("timer [%s] started for %d s", st.TimerID, st.Duration)
	m.publish(Message{Type: TypeUpdate, TimerID: st.TimerID, RemainingTime: st.RemainingTime})
	return &st, nil
}

func (m *Manager) send(ctx context.Context, timerID string, kind MessageType) (*State, error) {
	m.mu.Lock()
	c, ok := m.timers[timerID]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTimerNotFound, timerID)
	}

	req := request{kind: kind, reply: make(chan State, 1)}
	select {
	case c.cmds <- req:
	case <-c.done:
		return nil, fmt.Errorf("%w: %s", ErrTimerNotFound, timerID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// a received request is always answered before the goroutine exits
	st := <-req.reply
	return &st, nil
}

func (m *Manager) snapshot(ctx context.Context) []State {
	m.mu.Lock()
	ids := make([]string, 0, len(m.timers))
	for id := range m.timers {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	slices.Sort(ids)

	states := make([]State, 0, len(ids))
	for _, id := range ids {
		st, err := m.send(ctx, id, TypeSync)
		if err != nil {
			continue
		}
		states = append(states, *st)
	}
	return states
}

// Timers returns the current state of every running or paused timer, ordered by id.
func (m *Manager) Timers(ctx context.Context) []State {
	m.handleMu.Lock()
	defer m.handleMu.Unlock()
	return m.snapshot(ctx)
}

func (m *Manager) spawn(st State) {
	c := &countdown{
		id:   st.TimerID,
		cmds: make(chan request),
		done: make(chan struct{}),
	}

	m.mu.Lock()
	m.timers[c.id] = c
	m.mu.Unlock()

	m.metricsManager.GaugeActiveTimers.Inc()
	m.wg.Add(1)
	go m.run(c, st)
}

func (m *Manager) run(c *countdown, st State) {
	ticker := m.clock.NewTicker(time.Second)
	defer func() {
		ticker.Stop()
		m.mu.Lock()
		if m.timers[c.id] == c {
			delete(m.timers, c.id)
		}
		m.mu.Unlock()
		close(c.done)
		m.metricsManager.GaugeActiveTimers.Dec()
		m.wg.Done()
	}()

	last := st.RemainingTime
	for {
		select {
		case <-m.ctx.Done():
			// persisted state is kept so the timer can be restored on the next start
			return

		case req := <-c.cmds:
			now := m.clock.Now()
			switch req.kind {
			case TypePause:
				if st.IsActive {
					st.RemainingTime = remainingSeconds(st.EndTime, now)
					st.IsActive = false
					st.IsPaused = true
					m.persist(m.ctx, &st)
				}
			case TypeResume:
				if st.IsPaused {
					st.EndTime = now.Add(time.Duration(st.RemainingTime) * time.Second)
					st.IsActive = true
					st.IsPaused = false
					m.persist(m.ctx, &st)
				}
			case TypeStop:
				st.IsActive = false
				st.IsPaused = false
				m.forget(m.ctx, st.TimerID)
				req.reply <- st
				log.Debugf("timer [%s] stopped", st.TimerID)
				return
			case TypeSync:
				if st.IsActive {
					st.RemainingTime = remainingSeconds(st.EndTime, now)
				}
			}
			req.reply <- st

		case tick := <-ticker.C():
			if !st.IsActive {
				continue
			}
			remaining := remainingSeconds(st.EndTime, tick)
			if remaining >= last {
				continue
			}
			last = remaining
			st.RemainingTime = remaining

			m.publish(Message{
				Type:          TypeUpdate,
				TimerID:       st.TimerID,
				RemainingTime: remaining,
				IsComplete:    remaining == 0,
			})
			if remaining == 0 {
				m.forget(m.ctx, st.TimerID)
				m.publish(Message{Type: TypeComplete, TimerID: st.TimerID, IsComplete: true})
				log.Debugf("timer [%s] complete", st.TimerID)
				return
			}
		}
	}
}

func (m *Manager) persist(ctx context.Context, st *State) {
	st.SavedAt = m.clock.Now()
	store.NewSingleton[State](m.kv, StateKeyPrefix+st.TimerID).Save(ctx, st)
}

func (m *Manager) forget(ctx context.Context, timerID string) {
	store.NewSingleton[State](m.kv, StateKeyPrefix+timerID).Clear(ctx)
}

// Restore resumes persisted timers that were active and saved within RestoreWindow.
// Every other persisted timer state is removed. Returns the number of restored timers.
func (m *Manager) Restore(ctx context.Context) (int, error) {
	keys, err := m.kv.Keys(ctx, StateKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list timer states: %w", err)
	}

	m.handleMu.Lock()
	defer m.handleMu.Unlock()

	if m.ctx.Err() != nil {
		return 0, ErrManagerClosed
	}

	now := m.clock.Now()
	restored := 0
	for _, key := range keys {
		doc := store.NewSingleton[State](m.kv, key)
		st := doc.Load(ctx)
		if st == nil || !st.IsActive || now.Sub(st.SavedAt) >= RestoreWindow {
			doc.Clear(ctx)
			continue
		}

		id := strings.TrimPrefix(key, StateKeyPrefix)
		if st.TimerID == "" {
			st.TimerID = id
		}

		m.mu.Lock()
		_, running := m.timers[st.TimerID]
		m.mu.Unlock()
		if running {
			continue
		}

		st.RemainingTime = remainingSeconds(st.EndTime, now)
		if st.RemainingTime == 0 {
			doc.Clear(ctx)
			m.publish(Message{Type: TypeComplete, TimerID: st.TimerID, IsComplete: true})
			continue
		}

		m.spawn(*st)
		restored++
		log.Debugf("timer [%s] restored with %s left", st.TimerID, FormatTime(st.RemainingTime))
	}

	return restored, nil
}

// Shutdown stops every timer goroutine, leaving persisted state in place.
func (m *Manager) Shutdown() {
	m.handleMu.Lock()
	m.cancel()
	m.handleMu.Unlock()
	m.wg.Wait()

	m.subsMu.Lock()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
	m.subsMu.Unlock()
}
