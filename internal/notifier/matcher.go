package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// Match is one schedule row due for notification, joined with the
// anime's title and the owner's contact identity.
type Match struct {
	ScheduleID uint
	UserID     uint
	Email      string
	AnimeName  string
	Slot       Slot
}

// Source finds the enabled schedules stored for an exact slot.
type Source interface {
	DueSchedules(ctx context.Context, slot Slot) ([]Match, error)
}

// Dispatcher delivers one notification for one match. Implementations
// are best-effort sinks; the matcher never retries a failed dispatch.
type Dispatcher interface {
	Dispatch(ctx context.Context, m Match) error
}

// dedupWindow is how long a (schedule, slot) pair is remembered after a
// dispatch. Overlapping ticks or a restart landing exactly on a minute
// boundary would otherwise double-fire the same slot.
const dedupWindow = 2 * time.Minute

// Matcher is the process-lifetime background loop: once per minute it
// computes the slot one minute ahead of wall clock and dispatches a
// notification for every enabled schedule stored at exactly that slot.
// There is no persisted cursor and no catch-up; a minute spent down is
// simply skipped.
type Matcher struct {
	source     Source
	dispatcher Dispatcher
	interval   time.Duration
	now        func() time.Time

	mu   sync.Mutex
	seen map[dedupKey]time.Time

	done chan struct{}
}

type dedupKey struct {
	scheduleID uint
	slot       Slot
}

func NewMatcher(source Source, dispatcher Dispatcher) *Matcher {
	return &Matcher{
		source:     source,
		dispatcher: dispatcher,
		interval:   time.Minute,
		now:        time.Now,
		seen:       make(map[dedupKey]time.Time),
		done:       make(chan struct{}),
	}
}

// Start launches the tick loop. Started once at boot; the only way out
// is Stop at process shutdown.
func (m *Matcher) Start() {
	go m.loop()
	slog.Info("notification matcher started", "interval", m.interval.String())
}

func (m *Matcher) Stop() {
	close(m.done)
	slog.Info("notification matcher stopped")
}

func (m *Matcher) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			// Each tick runs on its own goroutine. A tick slower than
			// the interval overlaps the next one; the dedup set keeps
			// the overlap from double-dispatching a slot.
			go m.tick(context.Background())
		}
	}
}

// tick matches and dispatches one minute's worth of schedules. A failure
// on one match is logged and does not stop the others.
func (m *Matcher) tick(ctx context.Context) {
	now := m.now()
	target := currentSlot(now).Next()

	matches, err := m.source.DueSchedules(ctx, target)
	if err != nil {
		slog.Error("matcher query failed", "error", err, "day", target.Day, "hour", target.Hour, "minute", target.Minute)
		return
	}

	if len(matches) == 0 {
		return
	}

	slog.Info("schedules due for notification", "count", len(matches), "slot", target.Label())

	for _, match := range matches {
		if !m.markDispatched(match.ScheduleID, target) {
			slog.Warn("duplicate dispatch suppressed", "schedule_id", match.ScheduleID, "slot", target.Label())
			continue
		}

		if err := m.dispatcher.Dispatch(ctx, match); err != nil {
			slog.Error("notification dispatch failed",
				"error", err,
				"schedule_id", match.ScheduleID,
				"anime", match.AnimeName,
			)
			sentry.CaptureException(err)
			continue
		}

		slog.Info("notification dispatched", "anime", match.AnimeName, "slot", match.Slot.Label())
	}
}

// markDispatched records the (schedule, slot) pair and reports whether
// it was the first dispatch inside the dedup window. Expired entries
// are pruned on the way in so the set stays small.
func (m *Matcher) markDispatched(scheduleID uint, slot Slot) bool {
	now := m.now()
	key := dedupKey{scheduleID: scheduleID, slot: slot}

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, at := range m.seen {
		if now.Sub(at) > dedupWindow {
			delete(m.seen, k)
		}
	}

	if at, ok := m.seen[key]; ok && now.Sub(at) <= dedupWindow {
		return false
	}

	m.seen[key] = now
	return true
}

// currentSlot maps wall-clock time onto the stored slot encoding:
// time.Weekday counts Sunday=0, schedule rows count Monday=0.
func currentSlot(t time.Time) Slot {
	return Slot{
		Day:    (int(t.Weekday()) + 6) % 7,
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}
