package ledger

import (
	"sync"
	"time"

	"calorie-bot/internal/storage"
)

const dayFormat = "2006-01-02"

// Ledger accumulates per-user kcal totals keyed by UTC calendar day. Every
// mutation rewrites the backing store. The clock is injected so tests can pin
// "today".
type Ledger struct {
	store  storage.Store[map[string]int]
	now    func() time.Time
	mu     sync.Mutex
	totals map[string]map[string]int
}

func New(store storage.Store[map[string]int], now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		store:  store,
		now:    now,
		totals: store.Load(),
	}
}

func (l *Ledger) today() string {
	return l.now().UTC().Format(dayFormat)
}

// Add adds kcal to the user's total for today, creating the row if needed,
// and persists immediately.
func (l *Ledger) Add(user string, kcal int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.totals[user] == nil {
		l.totals[user] = map[string]int{}
	}
	l.totals[user][l.today()] += kcal
	return l.store.Save(l.totals)
}

// Total returns today's running total for the user, zero if no row exists.
func (l *Ledger) Total(user string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals[user][l.today()]
}

// Reset zeroes today's total. A user with no ledger rows at all is left
// untouched: no row is created and nothing is persisted.
func (l *Ledger) Reset(user string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, ok := l.totals[user]
	if !ok {
		return nil
	}
	rows[l.today()] = 0
	return l.store.Save(l.totals)
}
