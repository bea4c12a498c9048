package lines

import (
	"errors"
	"sync"
	"time"
)

const (
	DefaultDailyLimit  = 500
	DefaultHourlyLimit = 100
)

var (
	ErrDailyLimit  = errors.New("daily limit reached, try again tomorrow")
	ErrHourlyLimit = errors.New("hourly limit reached, try again later")
)

// Window is the usage of one rolling period.
type Window struct {
	Count   int       `json:"count"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"resetAt"`
}

type Stats struct {
	Daily  Window `json:"daily"`
	Hourly Window `json:"hourly"`
}

// Tracker counts AI requests against daily and hourly limits. Windows follow calendar days and
// hours of the injected clock.
type Tracker struct {
	DailyLimit  int
	HourlyLimit int

	now func() time.Time

	mu          sync.Mutex
	dayStart    time.Time
	hourStart   time.Time
	dailyCount  int
	hourlyCount int
}

// NewTracker returns a tracker using now as its clock; a nil clock means time.Now.
func NewTracker(dailyLimit, hourlyLimit int, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{DailyLimit: dailyLimit, HourlyLimit: hourlyLimit, now: now}
}

// Allow records one request, or returns ErrDailyLimit / ErrHourlyLimit without recording it.
func (t *Tracker) Allow() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roll()
	if t.dailyCount >= t.DailyLimit {
		return ErrDailyLimit
	}
	if t.hourlyCount >= t.HourlyLimit {
		return ErrHourlyLimit
	}
	t.dailyCount++
	t.hourlyCount++
	return nil
}

func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roll()
	return Stats{
		Daily:  Window{Count: t.dailyCount, Limit: t.DailyLimit, ResetAt: t.dayStart.AddDate(0, 0, 1)},
		Hourly: Window{Count: t.hourlyCount, Limit: t.HourlyLimit, ResetAt: t.hourStart.Add(time.Hour)},
	}
}

// roll resets any window the clock has moved past. Callers hold mu.
func (t *Tracker) roll() {
	now := t.now()
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	hour := time.Date(y, m, d, now.Hour(), 0, 0, 0, now.Location())
	if !day.Equal(t.dayStart) {
		t.dayStart = day
		t.dailyCount = 0
	}
	if !hour.Equal(t.hourStart) {
		t.hourStart = hour
		t.hourlyCount = 0
	}
}
