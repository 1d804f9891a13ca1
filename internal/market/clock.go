// Package market provides the pure wall-clock classification for the 2D
// market: whether the market is open at a given local time, and which session
// (morning or evening) a time belongs to. It holds no state; callers query it
// fresh for every placement.
package market

import "time"

// State is the market admission state at a point in time.
type State string

const (
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// Session identifies which of the day's two result draws a time belongs to.
type Session string

const (
	SessionMorning Session = "MORNING"
	SessionEvening Session = "EVENING"
)

// Market window boundaries in minutes since local midnight. The market opens
// at 08:00, blacks out while the mid-day result is announced (11:50-12:15),
// and closes for the day at 15:50. Minute 735 (12:15) is the morning/evening
// session split.
const (
	openMinute          = 480
	blackoutStartMinute = 710
	sessionSplitMinute  = 735
	closeMinute         = 950
)

// MinutesSinceMidnight returns the minute-of-day for t in t's own location.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Classify maps a minute-of-day to the market state and session.
func Classify(mins int) (State, Session) {
	return StateOf(mins), SessionOf(mins)
}

// StateOf reports whether the market accepts wagers at the given
// minute-of-day.
func StateOf(mins int) State {
	if (mins >= blackoutStartMinute && mins < sessionSplitMinute) || mins >= closeMinute || mins < openMinute {
		return StateClosed
	}
	return StateOpen
}

// SessionOf classifies a minute-of-day into the morning or evening session.
// Settlement reuses this on the minute value stored on each wager at
// placement time.
func SessionOf(mins int) Session {
	if mins < sessionSplitMinute {
		return SessionMorning
	}
	return SessionEvening
}

// ParseSession validates an operator-supplied session name.
func ParseSession(s string) (Session, bool) {
	switch Session(s) {
	case SessionMorning:
		return SessionMorning, true
	case SessionEvening:
		return SessionEvening, true
	}
	return "", false
}

// Clock supplies the current time in the market's local timezone. It is an
// interface so tests can pin the clock.
type Clock interface {
	Now() time.Time
}

// LocationClock is the production Clock, reading the system time in a fixed
// location.
type LocationClock struct {
	loc *time.Location
}

// NewLocationClock creates a Clock for the given location.
func NewLocationClock(loc *time.Location) *LocationClock {
	return &LocationClock{loc: loc}
}

// Now returns the current time in the clock's location.
func (c *LocationClock) Now() time.Time {
	return time.Now().In(c.loc)
}
