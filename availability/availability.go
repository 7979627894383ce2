// Package availability gates ordering behind the canteen's daily open
// hours and derives the countdown shown on the home banner. Pure
// time-of-day arithmetic over the device clock; windows do not wrap past
// midnight (ClosesAt <= OpensAt means the canteen never reaches "open").
package availability

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen        Status = "open"
	StatusOpeningSoon Status = "opening-soon"
	StatusClosed      Status = "closed"
)

// Window is the configured daily open/close pair, "HH:MM" 24h.
type Window struct {
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

// StatusAt compares now's time-of-day against the window:
// strictly before OpensAt -> opening-soon, at or after ClosesAt -> closed,
// otherwise open.
func (w Window) StatusAt(now time.Time) Status {
	mins := now.Hour()*60 + now.Minute()
	open, err1 := parseHHMM(w.OpensAt)
	closeAt, err2 := parseHHMM(w.ClosesAt)
	if err1 != nil || err2 != nil {
		return StatusClosed
	}
	switch {
	case mins >= closeAt:
		return StatusClosed
	case mins < open:
		return StatusOpeningSoon
	default:
		return StatusOpen
	}
}

// NextBoundary is the instant the status next changes: the opening time
// while opening-soon, the closing time while open. After close there is no
// boundary left today, so ok is false.
func (w Window) NextBoundary(now time.Time) (time.Time, bool) {
	switch w.StatusAt(now) {
	case StatusOpeningSoon:
		return w.at(now, w.OpensAt), true
	case StatusOpen:
		return w.at(now, w.ClosesAt), true
	default:
		return time.Time{}, false
	}
}

// Countdown renders "Xh Ym Zs" until the next boundary, or "Closed" once
// the canteen has closed for the day.
func (w Window) Countdown(now time.Time) string {
	boundary, ok := w.NextBoundary(now)
	if !ok {
		return "Closed"
	}
	d := boundary.Sub(now)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

func (w Window) at(now time.Time, hhmm string) time.Time {
	mins, err := parseHHMM(hhmm)
	if err != nil {
		return now
	}
	return time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, now.Location())
}

func parseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad time of day: %q", s)
	}
	return h*60 + m, nil
}
