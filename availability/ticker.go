package availability

import "time"

// Ticker recomputes the window status and countdown once per second and
// pushes them to a callback. Holds no state of its own; stop it when the
// consumer goes away.
type Ticker struct {
	stop chan struct{}
}

// Tick starts a goroutine that calls fn every second with the current
// status and countdown string until Stop is called.
func (w Window) Tick(fn func(Status, string)) *Ticker {
	t := &Ticker{stop: make(chan struct{})}
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-tick.C:
				fn(w.StatusAt(now), w.Countdown(now))
			}
		}
	}()
	return t
}

func (t *Ticker) Stop() {
	close(t.stop)
}
