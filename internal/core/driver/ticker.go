package driver

import "time"

// Ticker delivers one value per elapsed interval.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a running ticker.
type TickerFactory func(interval time.Duration) Ticker

type systemTicker struct {
	ticker *time.Ticker
}

// NewSystemTicker wraps time.Ticker.
func NewSystemTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

func (ticker *systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *systemTicker) Stop() {
	ticker.ticker.Stop()
}
