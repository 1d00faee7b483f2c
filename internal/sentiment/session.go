package sentiment

import (
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

type Session string

const (
	SessionPre     Session = "pre-market"
	SessionRegular Session = "regular"
	SessionAfter   Session = "after-hours"
	SessionClosed  Session = "closed"
)

// SessionAt reports the US equity session in effect at t. Exchange holidays
// are not modelled.
func SessionAt(t time.Time) Session {
	n := t.In(model.NewYork)
	if n.Weekday() == time.Saturday || n.Weekday() == time.Sunday {
		return SessionClosed
	}
	minutes := n.Hour()*60 + n.Minute()
	switch {
	case minutes >= 4*60 && minutes < 9*60+30:
		return SessionPre
	case minutes >= 9*60+30 && minutes < 16*60:
		return SessionRegular
	case minutes >= 16*60 && minutes < 20*60:
		return SessionAfter
	default:
		return SessionClosed
	}
}

// MarketContext is the default session score: regular hours lift sentiment,
// weekday off-hours dampen it a little and weekends dampen it more.
func MarketContext(t time.Time) float64 {
	if wd := t.In(model.NewYork).Weekday(); wd == time.Saturday || wd == time.Sunday {
		return -0.5
	}
	if SessionAt(t) == SessionRegular {
		return 0.5
	}
	return -0.2
}
