package model

import (
	"time"
	_ "time/tzdata"
)

// NewYork is the exchange time zone. The zone database is embedded, so it
// resolves the same on hosts without one.
var NewYork = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
