package timeutil

import (
	"time"
)

// ShopTZ is the shop's local timezone. All calendar math (report ranges,
// daily breakdowns, "today") happens in this zone.
var ShopTZ = loadShopTZ()

func loadShopTZ() *time.Location {
	loc, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		// Fallback: fixed CET if the tzdata is unavailable
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// Now returns the current time in the shop timezone.
func Now() time.Time {
	return time.Now().In(ShopTZ)
}

// StartOfDay returns 00:00:00 in the shop timezone for the given time.
func StartOfDay(t time.Time) time.Time {
	local := t.In(ShopTZ)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ShopTZ)
}

// EndOfDay returns 23:59:59.999999999 in the shop timezone for the given time.
func EndOfDay(t time.Time) time.Time {
	local := t.In(ShopTZ)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, ShopTZ)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
