// Package season derives default (year, week) selections from the calendar.
//
// The college football season opens around August 24 and runs at most 15
// weeks, with week 15 standing in for the postseason. January through July is
// the offseason of the previous calendar year's season.
package season

import "time"

// Season calendar constants.
const (
	// PostseasonWeek is the terminal week index of a completed season.
	PostseasonWeek = 15

	seasonStartDay = 24
	daysPerWeek    = 7
)

// Resolve returns the default (year, week) for now. Deterministic; callers
// inject a fixed clock in tests.
func Resolve(now time.Time) (year, week int) {
	year = now.Year()

	// Jan-Jul is the offseason of the previous year's season.
	if now.Month() < time.August {
		return year - 1, PostseasonWeek
	}

	start := time.Date(year, time.August, seasonStartDay, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		return year, 1
	}

	days := int(now.Sub(start).Hours()) / 24
	week = days/daysPerWeek + 1
	if week > PostseasonWeek {
		week = PostseasonWeek
	}
	return year, week
}

// Years returns the last n season years relative to now, newest first.
func Years(now time.Time, n int) []int {
	if n < 1 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = now.Year() - i
	}
	return years
}

// DefaultWeeks returns the full selectable week range 1..max.
func DefaultWeeks(max int) []int {
	if max < 1 {
		max = PostseasonWeek
	}
	weeks := make([]int, max)
	for i := range weeks {
		weeks[i] = i + 1
	}
	return weeks
}
