// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package usage aggregates the append-only cost ledger into per-day
// summaries for the usage dashboard.
package usage

import (
	"sort"
	"time"

	"pixyo/internal/models"
)

// LookbackDays is the fixed self-service reporting window.
const LookbackDays = 90

// DayUsage is the rollup for one UTC calendar day.
type DayUsage struct {
	Date    string  `json:"date"` // "2006-01-02"
	CostEUR float64 `json:"cost_eur"`
	Calls   int     `json:"calls"`
}

// Summary is the aggregated view of a user's ledger window.
type Summary struct {
	Days       []DayUsage `json:"days"`
	TotalEUR   float64    `json:"total_eur"`
	TotalCalls int        `json:"total_calls"`
}

// Aggregate groups ledger entries by UTC calendar day, summing cost and
// counting calls per day, and computes the grand totals. Days are sorted
// descending (most recent first); days with no entries are simply absent
// rather than emitted as zero rows.
func Aggregate(entries []models.UsageLogEntry) Summary {
	byDay := make(map[string]*DayUsage)

	var s Summary
	for _, e := range entries {
		day := e.CreatedAt.UTC().Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DayUsage{Date: day}
			byDay[day] = d
		}
		d.CostEUR += e.CostEUR
		d.Calls++
		s.TotalEUR += e.CostEUR
		s.TotalCalls++
	}

	s.Days = make([]DayUsage, 0, len(byDay))
	for _, d := range byDay {
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool {
		return s.Days[i].Date > s.Days[j].Date
	})

	return s
}

// WindowStart returns the inclusive lower bound of the reporting window
// ending at now.
func WindowStart(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -LookbackDays)
}
