package domain

import "time"

// Report rows are plain SQL aggregation results.

type DailyReportRow struct {
	Day            time.Time `json:"day"`
	TotalVisits    int64     `json:"totalVisits"`
	ActiveVisits   int64     `json:"activeVisits"`
	UniqueVisitors int64     `json:"uniqueVisitors"`
}

type WeeklyReportRow struct {
	WeekStart   time.Time `json:"weekStart"`
	TotalVisits int64     `json:"totalVisits"`
	AvgDuration float64   `json:"avgDurationSeconds"`
}

type AccessSummaryRow struct {
	Department string `json:"department"`
	Granted    int64  `json:"granted"`
	Denied     int64  `json:"denied"`
}

type FrequentVisitorRow struct {
	VisitorID      int64     `json:"visitorId"`
	DocumentNumber string    `json:"documentNumber"`
	FullName       string    `json:"fullName"`
	Company        string    `json:"company,omitempty"`
	VisitCount     int64     `json:"visitCount"`
	LastVisitAt    time.Time `json:"lastVisitAt"`
}
