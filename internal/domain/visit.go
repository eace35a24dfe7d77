package domain

import (
	"fmt"
	"time"
)

type VisitStatus string

const (
	VisitActive    VisitStatus = "active"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
)

func ParseVisitStatus(s string) (VisitStatus, bool) {
	switch VisitStatus(s) {
	case VisitActive, VisitCompleted, VisitCancelled:
		return VisitStatus(s), true
	default:
		return "", false
	}
}

// Visit is one timestamped stay of a Visitor on premises.
// Invariant: CheckOutAt is nil exactly while Status is active.
type Visit struct {
	ID             int64       `json:"id"`
	VisitorID      int64       `json:"visitorId"`
	HostName       string      `json:"hostName"`
	Department     string      `json:"department"`
	Purpose        string      `json:"purpose"`
	Status         VisitStatus `json:"status"`
	AccessAreas    []string    `json:"accessAreas"`
	CheckInAt      time.Time   `json:"checkInAt"`
	CheckOutAt     *time.Time  `json:"checkOutAt,omitempty"`
	StickerPrinted bool        `json:"stickerPrinted"`
	BadgeToken     string      `json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Duration is live for active visits and frozen at checkout otherwise.
func (v *Visit) Duration(now time.Time) time.Duration {
	end := now
	if v.CheckOutAt != nil {
		end = *v.CheckOutAt
	}
	d := end.Sub(v.CheckInAt)
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders "{h}h {m}m {s}s", dropping leading zero units.
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// VisitDTO is the externally exposed visit shape, including the
// derived duration fields.
type VisitDTO struct {
	ID                int64      `json:"id"`
	VisitorID         int64      `json:"visitorId"`
	HostName          string     `json:"hostName"`
	Department        string     `json:"department"`
	Purpose           string     `json:"purpose"`
	Status            string     `json:"status"`
	AccessAreas       []string   `json:"accessAreas"`
	CheckInAt         time.Time  `json:"checkInAt"`
	CheckOutAt        *time.Time `json:"checkOutAt,omitempty"`
	StickerPrinted    bool       `json:"stickerPrinted"`
	DurationSeconds   int64      `json:"durationSeconds"`
	DurationFormatted string     `json:"durationFormatted"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (v *Visit) DTO(now time.Time) VisitDTO {
	d := v.Duration(now)
	areas := v.AccessAreas
	if areas == nil {
		areas = []string{}
	}
	return VisitDTO{
		ID:                v.ID,
		VisitorID:         v.VisitorID,
		HostName:          v.HostName,
		Department:        v.Department,
		Purpose:           v.Purpose,
		Status:            string(v.Status),
		AccessAreas:       areas,
		CheckInAt:         v.CheckInAt,
		CheckOutAt:        v.CheckOutAt,
		StickerPrinted:    v.StickerPrinted,
		DurationSeconds:   int64(d.Seconds()),
		DurationFormatted: FormatDuration(d),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}
