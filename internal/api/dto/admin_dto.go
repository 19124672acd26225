package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// PriorityCounts breaks tickets down by priority.
type PriorityCounts struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
	Urgent int64 `json:"urgent"`
}

// CategoryCounts breaks tickets down by category.
type CategoryCounts struct {
	Technical int64 `json:"technical"`
	Billing   int64 `json:"billing"`
	Feature   int64 `json:"feature"`
	Bug       int64 `json:"bug"`
	Other     int64 `json:"other"`
}

// DashboardStatsResponse is the admin dashboard payload.
type DashboardStatsResponse struct {
	Tickets       TicketStats    `json:"tickets"`
	Priority      PriorityCounts `json:"priority"`
	Category      CategoryCounts `json:"category"`
	Users         int64          `json:"users"`
	RecentTickets int64          `json:"recent_tickets"`
}

// NewDashboardStatsResponse maps domain aggregates.
func NewDashboardStatsResponse(s domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		Tickets: NewTicketStats(s.Tickets),
		Priority: PriorityCounts{
			Low:    s.Priority.Low,
			Medium: s.Priority.Medium,
			High:   s.Priority.High,
			Urgent: s.Priority.Urgent,
		},
		Category: CategoryCounts{
			Technical: s.Category.Technical,
			Billing:   s.Category.Billing,
			Feature:   s.Category.Feature,
			Bug:       s.Category.Bug,
			Other:     s.Category.Other,
		},
		Users:         s.Users,
		RecentTickets: s.RecentTickets,
	}
}
