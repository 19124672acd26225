package domain

// PriorityCounts breaks tickets down by priority.
type PriorityCounts struct {
	Low    int64
	Medium int64
	High   int64
	Urgent int64
}

// CategoryCounts breaks tickets down by category.
type CategoryCounts struct {
	Technical int64
	Billing   int64
	Feature   int64
	Bug       int64
	Other     int64
}

// DashboardStats aggregates counts across the full record set for the
// admin dashboard.
type DashboardStats struct {
	Tickets       TicketStats
	Priority      PriorityCounts
	Category      CategoryCounts
	Users         int64
	RecentTickets int64
}
