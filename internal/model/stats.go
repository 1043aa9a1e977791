package model

type LeadsPerDay struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type LeadStats struct {
	Total     int64            `json:"total"`
	NewPeriod int64            `json:"new_period"`
	Pending   int64            `json:"pending"`
	ByStatus  map[string]int64 `json:"by_status"`
	PerDay    []LeadsPerDay    `json:"per_day"`
}

type NewsletterStats struct {
	TotalActive int64 `json:"total_active"`
	NewPeriod   int64 `json:"new_period"`
}

type AnalyticsStats struct {
	EventsPeriod int64 `json:"events_period"`
}

type StatsResponse struct {
	Leads      LeadStats       `json:"leads"`
	Newsletter NewsletterStats `json:"newsletter"`
	Analytics  AnalyticsStats  `json:"analytics"`
	PeriodDays int             `json:"period_days"`
}
