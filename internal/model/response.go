package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CleanupResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

type ROIRequest struct {
	HoursPerWeek float64 `json:"hours"`
	HourlyCost   float64 `json:"hourly_cost"`
	Investment   float64 `json:"investment"`
}

type ROIResponse struct {
	WeeklySavings  float64 `json:"weekly_savings"`
	MonthlySavings float64 `json:"monthly_savings"`
	AnnualSavings  float64 `json:"annual_savings"`
	ROIPercent     float64 `json:"roi_percent"`
	PaybackMonths  float64 `json:"payback_months"`
	Profitable     bool    `json:"profitable"`
}

type PublicConfigResponse struct {
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Social       map[string]string `json:"social"`
	Features     map[string]bool   `json:"features"`
}
