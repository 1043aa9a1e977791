package model

import "time"

type Subscriber struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           *string    `json:"name"`
	IsActive       bool       `json:"is_active"`
	Confirmed      bool       `json:"confirmed"`
	Frequency      string     `json:"frequency"`
	Source         string     `json:"source"`
	IPAddress      *string    `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

type SubscriberListResponse struct {
	Subscribers []Subscriber `json:"subscribers"`
	Total       int64        `json:"total"`
	Pages       int64        `json:"pages"`
	CurrentPage int          `json:"current_page"`
}

type SubscriberExportResponse struct {
	Emails []string `json:"emails"`
	Count  int      `json:"count"`
}
