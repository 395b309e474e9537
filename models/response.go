package models

import "time"

// APIResponse is the envelope for messages and errors. List and detail
// endpoints return their payload unwrapped.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Pagination request
type PaginationRequest struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

func (p PaginationRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

type TrendsRequest struct {
	Days int `form:"days,default=30" binding:"min=0,max=365"`
}

// Health Check Response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp"`
}

// DashboardStats are the headline counters of the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64              `json:"total_users"`
	TotalIncidents    int64              `json:"total_incidents"`
	TodayIncidents    int64              `json:"today_incidents"`
	TotalHospitals    int64              `json:"total_hospitals"`
	TotalPolice       int64              `json:"total_police"`
	ActiveAssignments int64              `json:"active_assignments"`
	EmailsSent        int64              `json:"emails_sent"`
	IncidentTypes     IncidentTypeCounts `json:"incident_types"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// FormatISO renders t the way every API timestamp is rendered.
func FormatISO(t time.Time) string {
	return NewTimestamp(t).String()
}
