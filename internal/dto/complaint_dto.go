package dto

import "github.com/civicfix/civicfix-backend/internal/models"

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ComplaintFilter is the caller-requested narrowing of a complaint
// query; the access scope is applied on top of it, never instead of it.
type ComplaintFilter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

type ComplaintListResponse struct {
	Complaints []models.Complaint `json:"complaints"`
	Pagination Pagination         `json:"pagination"`
}

type StatsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
