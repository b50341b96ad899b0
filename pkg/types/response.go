package types

import "github.com/listygo/listygo-backend/pkg/pagination"

// SuccessEnvelope is the wire shape of every successful response. The
// optional fields appear only where the endpoint populates them, matching
// the frozen external contract.
type SuccessEnvelope struct {
	Success    bool                 `json:"success"`
	Count      *int                 `json:"count,omitempty"`
	Pagination *pagination.PageInfo `json:"pagination,omitempty"`
	Token      string               `json:"token,omitempty"`
	Message    string               `json:"message,omitempty"`
	User       any                  `json:"user,omitempty"`
	Admin      any                  `json:"admin,omitempty"`
	Category   any                  `json:"category,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

// ErrorEnvelope is the wire shape of every failed response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
