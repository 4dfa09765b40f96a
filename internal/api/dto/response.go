package dto

import "time"

// ApiResponse is the envelope for every JSON response.
type ApiResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
	Errors    map[string]any `json:"errors,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// PagedResponse wraps a page of results.
type PagedResponse struct {
	Content       any   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// OK builds a success envelope.
func OK(message string, data any) ApiResponse {
	return ApiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Fail builds a failure envelope.
func Fail(message string, errors map[string]any) ApiResponse {
	return ApiResponse{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now().UTC(),
	}
}

// NewPage assembles pagination bookkeeping around the content slice.
func NewPage(content any, page, size int, total int64) PagedResponse {
	if size <= 0 {
		size = 1
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return PagedResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
