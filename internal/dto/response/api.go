package response

import (
	"time"
)

// ApiResponse is the envelope every REST endpoint returns. Data carries
// the payload on success; Errors carries field-level detail on failure.
type ApiResponse[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      T         `json:"data,omitempty"`
	Errors    any       `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSuccess wraps data and a human-readable message in a success envelope
func NewSuccess[T any](data T, message string) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewSuccessWithData wraps data in a success envelope without a message
func NewSuccessWithData[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewError builds a failure envelope carrying only a message
func NewError[T any](message string) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewErrorWithDetails builds a failure envelope with field-level detail,
// typically binding validation errors.
func NewErrorWithDetails[T any](message string, errors any) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now(),
	}
}

// PageInfo describes one page of a list endpoint
type PageInfo struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// PagedResponse carries one page of items plus its PageInfo
type PagedResponse[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"page_info"`
}

// NewPagedResponse derives the PageInfo from the page, size and total count
func NewPagedResponse[T any](items []T, page, size int, total int64) PagedResponse[T] {
	totalPages := int(total) / size
	if int(total)%size > 0 {
		totalPages++
	}

	return PagedResponse[T]{
		Items: items,
		PageInfo: PageInfo{
			Page:       page,
			Size:       size,
			TotalItems: total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}
