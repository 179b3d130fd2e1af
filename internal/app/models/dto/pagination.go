package dto

// PaginationInfo describes one page of a list response.
// Page numbers are 1-based.
type PaginationInfo struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"20"`
	TotalItems int64 `json:"totalItems" example:"42"`
	TotalPages int   `json:"totalPages" example:"3"`
	HasNext    bool  `json:"hasNext" example:"true"`
	HasPrev    bool  `json:"hasPrev" example:"false"`
}
