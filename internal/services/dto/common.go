package dto

// Pagination встраивается во все списочные ответы
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(total int64, page, pageSize int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

type PlaceRequest struct {
	City    string `json:"city" validate:"required,max=120"`
	Country string `json:"country" validate:"omitempty,max=120"`
}

// UpdateStatusRequest - общий для объявлений и поездок
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,is-listing-status"`
}

// ListingQuery - фильтры списков объявлений и поездок (query string)
type ListingQuery struct {
	FromCity string `form:"from_city" validate:"omitempty,max=120"`
	ToCity   string `form:"to_city" validate:"omitempty,max=120"`
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Status   string `form:"status" validate:"omitempty,is-listing-status"`
	Type     string `form:"type" validate:"omitempty,is-announcement-type"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// PublicUser - то, что видно о владельце листинга
type PublicUser struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	IsVerified   bool     `json:"is_verified"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount int      `json:"reviews_count"`
}
