package repositories

import (
	"time"

	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListingFilter - общий фильтр для объявлений и поездок.
// Незаданное поле не ограничивает выборку.
type ListingFilter struct {
	FromCity *string
	ToCity   *string
	DateFrom *time.Time
	DateTo   *time.Time
	Statuses []models.ListingStatus
	Type     *models.AnnouncementType // только для объявлений
	UserID   string

	// PageSize == 0 означает "без лимита"
	Page     int
	PageSize int
}

// AllowsAnnouncement повторяет SQL-условия фильтра в памяти
func (f ListingFilter) AllowsAnnouncement(a *models.Announcement) bool {
	if f.Type != nil && a.Type != *f.Type {
		return false
	}
	return f.allows(a.UserID, a.From.City, a.To.City, a.DateFrom, a.DateTo, a.Status)
}

// AllowsTrip повторяет SQL-условия фильтра в памяти
func (f ListingFilter) AllowsTrip(t *models.Trip) bool {
	return f.allows(t.UserID, t.From.City, t.To.City, t.DepartureDate, t.ArrivalDate, t.Status)
}

func (f ListingFilter) allows(userID, fromCity, toCity string, start, end *time.Time, status models.ListingStatus) bool {
	if f.UserID != "" && userID != f.UserID {
		return false
	}
	if f.FromCity != nil && fromCity != *f.FromCity {
		return false
	}
	if f.ToCity != nil && toCity != *f.ToCity {
		return false
	}
	// start <= filter.to && end >= filter.from; без даты у кандидата пересечения нет
	if f.DateTo != nil && (start == nil || start.After(*f.DateTo)) {
		return false
	}
	if f.DateFrom != nil && (end == nil || end.Before(*f.DateFrom)) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if s == status {
				return true
			}
		}
		return false
	}
	return true
}

// apply добавляет условия фильтра к запросу. startCol/endCol - колонки окна
// дат конкретной таблицы.
func (f ListingFilter) apply(q *gorm.DB, startCol, endCol string) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.FromCity != nil {
		q = q.Where("from_city = ?", *f.FromCity)
	}
	if f.ToCity != nil {
		q = q.Where("to_city = ?", *f.ToCity)
	}
	if f.DateTo != nil {
		q = q.Where(startCol+" IS NOT NULL AND "+startCol+" <= ?", *f.DateTo)
	}
	if f.DateFrom != nil {
		q = q.Where(endCol+" IS NOT NULL AND "+endCol+" >= ?", *f.DateFrom)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	return q
}

// Paginate - scope для gorm. pageSize <= 0 отключает лимит.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if pageSize > MaxPageSize {
			pageSize = MaxPageSize
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// newestFirst - стабильный порядок для списков
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id ASC")
}
