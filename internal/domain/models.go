package domain

import "time"

// TimeLayout is the sortable text layout used for every stored timestamp.
const TimeLayout = "2006-01-02 15:04:05.000000"

// DateLayout is used for reservation date ranges.
const DateLayout = "2006-01-02"

func Now() string { return time.Now().UTC().Format(TimeLayout) }

type Member struct {
	ID          int64    `db:"id"`
	Email       string   `db:"email"`
	DisplayName string   `db:"display_name"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`
	Address     *string  `db:"address"`
	CreatedAt   string   `db:"created_at"`
}

// HasLocation reports whether both coordinates are recorded.
func (m Member) HasLocation() bool { return m.Latitude != nil && m.Longitude != nil }

type Product struct {
	ID                  string   `db:"id"`
	MemberID            int64    `db:"member_id"`
	Title               string   `db:"title"`
	Content             string   `db:"content"`
	BaseFee             int      `db:"base_fee"`
	FeePerDay           int      `db:"fee_per_day"`
	OverdueFee          int      `db:"overdue_fee"`
	MinimumRentalPeriod int      `db:"minimum_rental_period"`
	ViewCount           int      `db:"view_count"`
	TotalRateScore      int      `db:"total_rate_score"`
	TotalRateCount      int      `db:"total_rate_count"`
	Latitude            *float64 `db:"latitude"`
	Longitude           *float64 `db:"longitude"`
	Address             *string  `db:"address"`
	CreatedAt           string   `db:"created_at"`
	UpdatedAt           string   `db:"updated_at"`
}

// Popularity holds the seeded ranking counters of a new product.
type Popularity struct {
	ViewCount      int
	TotalRateScore int
	TotalRateCount int
}

type Category struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	ImageURL string `db:"image_url"`
}

type ProductImage struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	ImageURL  string `db:"image_url"`
	CreatedAt string `db:"created_at"`
}

type MemberImage struct {
	ID       string `db:"id"`
	MemberID int64  `db:"member_id"`
	ImageURL string `db:"image_url"`
}

type ReservationStatus string

const (
	StatusRequested ReservationStatus = "REQUESTED"
	StatusReserved  ReservationStatus = "RESERVED"
	StatusCanceled  ReservationStatus = "CANCELED"
	StatusInUse     ReservationStatus = "INUSE"
	StatusCompleted ReservationStatus = "COMPLETED"
)

var ReservationStatuses = []ReservationStatus{
	StatusRequested, StatusReserved, StatusCanceled, StatusInUse, StatusCompleted,
}

func (s ReservationStatus) Valid() bool {
	for _, v := range ReservationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID        string            `db:"id"`
	MemberID  int64             `db:"member_id"`
	ProductID string            `db:"product_id"`
	TotalFee  int               `db:"total_fee"`
	StartDate string            `db:"start_date"`
	EndDate   string            `db:"end_date"`
	Status    ReservationStatus `db:"status"`
	CreatedAt string            `db:"created_at"`
}

// PageInfo describes a zero-based page of results.
type PageInfo struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

func NewPageInfo(page, size, total int) PageInfo {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return PageInfo{Page: page, Size: size, TotalElements: total, TotalPages: pages}
}
