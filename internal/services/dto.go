package services

import (
	"travelrental/internal/domain"
	"travelrental/internal/repos"
)

type CreateProductRequest struct {
	Title               string  `json:"title" validate:"required,max=100"`
	Content             string  `json:"content" validate:"required"`
	BaseFee             int     `json:"baseFee" validate:"min=0"`
	FeePerDay           int     `json:"feePerDay" validate:"min=0"`
	OverdueFee          int     `json:"overdueFee" validate:"min=0"`
	MinimumRentalPeriod int     `json:"minimumRentalPeriod" validate:"min=1"`
	CategoryIDs         []int64 `json:"categoryIds" validate:"omitempty,dive,gt=0"`
}

// UpdateProductRequest is a patch: nil fields are left unchanged, and set fields are validated even when zero.
// A non-nil CategoryIDs replaces the whole category set, even when empty.
type UpdateProductRequest struct {
	Title               *string  `json:"title" validate:"omitnil,min=1,max=100"`
	Content             *string  `json:"content" validate:"omitnil,min=1"`
	BaseFee             *int     `json:"baseFee" validate:"omitnil,min=0"`
	FeePerDay           *int     `json:"feePerDay" validate:"omitnil,min=0"`
	OverdueFee          *int     `json:"overdueFee" validate:"omitnil,min=0"`
	MinimumRentalPeriod *int     `json:"minimumRentalPeriod" validate:"omitnil,min=1"`
	CategoryIDs         *[]int64 `json:"categoryIds" validate:"omitempty,dive,gt=0"`
}

// Apply writes the set fields onto p.
func (r UpdateProductRequest) Apply(p *domain.Product) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.BaseFee != nil {
		p.BaseFee = *r.BaseFee
	}
	if r.FeePerDay != nil {
		p.FeePerDay = *r.FeePerDay
	}
	if r.OverdueFee != nil {
		p.OverdueFee = *r.OverdueFee
	}
	if r.MinimumRentalPeriod != nil {
		p.MinimumRentalPeriod = *r.MinimumRentalPeriod
	}
}

type CategoryDto struct {
	CategoryID int64  `json:"categoryId"`
	Title      string `json:"title"`
	ImageURL   string `json:"imageUrl"`
}

func toCategoryDtos(cats []domain.Category) []CategoryDto {
	out := make([]CategoryDto, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryDto{CategoryID: c.ID, Title: c.Title, ImageURL: c.ImageURL})
	}
	return out
}

type ProductView struct {
	ProductID           string   `json:"productId"`
	MemberID            int64    `json:"memberId"`
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	BaseFee             int      `json:"baseFee"`
	FeePerDay           int      `json:"feePerDay"`
	OverdueFee          int      `json:"overdueFee"`
	MinimumRentalPeriod int      `json:"minimumRentalPeriod"`
	ViewCount           int      `json:"viewCount"`
	TotalRateScore      int      `json:"totalRateScore"`
	TotalRateCount      int      `json:"totalRateCount"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Address             *string  `json:"address"`
	CreatedAt           string   `json:"createdAt"`
	UpdatedAt           string   `json:"updatedAt"`
}

func newProductView(p domain.Product) ProductView {
	return ProductView{
		ProductID:           p.ID,
		MemberID:            p.MemberID,
		Title:               p.Title,
		Content:             p.Content,
		BaseFee:             p.BaseFee,
		FeePerDay:           p.FeePerDay,
		OverdueFee:          p.OverdueFee,
		MinimumRentalPeriod: p.MinimumRentalPeriod,
		ViewCount:           p.ViewCount,
		TotalRateScore:      p.TotalRateScore,
		TotalRateCount:      p.TotalRateCount,
		Latitude:            p.Latitude,
		Longitude:           p.Longitude,
		Address:             p.Address,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ProductResponse is returned by create and update.
type ProductResponse struct {
	ProductView
	Categories []CategoryDto `json:"categories"`
}

// ProductDetail is the cacheable, requester-independent part of a detail view.
type ProductDetail struct {
	ProductView
	OwnerName     string        `json:"ownerName"`
	OwnerImageURL string        `json:"ownerImageUrl"`
	Categories    []CategoryDto `json:"categories"`
	Images        []string      `json:"images"`
}

type ProductDetailResponse struct {
	ProductDetail
	IsOwner bool `json:"isOwner"`
}

type ProductPage struct {
	Products []repos.ProductSummary `json:"products"`
	PageInfo domain.PageInfo        `json:"pageInfo"`
}

type ReservationPage struct {
	Reservations []repos.ReservationRow `json:"reservations"`
	PageInfo     domain.PageInfo        `json:"pageInfo"`
}

// UpdateMemberRequest patches a member profile. Coordinates travel as a pair.
type UpdateMemberRequest struct {
	DisplayName *string  `json:"displayName" validate:"omitnil,min=1,max=30"`
	Latitude    *float64 `json:"latitude" validate:"required_with=Longitude,omitnil,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"required_with=Latitude,omitnil,min=-180,max=180"`
	Address     *string  `json:"address" validate:"omitnil,min=1,max=200"`
}

type MemberResponse struct {
	MemberID        int64    `json:"memberId"`
	Email           string   `json:"email"`
	DisplayName     string   `json:"displayName"`
	ProfileImageURL string   `json:"profileImageUrl"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Address         *string  `json:"address"`
}

// InterestPage is a page of saved listings. ListSize is the total across pages.
type InterestPage struct {
	Responses []repos.ProductSummary `json:"responses"`
	ListSize  int                    `json:"listSize"`
	PageInfo  domain.PageInfo        `json:"pageInfo"`
}
