package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"travelrental/internal/domain"
)

const seedBorrowerID int64 = 2

func domainCategory(id int64, title string) domain.Category {
	return domain.Category{ID: id, Title: title, ImageURL: fmt.Sprintf("/images/categories/%d.png", id)}
}

func seedMembers() []domain.Member {
	lat, lng := 37.5665, 126.9780
	addr := "Jung-gu, Seoul"
	now := domain.Now()
	return []domain.Member{
		{ID: 1, Email: "lender@travelrental.test", DisplayName: "Lender", Latitude: &lat, Longitude: &lng, Address: &addr, CreatedAt: now},
		{ID: seedBorrowerID, Email: "borrower@travelrental.test", DisplayName: "Borrower", CreatedAt: now},
	}
}

func seedMemberImage() domain.MemberImage {
	return domain.MemberImage{ID: uuid.NewString(), MemberID: 1, ImageURL: "/images/members/1.png"}
}

func seedProduct() domain.Product {
	m := seedMembers()[0]
	now := domain.Now()
	return domain.Product{
		ID:                  uuid.NewString(),
		MemberID:            m.ID,
		Title:               "Two-person tent",
		Content:             "Lightweight tent, fits two with gear.",
		BaseFee:             0,
		FeePerDay:           8000,
		OverdueFee:          12000,
		MinimumRentalPeriod: 2,
		ViewCount:           12,
		TotalRateScore:      45,
		TotalRateCount:      10,
		Latitude:            m.Latitude,
		Longitude:           m.Longitude,
		Address:             m.Address,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func seedProductImage(productID string) domain.ProductImage {
	return domain.ProductImage{ID: uuid.NewString(), ProductID: productID, ImageURL: "/images/products/" + productID + "/main.jpg", CreatedAt: domain.Now()}
}

func seedReservation(productID string) domain.Reservation {
	start := time.Now().UTC().AddDate(0, 0, 7)
	return domain.Reservation{
		ID:        uuid.NewString(),
		MemberID:  seedBorrowerID,
		ProductID: productID,
		TotalFee:  16000,
		StartDate: start.Format(domain.DateLayout),
		EndDate:   start.AddDate(0, 0, 2).Format(domain.DateLayout),
		Status:    domain.StatusRequested,
		CreatedAt: domain.Now(),
	}
}
