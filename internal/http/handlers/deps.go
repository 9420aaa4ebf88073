package handlers

import (
	"travelrental/internal/cache"
	"travelrental/internal/config"
	"travelrental/internal/repos"
	"travelrental/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Store *repos.Store

	ProductHandler     *ProductHandler
	CategoryHandler    *CategoryHandler
	ReservationHandler *ReservationHandler
	MemberHandler      *MemberHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	store := repos.NewStore(db)

	details, err := cache.New[services.ProductDetail](cfg.Cache)
	if err != nil {
		return nil, err
	}

	memberSvc := services.NewMemberService(store)
	categorySvc := services.NewProductCategoryService(store)
	imageSvc := services.NewImageService(store)
	reservationSvc := services.NewReservationService(store, memberSvc)
	productSvc := services.NewProductService(store, memberSvc, categorySvc, imageSvc, reservationSvc, details)
	interestSvc := services.NewInterestService(store, memberSvc)

	return &Deps{
		Store:              store,
		ProductHandler:     &ProductHandler{Products: productSvc},
		CategoryHandler:    &CategoryHandler{Categories: categorySvc},
		ReservationHandler: &ReservationHandler{Reservations: reservationSvc},
		MemberHandler:      &MemberHandler{Members: memberSvc, Interests: interestSvc, Products: productSvc},
	}, nil
}
