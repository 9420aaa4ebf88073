package services

import (
	"context"

	"travelrental/internal/domain"
	"travelrental/internal/repos"
	"travelrental/internal/validate"
)

// ReservationService reads reservations. Creating and transitioning them is owned by the booking flow.
type ReservationService struct {
	store   *repos.Store
	members *MemberService
}

func NewReservationService(store *repos.Store, members *MemberService) *ReservationService {
	return &ReservationService{store: store, members: members}
}

func (s *ReservationService) WithStore(store *repos.Store) *ReservationService {
	return &ReservationService{store: store, members: s.members.WithStore(store)}
}

// FindReservations pages the reservations memberID made. An empty status returns every status.
func (s *ReservationService) FindReservations(ctx context.Context, memberID int64, status domain.ReservationStatus, page, size int) (ReservationPage, error) {
	if status != "" && !status.Valid() {
		return ReservationPage{}, &BusinessError{Code: CodeInvalidInput, Message: "unknown reservation status " + string(status)}
	}
	page, size = clampPage(page, size)
	if _, err := s.members.FindMember(ctx, memberID); err != nil {
		return ReservationPage{}, err
	}
	total, err := s.store.Reservations.CountByMember(ctx, memberID, status)
	if err != nil {
		return ReservationPage{}, err
	}
	rows, err := s.store.Reservations.ListByMember(ctx, memberID, status, size, page*size)
	if err != nil {
		return ReservationPage{}, err
	}
	return ReservationPage{Reservations: rows, PageInfo: domain.NewPageInfo(page, size, total)}, nil
}

func (s *ReservationService) CountByProduct(ctx context.Context, productID string) (int, error) {
	return s.store.Reservations.CountByProduct(ctx, productID)
}

func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if page > validate.MaxPage {
		page = validate.MaxPage
	}
	if size < 1 {
		size = validate.DefaultPageSize
	}
	if size > validate.MaxPageSize {
		size = validate.MaxPageSize
	}
	return page, size
}
