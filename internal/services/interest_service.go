package services

import (
	"context"

	"go.uber.org/zap"

	"travelrental/internal/domain"
	"travelrental/internal/repos"
)

// InterestService manages the listings a member has saved for later.
type InterestService struct {
	store   *repos.Store
	members *MemberService
}

func NewInterestService(store *repos.Store, members *MemberService) *InterestService {
	return &InterestService{store: store, members: members}
}

// SaveInterest is idempotent. The listing must exist.
func (s *InterestService) SaveInterest(ctx context.Context, memberID int64, productID string) error {
	err := s.store.WithTx(ctx, func(tx *repos.Store) error {
		if _, err := s.members.WithStore(tx).FindMember(ctx, memberID); err != nil {
			return err
		}
		if _, err := findProduct(ctx, tx, productID); err != nil {
			return err
		}
		return tx.Interests.Add(ctx, memberID, productID, domain.Now())
	})
	if err != nil {
		return err
	}
	zap.L().Info("interest saved", zap.Int64("member_id", memberID), zap.String("product_id", productID))
	return nil
}

// DeleteInterest removes a saved listing. Removing one that was never saved succeeds.
func (s *InterestService) DeleteInterest(ctx context.Context, memberID int64, productID string) error {
	if _, err := s.members.FindMember(ctx, memberID); err != nil {
		return err
	}
	return s.store.Interests.Remove(ctx, memberID, productID)
}

func (s *InterestService) FindInterests(ctx context.Context, memberID int64, page, size int) (InterestPage, error) {
	page, size = clampPage(page, size)
	if _, err := s.members.FindMember(ctx, memberID); err != nil {
		return InterestPage{}, err
	}
	total, err := s.store.Interests.CountByMember(ctx, memberID)
	if err != nil {
		return InterestPage{}, err
	}
	rows, err := s.store.Interests.ListByMember(ctx, memberID, size, page*size)
	if err != nil {
		return InterestPage{}, err
	}
	return InterestPage{Responses: rows, ListSize: total, PageInfo: domain.NewPageInfo(page, size, total)}, nil
}
