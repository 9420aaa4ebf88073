package services

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"travelrental/internal/domain"
	"travelrental/internal/repos"
	"travelrental/internal/validate"
)

type MemberService struct {
	store *repos.Store
}

func NewMemberService(store *repos.Store) *MemberService { return &MemberService{store: store} }

// WithStore returns a copy bound to store, typically a transactional one.
func (s *MemberService) WithStore(store *repos.Store) *MemberService { return &MemberService{store: store} }

func (s *MemberService) FindMember(ctx context.Context, id int64) (domain.Member, error) {
	m, err := s.store.Members.ByID(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Member{}, ErrMemberNotFound
	}
	return m, err
}

// FindProfile returns the member with their profile image.
func (s *MemberService) FindProfile(ctx context.Context, id int64) (MemberResponse, error) {
	m, err := s.FindMember(ctx, id)
	if err != nil {
		return MemberResponse{}, err
	}
	img, err := NewImageService(s.store).FindImageMember(ctx, id)
	if err != nil {
		return MemberResponse{}, err
	}
	return MemberResponse{
		MemberID:        m.ID,
		Email:           m.Email,
		DisplayName:     m.DisplayName,
		ProfileImageURL: img,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		Address:         m.Address,
	}, nil
}

// UpdateMember patches the display name and location. Existing listings keep the location
// they were created with.
func (s *MemberService) UpdateMember(ctx context.Context, id int64, req UpdateMemberRequest) (MemberResponse, error) {
	if err := validate.Struct(req); err != nil {
		return MemberResponse{}, invalidInput(err)
	}
	err := s.store.WithTx(ctx, func(tx *repos.Store) error {
		m, err := s.WithStore(tx).FindMember(ctx, id)
		if err != nil {
			return err
		}
		if req.DisplayName != nil {
			if err := tx.Members.UpdateDisplayName(ctx, id, *req.DisplayName); err != nil {
				return err
			}
		}
		if req.Latitude == nil && req.Address == nil {
			return nil
		}
		lat, lng, addr := m.Latitude, m.Longitude, m.Address
		if req.Latitude != nil {
			lat, lng = req.Latitude, req.Longitude
		}
		if req.Address != nil {
			addr = req.Address
		}
		return tx.Members.UpdateLocation(ctx, id, lat, lng, addr)
	})
	if err != nil {
		return MemberResponse{}, err
	}
	zap.L().Info("member updated", zap.Int64("member_id", id))
	return s.FindProfile(ctx, id)
}
