package member

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/members-api/go-api-server/internal/model"
	"github.com/members-api/go-api-server/internal/shared/database"
	"github.com/members-api/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (s *MemberService) List(ctx context.Context, filter *ListFilter) ([]*MemberResponse, error) {
	members, err := s.memberRepository.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]*MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, NewMemberResponse(&members[i]))
	}
	return responses, nil
}

func (s *MemberService) Get(ctx context.Context, memberID uint32) (*MemberResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member not found memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	return NewMemberResponse(member), nil
}

func (s *MemberService) Create(ctx context.Context, request *CreateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)
	var response *MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.memberRepository.IsEmailTaken(ctx, tx, request.Email, 0)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			log.Warn("member create rejected - duplicate email", "email", logger.MaskEmail(request.Email))
			return fmt.Errorf("email %s already in use %w", request.Email, ErrDuplicateEmail)
		}

		member := model.NewMember(request.Firstname, request.Lastname, request.Email, request.ActiveFlag())
		if err := s.memberRepository.Create(ctx, tx, member); err != nil {
			// Two concurrent creates can pass the pre-check; the unique index
			// is the authority.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email %s already in use %w", request.Email, ErrDuplicateEmail)
			}
			return fmt.Errorf("failed to create member: %w", err)
		}

		response = NewMemberResponse(member)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *MemberService) Update(ctx context.Context, memberID uint32, request *UpdateMemberRequest) (*MemberResponse, error) {
	var response *MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member not found memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("failed to load member: %w", err)
		}

		if request.Email != nil && *request.Email != member.Email {
			taken, err := s.memberRepository.IsEmailTaken(ctx, tx, *request.Email, memberID)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return fmt.Errorf("email %s already in use %w", *request.Email, ErrDuplicateEmail)
			}
			member.Email = *request.Email
		}

		if request.Firstname != nil {
			member.Firstname = *request.Firstname
		}
		if request.Lastname != nil {
			member.Lastname = *request.Lastname
		}
		if request.Active != nil {
			active, _ := strconv.ParseBool(*request.Active)
			member.Active = active
		}

		if err := s.memberRepository.Save(ctx, tx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email already in use %w", ErrDuplicateEmail)
			}
			return fmt.Errorf("failed to update member: %w", err)
		}

		response = NewMemberResponse(member)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

// Delete removes the member and returns its last state, so the caller gets
// the snapshot of what was deleted.
func (s *MemberService) Delete(ctx context.Context, memberID uint32) (*MemberResponse, error) {
	var response *MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member not found memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("failed to load member: %w", err)
		}

		if err := s.memberRepository.Delete(ctx, tx, member); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}

		response = NewMemberResponse(member)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}
