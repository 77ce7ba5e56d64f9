package member

import (
	"context"

	"github.com/members-api/go-api-server/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (m *MemberRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email string, excludeID uint32) (bool, error) {
	var count int64
	query := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email)

	if excludeID != 0 {
		query = query.Where("member_id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("member_id = ?", ID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindAll(ctx context.Context, db *gorm.DB, filter *ListFilter) ([]model.Member, error) {
	query := db.WithContext(ctx).Model(&model.Member{})

	if filter != nil {
		if filter.Firstname != nil {
			query = query.Where("firstname = ?", *filter.Firstname)
		}
		if filter.Lastname != nil {
			query = query.Where("lastname = ?", *filter.Lastname)
		}
		if filter.Email != nil {
			query = query.Where("email = ?", *filter.Email)
		}
		if filter.Active != nil {
			query = query.Where("active = ?", *filter.Active)
		}
	}

	var members []model.Member
	if err := query.Order("member_id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (m *MemberRepository) Save(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

func (m *MemberRepository) Delete(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Delete(member).Error
}
