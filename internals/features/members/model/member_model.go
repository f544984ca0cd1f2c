package model

import (
	"time"

	"github.com/google/uuid"
)

// MemberModel is the member directory row. This service only reads it;
// registration and profile management live elsewhere.
type MemberModel struct {
	MemberID    uuid.UUID `gorm:"column:member_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	MemberName  string    `gorm:"column:member_name;type:varchar(50);not null"`
	MemberEmail *string   `gorm:"column:member_email;type:varchar(255)"`
	MemberType  string    `gorm:"column:member_type;type:varchar(10);not null"` // trainer | student

	MemberCreatedAt time.Time `gorm:"column:member_created_at;autoCreateTime"`
	MemberUpdatedAt time.Time `gorm:"column:member_updated_at;autoUpdateTime"`
}

func (MemberModel) TableName() string {
	return "members"
}
