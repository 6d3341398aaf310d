package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatGroupModel struct {
	ChatGroupID            uuid.UUID `gorm:"column:chat_group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"chat_group_id"`
	ChatGroupInstitutionID uuid.UUID `gorm:"column:chat_group_institution_id;type:uuid;not null;index" json:"chat_group_institution_id"`

	ChatGroupName      string    `gorm:"column:chat_group_name;type:varchar(120);not null" json:"chat_group_name"`
	ChatGroupCreatedBy uuid.UUID `gorm:"column:chat_group_created_by;type:uuid;not null" json:"chat_group_created_by"`

	ChatGroupCreatedAt time.Time      `gorm:"column:chat_group_created_at;not null;autoCreateTime" json:"chat_group_created_at"`
	ChatGroupUpdatedAt time.Time      `gorm:"column:chat_group_updated_at;not null;autoUpdateTime" json:"chat_group_updated_at"`
	ChatGroupDeletedAt gorm.DeletedAt `gorm:"column:chat_group_deleted_at;index" json:"chat_group_deleted_at,omitempty"`
}

func (ChatGroupModel) TableName() string { return "chat_groups" }

type ChatGroupMemberModel struct {
	ChatGroupMemberID      uuid.UUID `gorm:"column:chat_group_member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"chat_group_member_id"`
	ChatGroupMemberGroupID uuid.UUID `gorm:"column:chat_group_member_group_id;type:uuid;not null;uniqueIndex:uq_group_member" json:"chat_group_member_group_id"`
	ChatGroupMemberUserID  uuid.UUID `gorm:"column:chat_group_member_user_id;type:uuid;not null;uniqueIndex:uq_group_member" json:"chat_group_member_user_id"`

	ChatGroupMemberCreatedAt time.Time `gorm:"column:chat_group_member_created_at;not null;autoCreateTime" json:"chat_group_member_created_at"`
}

func (ChatGroupMemberModel) TableName() string { return "chat_group_members" }
