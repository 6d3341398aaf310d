package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserInstitutionID *uuid.UUID `gorm:"column:user_institution_id;type:uuid;index" json:"user_institution_id,omitempty"`

	UserEmail    string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:varchar(255);not null" json:"-"`
	UserFullName string `gorm:"column:user_full_name;type:varchar(120);not null" json:"user_full_name"`

	// Avatar is an opaque object key; signed URLs are issued on demand.
	UserAvatarObjectKey *string `gorm:"column:user_avatar_object_key;type:text" json:"user_avatar_object_key,omitempty"`

	UserGoogleSubject *string `gorm:"column:user_google_subject;type:varchar(64);index" json:"-"`

	UserIsActive  bool           `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

type RoleModel struct {
	RoleID        uuid.UUID `gorm:"column:role_id;type:uuid;default:gen_random_uuid();primaryKey" json:"role_id"`
	RoleName      string    `gorm:"column:role_name;type:varchar(40);not null;uniqueIndex" json:"role_name"`
	RoleCreatedAt time.Time `gorm:"column:role_created_at;not null;autoCreateTime" json:"role_created_at"`
}

func (RoleModel) TableName() string { return "roles" }

type UserRoleModel struct {
	UserRoleID        uuid.UUID `gorm:"column:user_role_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_role_id"`
	UserRoleUserID    uuid.UUID `gorm:"column:user_role_user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role" json:"user_role_user_id"`
	UserRoleRoleID    uuid.UUID `gorm:"column:user_role_role_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role" json:"user_role_role_id"`
	UserRoleCreatedAt time.Time `gorm:"column:user_role_created_at;not null;autoCreateTime" json:"user_role_created_at"`
}

func (UserRoleModel) TableName() string { return "user_roles" }
