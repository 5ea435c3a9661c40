package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleMaster   = "master"
	RoleDirector = "director"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:char(36);primaryKey"`
	Username     string     `gorm:"column:username;size:100;not null;uniqueIndex:uq_users_username"`
	FirstName    string     `gorm:"column:first_name;size:100;not null"`
	LastName     string     `gorm:"column:last_name;size:100;not null"`
	Role         string     `gorm:"column:role;size:20;not null;default:employee"`
	Phone        string     `gorm:"column:phone;size:50"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:char(36);index"`
	MasterID     *uuid.UUID `gorm:"column:master_id;type:char(36);index"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Department *UserDepartment `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Master     *UserMaster     `gorm:"foreignKey:MasterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserDepartment is the minimal department row joined for responses.
type UserDepartment struct {
	ID   uuid.UUID `gorm:"column:id;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserDepartment) TableName() string {
	return "departments"
}

// UserMaster is the supervisor as seen from a subordinate.
type UserMaster struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (UserMaster) TableName() string {
	return "users"
}
