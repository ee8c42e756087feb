package models

import "time"

type User struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;type:text" json:"name"`
	Email          string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	Password       string    `gorm:"column:password;type:text" json:"-"`
	CNAMIdentifier string    `gorm:"column:cnam_identifier;type:text" json:"cnam_identifier"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
