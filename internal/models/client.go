package models

import "time"

// Cliente sem login: identificado pelo telefone normalizado (só dígitos).
type Client struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`

	Name  string `gorm:"type:text;not null" bson:"name" json:"name"`
	Phone string `gorm:"type:text;not null;uniqueIndex:uq_clients_phone" bson:"phone" json:"phone"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
