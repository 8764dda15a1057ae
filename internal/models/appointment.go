package models

import "time"

type Appointment struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`

	ClientID string  `gorm:"type:varchar(36);not null;index" bson:"client_id" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-" json:"client,omitempty"`

	ServiceType string `gorm:"size:50;not null" bson:"service_type" json:"service_type"`

	// Só o dia de calendário importa (meia-noite UTC).
	Date time.Time `gorm:"column:appointment_date;type:date;not null;index" bson:"date" json:"date"`
	Time string    `gorm:"column:appointment_time;size:5;not null" bson:"time" json:"time"`

	Status string `gorm:"size:20;not null;default:'scheduled';index" bson:"status" json:"status"`

	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
