package models

import "time"

type AuditLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`

	Actor    string `gorm:"size:64" bson:"actor" json:"actor"`
	Action   string `gorm:"size:50;not null;index" bson:"action" json:"action"`
	Entity   string `gorm:"size:50" bson:"entity" json:"entity"`
	EntityID string `gorm:"size:36" bson:"entity_id" json:"entity_id"`
	Metadata string `gorm:"type:text" bson:"metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"index" bson:"created_at" json:"created_at"`
}
