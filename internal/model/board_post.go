package model

import "time"

// BoardPost is a short text post on the community board.
type BoardPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255"`
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
	AccountID uint      `json:"account_id" gorm:"not null;index"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}
