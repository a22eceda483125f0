package model

import "time"

// SavedImage is an external image bookmarked by an account.
type SavedImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AccountID    uint      `json:"account_id" gorm:"not null;index;index:idx_saved_images_url_owner,priority:2"`
	ImageURL     string    `json:"image_url" gorm:"size:768;not null;index:idx_saved_images_url_owner,priority:1"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Photographer string    `json:"photographer" gorm:"size:255;not null"`
	SourceLink   string    `json:"source_link" gorm:"size:768;not null"`
	SavedAt      time.Time `json:"saved_at" gorm:"not null"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&BoardPost{},
		&SavedImage{},
	}
}
