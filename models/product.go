package models

import "time"

const (
	ProductTypeSoftware = "software"
	ProductTypeEbook    = "ebook"
)

// Product is a sellable digital item. It has no lifecycle interaction with
// members or resellers beyond being displayed on the public pages.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Slug        string  `json:"slug" gorm:"index"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	ProductType string  `json:"product_type" gorm:"not null"` // software | ebook

	DownloadLink *string `json:"download_link,omitempty"`
	CoverURL     *string `json:"cover_url,omitempty"`

	Status    string     `json:"status" gorm:"default:'active'"` // active | inactive
	PublishAt *time.Time `json:"publish_at,omitempty"`           // set when activation is scheduled

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
