package models

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Member is a registered end user. ReferrerCode stores the reseller code
// verbatim as free text — it is resolved by value lookup, never by foreign
// key, so deleting a reseller leaves existing members untouched.
type Member struct {
	ID             string  `json:"id" gorm:"primaryKey"`
	FullName       string  `json:"full_name" gorm:"not null"`
	Address        string  `json:"address" gorm:"type:text;not null"`
	WhatsappNumber string  `json:"whatsapp_number" gorm:"not null"`
	Email          string  `json:"email" gorm:"uniqueIndex;not null"`
	ReferrerCode   *string `json:"referrer_code,omitempty" gorm:"index"`

	Status string `json:"status" gorm:"default:'active'"` // active | inactive

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Resolved at query time from ReferrerCode; never persisted.
	Referrer *Reseller `json:"referrer,omitempty" gorm:"-"`
}
