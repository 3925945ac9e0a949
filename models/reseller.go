package models

import "time"

// Reseller is a referral partner. UniqueCode is generated once at
// registration and never recomputed; members reference it by value only.
type Reseller struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	WhatsappNumber string `json:"whatsapp_number" gorm:"not null"`
	UniqueCode     string `json:"unique_code" gorm:"uniqueIndex;not null"`

	Status string `json:"status" gorm:"default:'active'"` // active | inactive

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReferralStats are the dashboard counters for one reseller. The three
// windows overlap on purpose: each is an independent count over the full
// referral set, not a partition of it.
type ReferralStats struct {
	TotalReferrals int64 `json:"total_referrals"`
	ThisMonth      int64 `json:"this_month"`
	ThisWeek       int64 `json:"this_week"`
}
