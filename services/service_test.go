package services

import (
	"testing"

	"digimarket/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}, &models.Reseller{}, &models.Product{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// notifierRecorder captures notification calls for assertions.
type notifierRecorder struct {
	welcomes  []string   // member emails
	referrals [][2]string // reseller code, member email
}

func (r *notifierRecorder) NotifyWelcome(member *models.Member) {
	r.welcomes = append(r.welcomes, member.Email)
}

func (r *notifierRecorder) NotifyReferral(reseller *models.Reseller, member *models.Member) {
	r.referrals = append(r.referrals, [2]string{reseller.UniqueCode, member.Email})
}
