package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"digimarket/models"
	"digimarket/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResellerService struct {
	DB    *gorm.DB
	Stats StatsConfig

	// Now is injected so the stats windows are deterministic under test.
	Now func() time.Time
}

func NewResellerService(db *gorm.DB, stats StatsConfig) *ResellerService {
	return &ResellerService{DB: db, Stats: stats, Now: time.Now}
}

type ResellerInput struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	WhatsappNumber string `json:"whatsapp_number" form:"whatsapp_number"`
}

// Register handles reseller self-registration. The shareable code is
// generated once from the email and the registration instant and is never
// recomputed afterwards.
func (s *ResellerService) Register(c *fiber.Ctx) error {
	var input ResellerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.WhatsappNumber = strings.TrimSpace(input.WhatsappNumber)

	errs := utils.FieldErrors{}
	errs.Require("name", input.Name, "Name is required.")
	errs.MaxLen("name", input.Name, 255, "Name may not be longer than 255 characters.")
	errs.Require("whatsapp_number", input.WhatsappNumber, "WhatsApp number is required.")
	errs.MaxLen("whatsapp_number", input.WhatsappNumber, 20, "WhatsApp number may not be longer than 20 characters.")
	if input.Email == "" {
		errs.Add("email", "Email address is required.")
	} else if !utils.ValidEmail(input.Email) {
		errs.Add("email", "Please provide a valid email address.")
	} else {
		var count int64
		s.DB.Model(&models.Reseller{}).Where("email = ?", input.Email).Count(&count)
		if count > 0 {
			errs.Add("email", "This email is already registered.")
		}
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	reseller := &models.Reseller{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		WhatsappNumber: input.WhatsappNumber,
		UniqueCode:     utils.GenerateResellerCode(input.Email, s.Now()),
		Status:         models.StatusActive,
	}

	if err := s.DB.Create(reseller).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FieldErrors{"email": "This email is already registered."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create reseller"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reseller":    reseller,
		"landing_url": landingURL(reseller.UniqueCode),
		"stats":       models.ReferralStats{},
	})
}

// Landing serves the public partner page: active reseller by code (404 for
// unknown or inactive codes) plus the active product catalogue.
func (s *ResellerService) Landing(c *fiber.Ctx) error {
	code := c.Params("code")

	var reseller models.Reseller
	err := s.DB.Scopes(models.Active).Where("unique_code = ?", code).First(&reseller).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reseller not found"})
	}

	var products []models.Product
	if err := s.DB.Scopes(models.Active).Order("created_at DESC").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}

	return c.JSON(fiber.Map{
		"reseller":      reseller,
		"products":      viewProducts(products),
		"referrer_code": code,
	})
}

// Dashboard serves the reseller's referral view: the referred members
// newest first (paginated) and the three counters. The whole read 404s when
// the code is unknown or the reseller inactive — no partial stats.
func (s *ResellerService) Dashboard(c *fiber.Ctx) error {
	code := c.Params("code")

	var reseller models.Reseller
	err := s.DB.Scopes(models.Active).Where("unique_code = ?", code).First(&reseller).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reseller not found"})
	}

	page, perPage := pageParams(c, 10)
	var referrals []models.Member
	if err := s.DB.Where("referrer_code = ?", code).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&referrals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load referrals"})
	}

	stats, err := ReferralStats(s.DB, s.Stats, code, s.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
	}

	return c.JSON(fiber.Map{
		"reseller":    reseller,
		"referrals":   referrals,
		"stats":       stats,
		"page":        page,
		"per_page":    perPage,
		"landing_url": landingURL(code),
	})
}

// ListResellers is the admin listing: newest first, paginated, each row
// carrying its all-time referral count.
func (s *ResellerService) ListResellers(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 15)

	var total int64
	s.DB.Model(&models.Reseller{}).Count(&total)

	var resellers []models.Reseller
	if err := s.DB.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&resellers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list resellers"})
	}

	type resellerRow struct {
		models.Reseller
		ReferralsCount int64 `json:"referrals_count"`
	}
	rows := make([]resellerRow, len(resellers))
	for i, r := range resellers {
		var count int64
		s.DB.Model(&models.Member{}).Where("referrer_code = ?", r.UniqueCode).Count(&count)
		rows[i] = resellerRow{Reseller: r, ReferralsCount: count}
	}

	return c.JSON(fiber.Map{
		"data":     rows,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// GetReseller is the admin detail view: the reseller regardless of status,
// its referrals and its stats.
func (s *ResellerService) GetReseller(c *fiber.Ctx) error {
	var reseller models.Reseller
	if err := s.DB.First(&reseller, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reseller not found"})
	}

	page, perPage := pageParams(c, 10)
	var referrals []models.Member
	s.DB.Where("referrer_code = ?", reseller.UniqueCode).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&referrals)

	stats, err := ReferralStats(s.DB, s.Stats, reseller.UniqueCode, s.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
	}

	return c.JSON(fiber.Map{
		"reseller":    reseller,
		"referrals":   referrals,
		"stats":       stats,
		"landing_url": landingURL(reseller.UniqueCode),
	})
}

// UpdateReseller edits name, email, whatsapp and status. The unique code is
// immutable after creation: renaming it would orphan every member that
// registered under it.
func (s *ResellerService) UpdateReseller(c *fiber.Ctx) error {
	var reseller models.Reseller
	if err := s.DB.First(&reseller, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reseller not found"})
	}

	var input struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		WhatsappNumber string `json:"whatsapp_number"`
		Status         string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	errs := utils.FieldErrors{}
	errs.Require("name", input.Name, "Name is required.")
	errs.Require("whatsapp_number", input.WhatsappNumber, "WhatsApp number is required.")
	if input.Email == "" {
		errs.Add("email", "Email address is required.")
	} else if !utils.ValidEmail(input.Email) {
		errs.Add("email", "Please provide a valid email address.")
	} else {
		var count int64
		s.DB.Model(&models.Reseller{}).
			Where("email = ? AND id <> ?", input.Email, reseller.ID).Count(&count)
		if count > 0 {
			errs.Add("email", "This email is already registered.")
		}
	}
	if input.Status != "" && input.Status != models.StatusActive && input.Status != models.StatusInactive {
		errs.Add("status", "Status must be active or inactive.")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	reseller.Name = input.Name
	reseller.Email = input.Email
	reseller.WhatsappNumber = input.WhatsappNumber
	if input.Status != "" {
		reseller.Status = input.Status
	}

	if err := s.DB.Save(&reseller).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FieldErrors{"email": "This email is already registered."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update reseller"})
	}

	return c.JSON(reseller)
}

// DeleteReseller removes the reseller row. Members keep their stored code:
// the by-value linkage means nothing cascades and dashboards for the code
// simply stop resolving.
func (s *ResellerService) DeleteReseller(c *fiber.Ctx) error {
	res := s.DB.Delete(&models.Reseller{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete reseller"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reseller not found"})
	}
	return c.JSON(fiber.Map{"message": "reseller deleted"})
}

func landingURL(code string) string {
	base := strings.TrimRight(envOr("PUBLIC_BASE_URL", "http://localhost:5200"), "/")
	return fmt.Sprintf("%s/partner/%s", base, code)
}
