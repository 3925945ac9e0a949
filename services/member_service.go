package services

import (
	"errors"
	"strings"

	"digimarket/models"
	"digimarket/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewMemberService(db *gorm.DB, notifier Notifier) *MemberService {
	return &MemberService{DB: db, Notifier: notifier}
}

// MemberInput is the registration payload. ReferrerCode is optional: blank
// means no referral attribution, which is the common case and not an error.
type MemberInput struct {
	FullName       string `json:"full_name" form:"full_name"`
	Address        string `json:"address" form:"address"`
	WhatsappNumber string `json:"whatsapp_number" form:"whatsapp_number"`
	Email          string `json:"email" form:"email"`
	ReferrerCode   string `json:"referrer_code" form:"referrer_code"`
}

// RegisterForm bootstraps the public registration page: active products and
// the referral code carried over from the ?ref= query param, if any.
func (s *MemberService) RegisterForm(c *fiber.Ctx) error {
	var products []models.Product
	if err := s.DB.Scopes(models.Active).Order("created_at DESC").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}

	return c.JSON(fiber.Map{
		"products":      viewProducts(products),
		"referrer_code": c.Query("ref"),
	})
}

// Register validates and persists a new member, then fires the welcome
// notification and — when a referral code was attached — the referral
// notification. Notification failures never fail or roll back the
// registration; the member row is durable regardless.
func (s *MemberService) Register(c *fiber.Ctx) error {
	var input MemberInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	input.FullName = strings.TrimSpace(input.FullName)
	input.Address = strings.TrimSpace(input.Address)
	input.WhatsappNumber = strings.TrimSpace(input.WhatsappNumber)
	input.Email = strings.TrimSpace(input.Email)
	input.ReferrerCode = strings.TrimSpace(input.ReferrerCode)

	fieldErrs, referrer := s.validateRegistration(input)
	if fieldErrs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fieldErrs})
	}

	member := &models.Member{
		ID:             uuid.NewString(),
		FullName:       input.FullName,
		Address:        input.Address,
		WhatsappNumber: input.WhatsappNumber,
		Email:          input.Email,
		Status:         models.StatusActive,
	}
	if input.ReferrerCode != "" {
		// Stored verbatim, by value. No reseller row is touched.
		code := input.ReferrerCode
		member.ReferrerCode = &code
	}

	if err := s.DB.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-act race on the unique email index.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FieldErrors{"email": "This email is already registered."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create member"})
	}

	s.Notifier.NotifyWelcome(member)
	if referrer != nil {
		s.Notifier.NotifyReferral(referrer, member)
	}

	member.Referrer = referrer
	return c.Status(fiber.StatusCreated).JSON(member)
}

// validateRegistration returns the field error bag and, when a referral
// code was supplied and resolves, the matching reseller. The existence
// check accepts resellers of any status — only the landing and dashboard
// reads filter on active.
func (s *MemberService) validateRegistration(input MemberInput) (utils.FieldErrors, *models.Reseller) {
	errs := utils.FieldErrors{}

	errs.Require("full_name", input.FullName, "Full name is required.")
	errs.MaxLen("full_name", input.FullName, 255, "Full name may not be longer than 255 characters.")
	errs.Require("address", input.Address, "Address is required.")
	errs.MaxLen("address", input.Address, 1000, "Address may not be longer than 1000 characters.")
	errs.Require("whatsapp_number", input.WhatsappNumber, "WhatsApp number is required.")
	errs.MaxLen("whatsapp_number", input.WhatsappNumber, 20, "WhatsApp number may not be longer than 20 characters.")

	if input.Email == "" {
		errs.Add("email", "Email address is required.")
	} else if !utils.ValidEmail(input.Email) {
		errs.Add("email", "Please provide a valid email address.")
	} else {
		var count int64
		s.DB.Model(&models.Member{}).Where("email = ?", input.Email).Count(&count)
		if count > 0 {
			errs.Add("email", "This email is already registered.")
		}
	}

	var referrer *models.Reseller
	if input.ReferrerCode != "" {
		var reseller models.Reseller
		// Case-sensitive exact match against the stored code.
		err := s.DB.Where("unique_code = ?", input.ReferrerCode).First(&reseller).Error
		if err != nil {
			errs.Add("referrer_code", "Invalid referrer code.")
		} else {
			referrer = &reseller
		}
	}

	return errs, referrer
}

// GetMember serves the post-registration confirmation view: the member plus
// its resolved referrer, if the stored code still matches a reseller.
func (s *MemberService) GetMember(c *fiber.Ctx) error {
	var member models.Member
	if err := s.DB.First(&member, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}

	s.resolveReferrers([]*models.Member{&member})
	return c.JSON(member)
}

// ListMembers is the admin listing: newest first, paginated, each row with
// its referrer resolved by code.
func (s *MemberService) ListMembers(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 15)

	var total int64
	s.DB.Model(&models.Member{}).Count(&total)

	var members []models.Member
	if err := s.DB.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list members"})
	}

	refs := make([]*models.Member, len(members))
	for i := range members {
		refs[i] = &members[i]
	}
	s.resolveReferrers(refs)

	return c.JSON(fiber.Map{
		"data":     members,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// resolveReferrers fills Member.Referrer for every member whose stored code
// still matches a reseller. Orphaned codes (reseller deleted or code
// changed) simply resolve to nothing — the member rows are never touched.
func (s *MemberService) resolveReferrers(members []*models.Member) {
	codes := make([]string, 0, len(members))
	seen := map[string]bool{}
	for _, m := range members {
		if m.ReferrerCode != nil && !seen[*m.ReferrerCode] {
			seen[*m.ReferrerCode] = true
			codes = append(codes, *m.ReferrerCode)
		}
	}
	if len(codes) == 0 {
		return
	}

	var resellers []models.Reseller
	if err := s.DB.Where("unique_code IN ?", codes).Find(&resellers).Error; err != nil {
		return
	}
	byCode := make(map[string]*models.Reseller, len(resellers))
	for i := range resellers {
		byCode[resellers[i].UniqueCode] = &resellers[i]
	}
	for _, m := range members {
		if m.ReferrerCode != nil {
			m.Referrer = byCode[*m.ReferrerCode]
		}
	}
}

// UpdateMember edits the admin-managed fields. Email stays unique; the
// referral code is not editable here, preserving attribution as entered.
func (s *MemberService) UpdateMember(c *fiber.Ctx) error {
	var member models.Member
	if err := s.DB.First(&member, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}

	var input struct {
		FullName       string `json:"full_name"`
		Address        string `json:"address"`
		WhatsappNumber string `json:"whatsapp_number"`
		Email          string `json:"email"`
		Status         string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	errs := utils.FieldErrors{}
	errs.Require("full_name", input.FullName, "Full name is required.")
	errs.Require("address", input.Address, "Address is required.")
	errs.Require("whatsapp_number", input.WhatsappNumber, "WhatsApp number is required.")
	if input.Email == "" {
		errs.Add("email", "Email address is required.")
	} else if !utils.ValidEmail(input.Email) {
		errs.Add("email", "Please provide a valid email address.")
	} else {
		var count int64
		s.DB.Model(&models.Member{}).
			Where("email = ? AND id <> ?", input.Email, member.ID).Count(&count)
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

	member.FullName = input.FullName
	member.Address = input.Address
	member.WhatsappNumber = input.WhatsappNumber
	member.Email = input.Email
	if input.Status != "" {
		member.Status = input.Status
	}

	if err := s.DB.Save(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FieldErrors{"email": "This email is already registered."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update member"})
	}

	return c.JSON(member)
}

func (s *MemberService) DeleteMember(c *fiber.Ctx) error {
	res := s.DB.Delete(&models.Member{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete member"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}
	return c.JSON(fiber.Map{"message": "member deleted"})
}
