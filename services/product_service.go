package services

import (
	"log"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"digimarket/models"
	"digimarket/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

// productView decorates a product with its locale-formatted price for the
// public pages.
type productView struct {
	models.Product
	DisplayPrice string `json:"display_price"`
}

func viewProducts(products []models.Product) []productView {
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = productView{Product: p, DisplayPrice: utils.FormatPrice(p.Price)}
	}
	return views
}

// Home is the public welcome page payload: the active catalogue plus the
// referral code echoed back from ?ref= so the frontend can carry it into
// the registration form.
func (s *ProductService) Home(c *fiber.Ctx) error {
	var products []models.Product
	if err := s.DB.Scopes(models.Active).Order("created_at DESC").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}

	return c.JSON(fiber.Map{
		"products":      viewProducts(products),
		"referrer_code": c.Query("ref"),
	})
}

// ListProducts is the admin listing, any status.
func (s *ProductService) ListProducts(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 15)

	var total int64
	s.DB.Model(&models.Product{}).Count(&total)

	var products []models.Product
	if err := s.DB.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list products"})
	}

	return c.JSON(fiber.Map{
		"data":     viewProducts(products),
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

func (s *ProductService) GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(productView{Product: product, DisplayPrice: utils.FormatPrice(product.Price)})
}

// CreateProduct accepts a multipart form: name, description, price,
// product_type, optional download_link or product_file upload, optional
// cover_image upload, optional publish_at (RFC 3339) for scheduled
// activation. Uploads go to R2 when configured, local uploads/ otherwise.
func (s *ProductService) CreateProduct(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	productType := strings.TrimSpace(c.FormValue("product_type"))
	priceStr := strings.TrimSpace(c.FormValue("price"))

	errs := utils.FieldErrors{}
	errs.Require("name", name, "Product name is required.")
	if productType != models.ProductTypeSoftware && productType != models.ProductTypeEbook {
		errs.Add("product_type", "Product type must be software or ebook.")
	}
	price, perr := strconv.ParseFloat(priceStr, 64)
	if perr != nil || price < 0 {
		errs.Add("price", "Price must be a non-negative number.")
	}

	var publishAt *time.Time
	if v := strings.TrimSpace(c.FormValue("publish_at")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs.Add("publish_at", "Publish time must be RFC 3339.")
		} else {
			publishAt = &t
		}
	}

	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: c.FormValue("description"),
		Price:       price,
		ProductType: productType,
		Status:      models.StatusActive,
	}
	if link := strings.TrimSpace(c.FormValue("download_link")); link != "" {
		product.DownloadLink = &link
	}
	if publishAt != nil && publishAt.After(time.Now()) {
		// Scheduled: stays inactive until the scheduler flips it.
		product.Status = models.StatusInactive
		product.PublishAt = publishAt
	}

	if fileHeader, err := c.FormFile("product_file"); err == nil && fileHeader.Size > 0 {
		url, err := s.storeAsset(fileHeader, "products")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store product file"})
		}
		product.DownloadLink = &url
	}
	if coverHeader, err := c.FormFile("cover_image"); err == nil && coverHeader.Size > 0 {
		url, err := s.storeAsset(coverHeader, "covers")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store cover image"})
		}
		product.CoverURL = &url
	}

	if err := s.DB.Create(product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create product"})
	}

	log.Printf("✅ Product created: %s (%s, %s)", product.Name, product.ProductType, utils.FormatPrice(product.Price))
	return c.Status(fiber.StatusCreated).JSON(productView{Product: *product, DisplayPrice: utils.FormatPrice(product.Price)})
}

// storeAsset uploads to R2 under keyspace/ or falls back to the local
// uploads directory, returning the public URL either way.
func (s *ProductService) storeAsset(fileHeader *multipart.FileHeader, keyspace string) (string, error) {
	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".bin"
	}
	key := keyspace + "/" + uuid.NewString() + ext

	if utils.R2Enabled() {
		return utils.UploadFileToR2(fileHeader, key)
	}

	localPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(fileHeader, localPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(localPath), nil
}

// UpdateProduct edits product fields; the slug follows the name.
func (s *ProductService) UpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	var input struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		ProductType  string  `json:"product_type"`
		DownloadLink *string `json:"download_link"`
		Status       string  `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	errs := utils.FieldErrors{}
	errs.Require("name", input.Name, "Product name is required.")
	if input.ProductType != models.ProductTypeSoftware && input.ProductType != models.ProductTypeEbook {
		errs.Add("product_type", "Product type must be software or ebook.")
	}
	if input.Price < 0 {
		errs.Add("price", "Price must be a non-negative number.")
	}
	if input.Status != "" && input.Status != models.StatusActive && input.Status != models.StatusInactive {
		errs.Add("status", "Status must be active or inactive.")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	product.Name = input.Name
	product.Slug = slug.Make(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.ProductType = input.ProductType
	if input.DownloadLink != nil {
		product.DownloadLink = input.DownloadLink
	}
	if input.Status != "" {
		product.Status = input.Status
		if input.Status == models.StatusActive {
			product.PublishAt = nil
		}
	}

	if err := s.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update product"})
	}

	return c.JSON(productView{Product: product, DisplayPrice: utils.FormatPrice(product.Price)})
}

func (s *ProductService) DeleteProduct(c *fiber.Ctx) error {
	res := s.DB.Delete(&models.Product{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete product"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
