package services

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageParams reads page/per_page query params with sane bounds.
func pageParams(c *fiber.Ctx, defaultPerPage int) (page, perPage int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err = strconv.Atoi(c.Query("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}
