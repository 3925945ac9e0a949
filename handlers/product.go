// handlers/product.go
package handlers

import (
	"digimarket/middleware"
	"digimarket/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App, productService *services.ProductService) {
	// 🔓 Public catalogue
	app.Get("/", productService.Home)

	// 🔐 Administrative management
	admin := app.Group("/admin", middleware.AdminAuthMiddleware())
	admin.Get("/products", productService.ListProducts)
	admin.Get("/products/:id", productService.GetProduct)
	admin.Post("/products", productService.CreateProduct)
	admin.Put("/products/:id", productService.UpdateProduct)
	admin.Patch("/products/:id", productService.UpdateProduct)
	admin.Delete("/products/:id", productService.DeleteProduct)
}
