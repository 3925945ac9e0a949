// handlers/reseller.go
package handlers

import (
	"digimarket/middleware"
	"digimarket/services"

	"github.com/gofiber/fiber/v2"
)

func SetupResellerRoutes(app *fiber.App, resellerService *services.ResellerService) {
	// 🔓 Public partner surface
	app.Get("/partner/:code", resellerService.Landing)
	app.Post("/resellers", resellerService.Register)
	app.Get("/resellers/:code/dashboard", resellerService.Dashboard)

	// 🔐 Administrative management
	admin := app.Group("/admin", middleware.AdminAuthMiddleware())
	admin.Get("/resellers", resellerService.ListResellers)
	admin.Get("/resellers/:id", resellerService.GetReseller)
	admin.Put("/resellers/:id", resellerService.UpdateReseller)
	admin.Patch("/resellers/:id", resellerService.UpdateReseller)
	admin.Delete("/resellers/:id", resellerService.DeleteReseller)
}
