// handlers/member.go
package handlers

import (
	"digimarket/middleware"
	"digimarket/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMemberRoutes(app *fiber.App, memberService *services.MemberService) {
	// 🔓 Public registration flow
	app.Get("/register-member", memberService.RegisterForm)
	app.Post("/register-member", memberService.Register)
	app.Get("/members/:id", memberService.GetMember)

	// 🔐 Administrative management
	admin := app.Group("/admin", middleware.AdminAuthMiddleware())
	admin.Get("/members", memberService.ListMembers)
	admin.Get("/members/:id", memberService.GetMember)
	admin.Put("/members/:id", memberService.UpdateMember)
	admin.Patch("/members/:id", memberService.UpdateMember)
	admin.Delete("/members/:id", memberService.DeleteMember)
}
