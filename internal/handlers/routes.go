package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/m7real/ex-mobile-server/internal/middleware"
)

// Register mounts every route on app.
func Register(app fiber.Router, d Deps) {
	b := base{timeout: d.StoreTimeout}
	catalog := &CatalogHandler{base: b, catalog: d.Catalog}
	products := &ProductHandler{base: b, products: d.Products, images: d.Images}
	bookings := &BookingHandler{base: b, bookings: d.Bookings}
	auth := &AuthHandler{base: b, users: d.Users}
	admin := &AdminHandler{base: b, users: d.Users}

	authenticated := middleware.Auth(d.Tokens)
	adminOnly := middleware.RequireAdmin(d.Access, d.StoreTimeout)
	sellerOnly := middleware.RequireSeller(d.Access, d.StoreTimeout)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ex Mobile Server is running")
	})

	app.Get("/categories", catalog.ListCategories)
	app.Get("/categories/:id", catalog.GetCategory)
	app.Get("/blog", catalog.ListBlog)
	app.Get("/faq", catalog.ListFAQ)
	app.Get("/stats", catalog.Stats)

	app.Get("/products/advertised", products.ListAdvertised)
	app.Get("/products", authenticated, products.List)
	app.Post("/products", authenticated, sellerOnly, products.Create)
	app.Put("/products/:id", authenticated, products.Update)
	app.Delete("/products/:id", authenticated, products.Delete)
	app.Post("/products/:id/image", authenticated, sellerOnly, products.UploadImage)

	app.Get("/bookings", authenticated, bookings.List)
	app.Post("/bookings", authenticated, bookings.Create)

	app.Get("/jwt", auth.IssueToken)
	app.Get("/users/admin/:email", auth.CheckAdmin)
	app.Get("/users/seller/:email", auth.CheckSeller)
	app.Post("/users", auth.CreateUser)

	app.Get("/users", authenticated, adminOnly, admin.ListUsers)
	app.Put("/users/admin/:id", authenticated, adminOnly, admin.PromoteAdmin)
	app.Put("/users/seller/:id", authenticated, adminOnly, admin.VerifySeller)
	app.Delete("/users/:id", authenticated, adminOnly, admin.DeleteUser)
}
