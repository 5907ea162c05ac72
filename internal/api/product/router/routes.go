// Package router đăng ký route /products và /product-categories.
package router

import (
	"github.com/gofiber/fiber/v3"

	producthdl "github.com/doilonvl/salathai-be-demo/internal/api/product/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

// Register GET công khai, ghi cần đăng nhập
func Register(products *producthdl.ProductHandler, categories *producthdl.CategoryHandler) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		auth := r.AdminAuth()

		cat := base.Group("/product-categories")
		cat.Get("/", categories.HandleList)
		cat.Get("/:id", categories.HandleGet)
		apirouter.RegisterRouteWithMiddleware(base, "/product-categories", "POST", "/", auth, categories.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(base, "/product-categories", "PUT", "/:id", auth, categories.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(base, "/product-categories", "DELETE", "/:id", auth, categories.HandleDelete)

		prod := base.Group("/products")
		prod.Get("/", products.HandleList)
		prod.Get("/:id", products.HandleGet)
		apirouter.RegisterRouteWithMiddleware(base, "/products", "POST", "/", auth, products.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(base, "/products", "PUT", "/:id", auth, products.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(base, "/products", "DELETE", "/:id", auth, products.HandleDelete)
		return nil
	}
}
