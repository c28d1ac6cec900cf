// Package router wires every feature's handlers onto one gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "catalog_backend/internal/feature/auth/transport/handler"
	bookhandler "catalog_backend/internal/feature/books/transport/handler"
	cataloghandler "catalog_backend/internal/feature/catalog/transport/handler"
	"catalog_backend/internal/platform/http/handler"
)

// Handlers groups the feature handlers served by the API.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Books      *bookhandler.BookHandler
	Categories *cataloghandler.CategoryHandler
	Products   *cataloghandler.ProductHandler
}

// Options carries the middleware and settings the routes depend on.
type Options struct {
	// RequireAuth guards every write route and /users/me.
	RequireAuth gin.HandlerFunc
	// AuthLimiter throttles /signup and /signin. Nil disables throttling.
	AuthLimiter gin.HandlerFunc
	// Ready answers /readyz.
	Ready gin.HandlerFunc
	// StaticDir is served under /static. Empty disables it.
	StaticDir string
}

// NewRouter builds the engine with gin's logger and recovery middleware.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	if opts.Ready != nil {
		r.GET("/readyz", opts.Ready)
	}

	// 新規ユーザー登録・ログイン（JWT 発行）
	public := r.Group("/")
	if opts.AuthLimiter != nil {
		public.Use(opts.AuthLimiter)
	}
	public.POST("/signup", h.Auth.Signup)
	public.POST("/signin", h.Auth.Signin)

	// 参照系は認証不要
	r.GET("/books/", h.Books.List)
	r.GET("/books/:id", h.Books.Get)
	r.GET("/categories/", h.Categories.List)
	r.GET("/categories/:id", h.Categories.Get)
	r.GET("/categories/:id/children", h.Categories.Children)
	r.GET("/products/", h.Products.List)
	r.GET("/products/:id", h.Products.Get)
	r.GET("/products/:id/categories", h.Products.Categories)

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	// 認証必須のルート
	// → リクエストヘッダーに Bearer トークンが必要になる
	auth := r.Group("/")
	auth.Use(opts.RequireAuth)
	{
		auth.GET("/users/me", h.Auth.Me)

		auth.POST("/books/", h.Books.Create)
		auth.PUT("/books/:id", h.Books.Update)
		auth.DELETE("/books/:id", h.Books.Delete)

		auth.POST("/categories/", h.Categories.Create)
		auth.PUT("/categories/:id", h.Categories.Update)
		auth.DELETE("/categories/:id", h.Categories.Delete)
		auth.POST("/categories/:id/upload-image/", h.Categories.UploadImage)

		auth.POST("/products/", h.Products.Create)
		auth.PUT("/products/:id", h.Products.Update)
		auth.DELETE("/products/:id", h.Products.Delete)
		auth.PUT("/products/:id/categories", h.Products.SetCategories)
		auth.POST("/products/:id/upload-image/", h.Products.UploadImage)
	}

	return r
}
