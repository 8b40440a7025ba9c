// Package api wires the HTTP surface: route registration, JWT auth and the
// error-to-status mapping shared by all handlers.
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type Handlers struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Order   *OrderHandler
	Payment *PaymentHandler
	Review  *ReviewHandler
	Game    *GameHandler
}

// Register mounts all routes under /api. The webhook route stays outside the
// JWT group: the gateway authenticates with its signature, not a token.
func Register(e *echo.Echo, h Handlers, authUC *usecase.AuthUseCase, jwtSecret []byte) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")

	authed := JWTMiddleware(jwtSecret)
	loaded := LoadUser(authUC)

	users := api.Group("/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/verify-otp", h.Auth.VerifyOTP)
	users.POST("/login", h.Auth.Login)
	users.POST("/google-login", h.Auth.GoogleLogin)
	users.POST("/forgot-password", h.Auth.ForgotPassword)
	users.POST("/reset-password", h.Auth.ResetPassword)
	users.GET("/profile", h.Auth.Profile, authed, loaded)
	users.PUT("/profile", h.Auth.UpdateProfile, authed, loaded)

	admin := api.Group("/admin")
	admin.POST("/send-otp", h.Auth.AdminSendOTP)
	admin.POST("/verify-otp", h.Auth.AdminVerifyOTP)
	admin.GET("/users", h.Auth.ListUsers, authed, loaded, AdminOnly)
	admin.DELETE("/users/:id", h.Auth.DeleteUser, authed, loaded, AdminOnly)
	admin.PATCH("/users/:id/block", h.Auth.ToggleBlock, authed, loaded, AdminOnly)

	products := api.Group("/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.POST("", h.Product.Create, authed, loaded, AdminOnly)
	products.PUT("/:id", h.Product.Update, authed, loaded, AdminOnly)
	products.DELETE("/:id", h.Product.Delete, authed, loaded, AdminOnly)
	products.POST("/upload-images", h.Product.UploadImages, authed, loaded, AdminOnly)
	products.POST("/upload-video", h.Product.UploadVideo, authed, loaded, AdminOnly)

	orders := api.Group("/orders", authed, loaded)
	orders.POST("/create", h.Order.Create)
	orders.GET("", h.Order.ListAll, AdminOnly)
	orders.GET("/myorders", h.Order.Mine)
	orders.GET("/:id", h.Order.Get)
	orders.PUT("/:id/status", h.Order.UpdateStatus, AdminOnly)

	payments := api.Group("/payments", authed, loaded)
	payments.POST("/create-order", h.Payment.CreateOrder)
	payments.POST("/verify", h.Payment.Verify)

	api.POST("/razorpay/webhook", h.Payment.Webhook)

	reviews := api.Group("/reviews")
	reviews.GET("/:productId", h.Review.ByProduct)
	reviews.POST("", h.Review.Add, authed, loaded)
	reviews.DELETE("/:id", h.Review.Delete, authed, loaded, AdminOnly)

	game := api.Group("/game")
	game.GET("/leaderboard/:gameName", h.Game.Leaderboard)
	game.POST("/update", h.Game.SubmitScore, authed, loaded)
	game.GET("/my-scores", h.Game.MyScores, authed, loaded)
}
