// File: beautyboosters/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	JWTSecret     []byte
	SecureCookies bool

	// Cart endpoints
	GetCartHandler   gin.HandlerFunc
	AddCartItem      gin.HandlerFunc
	RemoveCartItem   gin.HandlerFunc
	ClearCartHandler gin.HandlerFunc
	GetCartTotals    gin.HandlerFunc
	CheckoutHandler  gin.HandlerFunc

	// Schedule endpoints
	GetScheduleGrid gin.HandlerFunc
	DropHandler     gin.HandlerFunc

	// Notification endpoints
	StreamToastsHandler gin.HandlerFunc

	// Collaborator endpoints
	CreateGiftCardHandler   gin.HandlerFunc
	GenerateJobTitleHandler gin.HandlerFunc
	AuthHookHandler         gin.HandlerFunc
	SendEmailHandler        gin.HandlerFunc
	PublishableKeyHandler   gin.HandlerFunc
}
