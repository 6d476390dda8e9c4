package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// PaymentRequest represents a balance top-up in Telegram Stars
type PaymentRequest struct {
	Price int `json:"price" binding:"required,gt=0"` // Stars to charge
}

// PaymentHandler returns an invoice link for the requested price
// A nil biller means payments are not configured
func PaymentHandler(biller Biller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if biller == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not configured"})
			return
		}
		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		link, err := biller.CreateInvoiceLink(c.Request.Context(), req.Price)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"price": req.Price,
				"error": err.Error(),
			}).Error("Failed to create invoice link")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment link"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"paymentLink": link})
	}
}
