package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xgrece/bodegon/utils"
)

// TicketLogger records every kitchen ticket print attempt.
func TicketLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Debugf("Generating ticket for order ID: %s", c.Param("id"))

		c.Next()

		fields := logrus.Fields{
			"order_id":   c.Param("id"),
			"status":     c.Writer.Status(),
			"request_id": c.GetString(RequestIDKey),
		}
		if c.Writer.Status() == http.StatusOK {
			utils.InfoLogger.WithFields(fields).Info("Ticket generated")
		} else {
			utils.ErrorLogger.WithFields(fields).Warn("Ticket not generated")
		}
	}
}
