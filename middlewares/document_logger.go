package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// DocumentLoggerMiddleware logs PDF and export downloads before and after rendering.
func DocumentLoggerMiddleware(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Sebelum request
		target := c.Param("id")
		if target == "" {
			target = c.Request.URL.RawQuery
		}
		utils.InfoLogger.Printf("Generating %s for %q", kind, target)

		c.Next()

		// Setelah request
		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("%s generated for %q (%d bytes)", kind, target, c.Writer.Size())
		} else {
			utils.ErrorLogger.Printf("Failed to generate %s for %q: status %d", kind, target, c.Writer.Status())
		}
	}
}
