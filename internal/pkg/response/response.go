package response

import "github.com/gin-gonic/gin"

// Success writes the standard success envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

// Fail writes a client-error envelope (4xx).
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  "fail",
		"message": message,
	})
}

// FailWithDetails writes a client-error envelope with per-field details.
func FailWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"status":  "fail",
		"message": message,
		"details": details,
	})
}

// Error writes a server-error envelope (5xx).
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  "error",
		"message": message,
	})
}
