package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ValidationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, JSONResponse{
		Message: err.Error(),
	})
}

// RespondMessage menulis body {"message": ...} tanpa data.
func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, JSONResponse{Message: message})
}

func RespondValidation(c *gin.Context, code int, message string, errors map[string][]string) {
	c.AbortWithStatusJSON(code, ValidationResponse{
		Message: message,
		Errors:  errors,
	})
}
