package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-backend/internal/service"
)

// respondError writes the service error in the shared wire shape. Internal
// errors are logged but never leak their message to the client.
func respondError(c *gin.Context, err error) {
	status := service.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Something went wrong"
	}
	c.JSON(status, gin.H{
		"error": message,
		"code":  service.Code(err),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"code":  "INVALID_REQUEST",
	})
}
