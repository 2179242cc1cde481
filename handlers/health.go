package handlers

import (
	"net/http"

	"fayano/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the last dependency snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm Fayano", "dependencies": status})
}
