package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "groq-chatbot/pkg/errors"
	"groq-chatbot/pkg/response"
)

// Health response constants.
const (
	HealthMessage = "Groq chatbot API"
	HealthVersion = "1.0.0"
	ServiceName   = "groq-chatbot"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once at least one model provider is configured.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "No model provider configured"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if len(srv.providers) == 0 {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "no model provider configured"), nil)
		return
	}
	payload := gin.H{
		"status":    "ready",
		"version":   HealthVersion,
		"service":   ServiceName,
		"providers": srv.providers,
	}
	if srv.sessions != nil {
		payload["sessions"] = srv.sessions.CountSessions(c.Request.Context())
	}
	response.OK(c, payload)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
