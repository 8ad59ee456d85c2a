package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectContext extracts the project id scoping every API call, from the
// project_id query parameter or the X-Project-ID header. Every read and
// write below this layer filters on it; no further authorization is applied
// here.
func ProjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Query("project_id")
		if projectID == "" {
			projectID = c.GetHeader("X-Project-ID")
		}

		if _, err := uuid.Parse(projectID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_input",
				Message: "a valid project_id is required",
			})
			return
		}

		c.Set("project_id", projectID)
		c.Next()
	}
}
