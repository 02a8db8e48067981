package api

import (
	"net/http" // HTTP status codes

	"record_store/internal/middleware" // Error responses and current user
	"record_store/internal/service"    // Portal service

	"github.com/gin-gonic/gin" // Gin web framework
)

// GradesHandler returns every grade of the current student
func GradesHandler(portal *service.Portal) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		grades, err := portal.Grades(c.Request.Context(), user.Username)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"grades": grades})
	}
}

// GradeHandler returns the current student's grade for one subject
func GradeHandler(portal *service.Portal) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		subject := c.Param("subject")
		grade, err := portal.Grade(c.Request.Context(), user.Username, subject)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": subject, "grade": grade})
	}
}
