package api

import (
	"net/http" // HTTP status codes

	"record_store/internal/middleware" // Error responses and current user
	"record_store/internal/service"    // Notes service

	"github.com/gin-gonic/gin" // Gin web framework
)

// NoteRequest is the body of POST and PUT /notes/
type NoteRequest struct {
	Title   string `json:"title" binding:"required"` // Title must be provided
	Content string `json:"content"`                  // Body text
}

// AddNoteHandler creates a note for the current user
func AddNoteHandler(notes *service.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		var req NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		note, err := notes.Add(c.Request.Context(), user.Username, service.NoteInput{Title: req.Title, Content: req.Content})
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Note added successfully", "note_id": note.ID})
	}
}

// ListNotesHandler returns the current user's notes
func ListNotesHandler(notes *service.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		list, err := notes.List(c.Request.Context(), user.Username)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetNoteHandler returns one note
func GetNoteHandler(notes *service.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		note, err := notes.Get(c.Request.Context(), user.Username, c.Param("id"))
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

// UpdateNoteHandler overwrites one note
func UpdateNoteHandler(notes *service.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		var req NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		note, err := notes.Update(c.Request.Context(), user.Username, c.Param("id"), service.NoteInput{Title: req.Title, Content: req.Content})
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully", "note": note})
	}
}

// DeleteNoteHandler removes one note
func DeleteNoteHandler(notes *service.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		if err := notes.Delete(c.Request.Context(), user.Username, c.Param("id")); err != nil {
			middleware.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
	}
}
