package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response envelope shared by every endpoint. The HTTP status code always
// mirrors the embedded status field.

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"status": status, "data": data, "message": message})
}

func respondError(c *gin.Context, status int, message string, err any) {
	c.JSON(status, gin.H{"status": status, "message": message, "error": err})
}

// isNotFound reports whether a lookup error means the record is absent, as
// opposed to a store fault.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// respondLookupError maps a failed record lookup to the envelope: a
// confirmed miss is 404, anything else is a persistence fault and maps
// to 500.
func respondLookupError(c *gin.Context, message string, err error) {
	if isNotFound(err) {
		respondError(c, http.StatusNotFound, message, nil)
		return
	}
	respondError(c, http.StatusInternalServerError, "Server error", err.Error())
}
