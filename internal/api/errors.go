package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"rps_game/internal/service" // Service errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a service error to the HTTP status it is reported with
func statusFor(err error) int {
	switch {
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrGameLocked):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrAlreadyFinished),
		errors.Is(err, service.ErrNoRepeatsLeft),
		errors.Is(err, service.ErrInvalidSymbol),
		errors.Is(err, service.ErrInvalidBet),
		errors.Is(err, service.ErrInvalidTask),
		errors.Is(err, service.ErrAmountOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body; unexpected errors are logged and hidden from the client
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

// errorMessage keeps the wording clients already match on
func errorMessage(err error) string {
	if errors.Is(err, service.ErrInsufficientFunds) {
		return "Not enough balance"
	}
	if errors.Is(err, service.ErrAlreadyFinished) {
		return "Game already finished"
	}
	return err.Error()
}

// pathID parses an integer path parameter and answers 400 when it is not one
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
