// Package handlers maps the HTTP surface onto facade calls. Every mutating
// handler evaluates authorization before any input validation, so callers are
// told "forbidden" rather than "your unreachable update is invalid".
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/pkg/response"
)

// respondError converts any error into the response envelope. Typed errors
// keep their message; anything else is masked as a 500 and logged.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.WithError(err).
			WithField("request_id", c.GetString("request_id")).
			WithField("path", c.FullPath()).
			Error("request failed")
	}
	var details interface{}
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Field != "" {
		details = map[string]string{ae.Field: ae.Message}
	}
	response.Error[any](c, status, apperr.Message(err), details)
}
