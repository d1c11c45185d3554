package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/normalize"
	"github.com/guttosm/salespulse/internal/taskclient"
)

// User-facing messages of the error taxonomy.
const (
	MsgNetwork  = "could not reach the task service, please try again later"
	MsgNotReady = "task data is not ready yet"
	MsgParse    = "the task dataset contains malformed records"
	MsgTimeout  = "the request timed out"
	MsgInternal = "internal server error"
)

// Classify maps an error to the HTTP status and message the API answers with.
//
//   - *taskclient.NetworkError  -> 502
//   - *taskclient.DataNotReadyError -> 409
//   - *normalize.ParseError     -> 422
//   - context deadline          -> 504
//   - anything else             -> 500
func Classify(err error) (int, string) {
	var (
		ne *taskclient.NetworkError
		nr *taskclient.DataNotReadyError
		pe *normalize.ParseError
	)
	switch {
	case errors.As(err, &nr):
		return http.StatusConflict, MsgNotReady
	case errors.As(err, &pe):
		return http.StatusUnprocessableEntity, MsgParse
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, MsgTimeout
	case errors.As(err, &ne):
		return http.StatusBadGateway, MsgNetwork
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// ErrorHandler writes the standard error body for the last error a handler
// attached with c.Error, unless the handler already wrote a response.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
//	...
//	if err != nil {
//	    _ = c.Error(err)
//	    return
//	}
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, msg := Classify(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// AbortWithError stops the chain and answers with the standard error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
