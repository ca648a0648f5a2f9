package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"libraryapi/internal/util"
	"libraryapi/pkg/domain"
)

// apiErrors is the error body shared by all failure responses.
type apiErrors struct {
	Erros []string `json:"erros"`
}

func writeErrors(c *gin.Context, status int, messages ...string) {
	c.AbortWithStatusJSON(status, apiErrors{Erros: messages})
}

func notFound(c *gin.Context, msg string) {
	writeErrors(c, http.StatusNotFound, msg)
}

func badRequest(c *gin.Context, msg string) {
	writeErrors(c, http.StatusBadRequest, msg)
}

// writeBindError reports request body failures: one message per invalid
// field, or a single generic message for undecodable bodies.
func writeBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fieldMessage(fe))
		}
		writeErrors(c, http.StatusBadRequest, messages...)
		return
	}
	badRequest(c, "invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " must not be empty"
	default:
		return field + " is invalid"
	}
}

// writeServiceError translates service failures: business rule violations and
// missing identifiers become 400, anything else is an unrecovered server
// failure.
func writeServiceError(c *gin.Context, err error) {
	var be *domain.BusinessError
	if errors.As(err, &be) {
		badRequest(c, be.Error())
		return
	}
	if errors.Is(err, domain.ErrMissingID) {
		badRequest(c, err.Error())
		return
	}
	util.LoggerFromContext(c.Request.Context()).Error("request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	)
	writeErrors(c, http.StatusInternalServerError, "internal error")
}
