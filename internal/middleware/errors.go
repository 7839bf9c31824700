package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"order_admin/internal/apperrors"
)

// ErrorHandler is the single place REST errors become responses.
// Handlers push errors with c.Error and return; the taxonomy is mapped
// to a status code and a {message, ...} envelope here.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)

		// malformed request body
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
			errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid JSON format. Please check your request body.",
			})
			return
		}

		// validation failure, with per-field messages
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]gin.H, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, gin.H{
					"field":   strings.ToLower(fe.Field()),
					"message": validationMessage(fe),
				})
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation failed",
				"errors":  fields,
			})
			return
		}

		// business-rule violations carry their own status
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Status, gin.H{
				"message":    appErr.Message,
				"statusCode": appErr.Status,
			})
			return
		}

		// store-level duplicate key
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Duplicate Email/ID is already in use.",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func isDuplicateKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
