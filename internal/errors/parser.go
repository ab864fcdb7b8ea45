package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a storage error into a code and a safe message.
// The original error is logged at the call site, never surfaced.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// Postgres unique constraint (23505); sqlite reports "UNIQUE constraint failed"
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data",
		}
	}

	// Not null constraint (23502)
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity failures toward the database, cache or object store
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalStorageError,
			Message: "A backing service is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Internal server error, please try again later",
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "products") {
		return ErrorInfo{Code: ProductNameExists, Message: "A product with this name already exists"}
	}
	if strings.Contains(errStr, "colors") {
		return ErrorInfo{Code: ColorNameExists, Message: "A color with this name already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func notFoundCode(context string) string {
	switch {
	case strings.Contains(context, "product"):
		return ProductNotFound
	case strings.Contains(context, "variant"):
		return VariantNotFound
	case strings.Contains(context, "image"):
		return ImageNotFound
	case strings.Contains(context, "color"):
		return ColorNotFound
	case strings.Contains(context, "comment"):
		return CommentNotFound
	}
	return ResourceNotFound
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "product"):
		return "Product not found"
	case strings.Contains(context, "variant"):
		return "Variant not found"
	case strings.Contains(context, "image"):
		return "Image not found"
	case strings.Contains(context, "color"):
		return "Color not found"
	case strings.Contains(context, "comment"):
		return "Comment not found"
	}
	return "Requested record not found"
}

// IsDuplicateKey reports whether err is a unique-constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint")
}
