package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFilter = "VALIDATION_INVALID_FILTER"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_/VARIANT_/IMAGE_/COLOR_) ====================
	ProductNotFound   = "PRODUCT_NOT_FOUND"
	ProductNameExists = "PRODUCT_NAME_EXISTS"
	VariantNotFound   = "VARIANT_NOT_FOUND"
	ImageNotFound     = "IMAGE_NOT_FOUND"
	ImageNotOwned     = "IMAGE_NOT_OWNED"
	ColorNotFound     = "COLOR_NOT_FOUND"
	ColorNameExists   = "COLOR_NAME_EXISTS"

	// ==================== Reviews (COMMENT_) ====================
	CommentNotFound      = "COMMENT_NOT_FOUND"
	CommentInvalidRating = "COMMENT_INVALID_RATING"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
	InternalCacheError    = "INTERNAL_CACHE_ERROR"
)
