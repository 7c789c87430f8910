package apperr

import "github.com/ihirwe/stockroom/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	ProductNotFoundCode = "PRODUCT_NOT_FOUND"
	CategoryExistsCode  = "CATEGORY_EXISTS"
	CategoryInUseCode   = "CATEGORY_IN_USE"
	StoreErrorCode      = "STORE_UNAVAILABLE"
)

var (
	ValidationErr      = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	CategoryExistsErr  = zerror.NewConflict(CategoryExistsCode, "category already exists")
	CategoryInUseErr   = zerror.NewConflict(CategoryInUseCode, "category is referenced by products")
	StoreErr           = zerror.NewBadGateway(StoreErrorCode, "inventory store request failed")
)
