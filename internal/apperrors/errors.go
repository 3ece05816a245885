package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedConversion indicates the primary rate table has no entry for a
// currency pair. The converter recovers from this by falling back to the
// remote rate service.
var ErrUnsupportedConversion = errors.New("unsupported conversion pair")

// ErrConversionFailed indicates both the primary rate table and the remote
// fallback failed to produce a rate. This is a hard error for the caller.
var ErrConversionFailed = errors.New("currency conversion failed")

// ErrNoReferencePrice indicates a market has no reference price loaded, so its
// rounding grid cannot be inferred.
var ErrNoReferencePrice = errors.New("no reference price for country")
