package sweepapi

import "github.com/pkg/errors"

// Error kinds surfaced by configuration and dispatch operations. Every
// failure aborts the enclosing invocation with no partial commit; callers
// distinguish "not yet due" (ErrCooldownActive) from misconfiguration
// (ErrAuthorityNotSet, ErrAdminMismatch) from arithmetic faults
// (ErrArithmeticUnderflow) via errors.Is.
var (
	ErrNotListed           = errors.New("market not listed")
	ErrAuthorityNotSet     = errors.New("extraction authority not set")
	ErrHandlerNotSet       = errors.New("conversion handler not set")
	ErrCooldownActive      = errors.New("cooldown active")
	ErrConversionFailed    = errors.New("conversion failed")
	ErrAdminMismatch       = errors.New("authority does not match market administrator")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRatio        = errors.New("ratio exceeds denominator")
	ErrUnauthorized        = errors.New("caller is not the operator")
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
)
