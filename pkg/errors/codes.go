package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeInvalidParam   ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeSerialization  ErrorCode = "COMMON_004"
	ErrCodeNotImplemented ErrorCode = "COMMON_005"
	ErrCodeIO             ErrorCode = "COMMON_006"
)

// Tabular Data Error Codes
const (
	// ErrCodeFileFormat marks input tables that cannot be parsed with the
	// configured separator (ragged rows, empty files, unreadable paths).
	ErrCodeFileFormat ErrorCode = "DATA_001"

	// ErrCodeMissingColumn marks a required column absent from a table,
	// either at load time or re-validated at transform time.
	ErrCodeMissingColumn ErrorCode = "DATA_002"

	// ErrCodeShapeMismatch marks an ID/feature row-count disagreement during
	// output assembly.
	ErrCodeShapeMismatch ErrorCode = "DATA_003"
)

// Descriptor Error Codes
const (
	// ErrCodeInvalidConfig marks invalid transformer parameters.  For
	// composite specs the message aggregates every per-column failure.
	ErrCodeInvalidConfig ErrorCode = "DESC_001"

	// ErrCodeUnfitTransformer marks a Transform call on a vocabulary-dependent
	// transformer that has not been fit.
	ErrCodeUnfitTransformer ErrorCode = "DESC_002"

	// ErrCodeInvalidSMILES marks a structure string that cannot be parsed.
	ErrCodeInvalidSMILES ErrorCode = "DESC_003"

	// ErrCodeFingerprintTypeUnsupported marks an unknown fingerprint scheme.
	ErrCodeFingerprintTypeUnsupported ErrorCode = "DESC_004"
)

// Model Error Codes
const (
	ErrCodeModelLoadFailed ErrorCode = "MDL_001"
	ErrCodeModelInvalid    ErrorCode = "MDL_002"
)

// Analysis Error Codes
const (
	// ErrCodeAttribution marks a model/feature width mismatch (or any other
	// failure) while computing per-atom contributions.
	ErrCodeAttribution ErrorCode = "ANL_001"

	// ErrCodePlotFailed marks a rendering failure in the plotting backend.
	ErrCodePlotFailed ErrorCode = "ANL_002"
)

// Aliases kept short for call-site readability.
const (
	CodeInternal          = ErrCodeInternal
	CodeInvalidParam      = ErrCodeInvalidParam
	CodeNotImplemented    = ErrCodeNotImplemented
	CodeFileFormat        = ErrCodeFileFormat
	CodeMissingColumn     = ErrCodeMissingColumn
	CodeShapeMismatch     = ErrCodeShapeMismatch
	CodeInvalidConfig     = ErrCodeInvalidConfig
	CodeUnfitTransformer  = ErrCodeUnfitTransformer
	CodeInvalidSMILES     = ErrCodeInvalidSMILES
	CodeAttribution       = ErrCodeAttribution
	CodeUnknown           = ErrorCode("UNKNOWN")
	CodeOK                = ErrorCode("OK")
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeInvalidParam:   "invalid parameter",
	ErrCodeNotFound:       "resource not found",
	ErrCodeSerialization:  "serialization failed",
	ErrCodeNotImplemented: "not implemented",
	ErrCodeIO:             "i/o failure",

	ErrCodeFileFormat:    "input table cannot be parsed",
	ErrCodeMissingColumn: "required column not found",
	ErrCodeShapeMismatch: "row count mismatch between IDs and features",

	ErrCodeInvalidConfig:              "invalid descriptor configuration",
	ErrCodeUnfitTransformer:           "transformer used before fit",
	ErrCodeInvalidSMILES:              "invalid SMILES format",
	ErrCodeFingerprintTypeUnsupported: "unsupported fingerprint type",

	ErrCodeModelLoadFailed: "failed to load model artifact",
	ErrCodeModelInvalid:    "model artifact is invalid",

	ErrCodeAttribution: "atom attribution failed",
	ErrCodePlotFailed:  "plot rendering failed",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
