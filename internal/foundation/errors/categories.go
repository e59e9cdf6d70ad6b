package errors

import "maps"

// ErrorCategory groups errors by the concern that produced them.
type ErrorCategory string

const (
	// CategoryConfig covers configuration loading and user input.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// CategoryScan covers unreadable or missing source files.
	CategoryScan ErrorCategory = "scan"
	// CategoryParse covers malformed documentation blocks.
	CategoryParse ErrorCategory = "parse"
	// CategoryNormalize covers records that do not fit the tree schema.
	CategoryNormalize ErrorCategory = "normalize"
	// CategoryAdapter covers failures raised by a registered output adapter.
	CategoryAdapter ErrorCategory = "adapter"

	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryCanceled   ErrorCategory = "canceled"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how much of the run an error affects.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // no tree or output can be produced
	SeverityError   ErrorSeverity = "error"   // the current operation failed
	SeverityWarning ErrorSeverity = "warning" // the run continues without the affected item
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext carries structured key/value details for an error.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c[key]
	return v, ok
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Merge returns a new context holding both sets of values; other wins on conflicts.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	out := make(ErrorContext, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}
