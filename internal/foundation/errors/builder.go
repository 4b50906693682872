package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.cause = err
	return b
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithCause sets the underlying error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors, one per failure kind. All of them are fatal:
// a build aborts on the first error it detects.

// ConfigError creates a manifest configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError creates a CLI usage error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// DuplicateTopicError reports a topic source declared more than once.
func DuplicateTopicError(message string) *ErrorBuilder {
	return NewError(CategoryDuplicateTopic, message).Fatal()
}

// PathContainmentError reports a topic source resolving outside the project directory.
func PathContainmentError(message string) *ErrorBuilder {
	return NewError(CategoryPathContainment, message).Fatal()
}

// MissingFileError reports a declared topic source that does not exist.
func MissingFileError(message string) *ErrorBuilder {
	return NewError(CategoryMissingFile, message).Fatal()
}

// UnresolvedReferenceError reports a path that does not match any loaded topic.
func UnresolvedReferenceError(message string) *ErrorBuilder {
	return NewError(CategoryUnresolvedReference, message).Fatal()
}

// IOError reports a read, write, copy or remove failure.
func IOError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message).Fatal()
}

// InvalidAssetDirectoryNameError reports an asset directory name that is not a single path segment.
func InvalidAssetDirectoryNameError(message string) *ErrorBuilder {
	return NewError(CategoryInvalidAssetDirectory, message).Fatal()
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
