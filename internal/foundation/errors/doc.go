// Package errors provides the classified error primitives used across wikibook.
//
// Every failure is fatal to the current build. Errors carry the offending path or
// field in their context so the CLI can name it.
//
// Key features:
//   - ErrorCategory: one category per failure kind (config, duplicate topic, path
//     containment, missing file, unresolved reference, filesystem, asset directory)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.DuplicateTopicError("topic already defined").
//		WithContext("source", absPath).
//		Build()
package errors
