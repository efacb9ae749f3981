package s3source

import "errors"

var (
	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid S3 source configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// S3 errors
	ErrObjectNotFound     = errors.New("resource object not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrFailedToReadObject = errors.New("failed to read resource object")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
