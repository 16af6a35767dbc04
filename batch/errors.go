package batch

import "errors"

var (
	// ErrTranslatorRequired is returned when a translator is not provided.
	ErrTranslatorRequired = errors.New("translator required")

	// ErrUnknownKind is returned for a job whose kind the pipeline does not handle.
	ErrUnknownKind = errors.New("unknown job kind")

	// ErrEmptyJob is returned for a lock conflict job without a validation record.
	ErrEmptyJob = errors.New("job has no validation record")

	// ErrJobPanicked is returned for a job whose translation panicked.
	ErrJobPanicked = errors.New("job panicked")
)
