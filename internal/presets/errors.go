package presets

import "errors"

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrNilDB          = errors.New("database connection is nil")
	ErrEmptyName      = errors.New("preset name is empty")
)
