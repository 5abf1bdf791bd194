package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/storage"
)

const maxNameLength = 200

// validateName checks that name is usable as a single file name.
// Quiz titles and video filenames become file names on disk, so anything that could
// escape the store directory or produce an unreadable name is rejected.
func validateName(field, name string) error {
	if name == "" {
		return errs.Validation(field, "is required")
	}
	if !utf8.ValidString(name) {
		return errs.Validation(field, "must be valid UTF-8")
	}
	if len(name) > maxNameLength {
		return errs.Validation(field, "is too long")
	}
	if strings.TrimSpace(name) != name {
		return errs.Validation(field, "must not start or end with whitespace")
	}
	if name == "." || name == ".." {
		return errs.Validation(field, "is not a valid name")
	}
	if storage.IsReservedName(name) {
		return errs.Validation(field, "is reserved for temporary files")
	}
	if strings.ContainsAny(name, `/\`) {
		return errs.Validation(field, "must not contain path separators")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errs.Validation(field, "must not contain control characters")
		}
	}
	return nil
}
