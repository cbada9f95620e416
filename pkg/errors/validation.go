package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLibraryNameLength bounds TikZ library names accepted from users.
const maxLibraryNameLength = 64

// libraryNameRegex matches TikZ library names such as "arrows",
// "shapes.geometric" or "decorations.pathmorphing".
var libraryNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]*$`)

// ValidateLibraryName validates a TikZ library name before it is written
// into a document preamble. Braces, backslashes and whitespace are rejected
// so a name cannot inject LaTeX.
func ValidateLibraryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLibrary, "library name cannot be empty")
	}

	if len(name) > maxLibraryNameLength {
		return New(ErrCodeInvalidLibrary, "library name too long (max %d characters)", maxLibraryNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLibrary, "library name contains invalid control characters")
		}
	}

	if !libraryNameRegex.MatchString(name) {
		return New(ErrCodeInvalidLibrary, "invalid TikZ library name: %q", name)
	}

	return nil
}

// ValidateLibraries validates every name with [ValidateLibraryName].
func ValidateLibraries(names []string) error {
	for _, name := range names {
		if err := ValidateLibraryName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath checks a user-supplied file path. It rejects empty paths and
// paths containing NUL bytes, which the OS would otherwise truncate.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidInput, "path contains a NUL byte")
	}
	return nil
}
