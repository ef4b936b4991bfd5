package validator

import (
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var fileNameRegex = regexp.MustCompile(`^\w+$`)

// File validates an uploaded file's name, extension, and size. The byte
// stream is read in full to measure size and its cursor is restored to the
// start on every exit path, so downstream consumers can re-read the content.
type File struct {
	// AllowedExtensions holds lower-case extensions including the leading
	// dot, e.g. ".pdf".
	AllowedExtensions []string
	// MaxSizeMB caps the file size in megabytes. Zero disables the check.
	MaxSizeMB int64
}

// NewDocument returns a File validator for office documents capped at 2MB.
func NewDocument() File {
	return File{
		AllowedExtensions: []string{".pdf", ".docx", ".xlsx"},
		MaxSizeMB:         2,
	}
}

// Validate checks name, extension, then size, failing on the first violation.
func (v File) Validate(filename string, r io.ReadSeeker) error {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if !fileNameRegex.MatchString(base) {
		return newError(CodeBadFileName, "file name may contain only letters, numbers, and underscores")
	}
	if !slices.Contains(v.AllowedExtensions, ext) {
		return newError(CodeUnsupportedType, "unsupported file type %q, allowed types: %s", ext, strings.Join(v.AllowedExtensions, ", "))
	}

	size, err := measureSize(r)
	if err != nil {
		return newError(CodeUnreadableFile, "unable to read file content")
	}
	if v.MaxSizeMB > 0 && size > v.MaxSizeMB<<20 {
		return newError(CodeFileTooLarge, "file size exceeds %d MB limit", v.MaxSizeMB)
	}
	return nil
}

// measureSize reads the stream to the end to determine its size. The cursor
// is rewound to the start regardless of outcome.
func measureSize(r io.ReadSeeker) (size int64, err error) {
	defer func() {
		if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			err = seekErr
		}
	}()
	return io.Copy(io.Discard, r)
}
