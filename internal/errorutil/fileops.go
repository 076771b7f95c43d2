package errorutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileOpError carries the operation and path of a failed file access
type FileOpError struct {
	Operation string
	Path      string
	Err       error
}

func (e *FileOpError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error {
	return e.Err
}

// ErrNotFound is wrapped by FileOpError when the path does not exist
var ErrNotFound = errors.New("not found")

// ValidateFileReadable checks that filePath is an existing, readable regular file
func ValidateFileReadable(filePath, operation string) error {
	if filePath == "" {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("empty file path provided")}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("file %w", ErrNotFound)}
		}
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("cannot access file: %w", err)}
	}
	if info.IsDir() {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("path is a directory, expected file")}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("cannot open file for reading: %w", err)}
	}
	file.Close()

	return nil
}

// ValidateDirectory checks that dirPath is a directory, creating it when asked
func ValidateDirectory(dirPath, operation string, createIfMissing bool) error {
	if dirPath == "" {
		return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("empty directory path provided")}
	}

	info, err := os.Stat(dirPath)
	switch {
	case os.IsNotExist(err) && createIfMissing:
		if mkdirErr := os.MkdirAll(dirPath, 0755); mkdirErr != nil {
			return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("failed to create directory: %w", mkdirErr)}
		}
		return nil
	case os.IsNotExist(err):
		return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("directory %w", ErrNotFound)}
	case err != nil:
		return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("cannot access directory: %w", err)}
	case !info.IsDir():
		return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("path exists but is not a directory")}
	}

	return nil
}

// SafeWriteFile writes data to filePath, optionally creating its directory
func SafeWriteFile(filePath string, data []byte, operation string, createDir bool) error {
	if createDir {
		if err := ValidateDirectory(filepath.Dir(filePath), operation, true); err != nil {
			return err
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("failed to write file: %w", err)}
	}

	return nil
}
