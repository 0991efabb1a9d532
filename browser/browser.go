// Package browser lists the PDF files of a folder and renames them.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const pdfExt = ".pdf"

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrExists      = errors.New("a file with that name already exists")
)

// Folder is a directory and the PDF files found in it.
type Folder struct {
	Dir   string
	Files []string
}

// Load lists dir. On error the returned Folder is empty and the caller
// keeps whatever it showed before.
func Load(dir string) (Folder, error) {
	files, err := List(dir)
	if err != nil {
		return Folder{}, err
	}

	return Folder{Dir: dir, Files: files}, nil
}

// List returns the names of the regular files in dir whose extension is
// .pdf in any case, sorted lexically.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	files := []string{}

	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)

	return files, nil
}

func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExt)
}

// Index returns the position of name, or -1.
func (f Folder) Index(name string) int {
	for i, file := range f.Files {
		if file == name {
			return i
		}
	}
	return -1
}

func (f Folder) Path(i int) string {
	return filepath.Join(f.Dir, f.Files[i])
}

func (f Folder) DisplayNames() []string {
	names := make([]string, len(f.Files))
	for i, file := range f.Files {
		names[i] = DisplayName(i, file)
	}
	return names
}

// DisplayName is the 1-indexed label shown in the file list.
func DisplayName(i int, name string) string {
	return fmt.Sprintf("%d. %s", i+1, name)
}

// NormalizeName trims newName and appends .pdf when it has another or no
// extension.
func NormalizeName(newName string) (string, error) {
	newName = strings.TrimSpace(newName)

	if newName == "" || newName == "." || newName == ".." || strings.ContainsAny(newName, `/\`) {
		return "", errors.Wrapf(ErrInvalidName, "%q", newName)
	}

	if !IsPDF(newName) {
		newName += pdfExt
	}

	return newName, nil
}

// Rename renames oldName in dir. It returns the final new name.
func Rename(dir, oldName, newName string) (string, error) {
	newName, err := NormalizeName(newName)
	if err != nil {
		return "", err
	}

	if newName == oldName {
		return newName, nil
	}

	oldPath := filepath.Join(dir, oldName)
	newPath := filepath.Join(dir, newName)

	// A case-only rename on a case-insensitive filesystem resolves to the
	// same file; that is not a conflict.
	if st, err := os.Stat(newPath); err == nil {
		if oldSt, err := os.Stat(oldPath); err != nil || !os.SameFile(st, oldSt) {
			return "", errors.Wrapf(ErrExists, "%s", newName)
		}
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", errors.Wrapf(err, "rename %s", oldName)
	}

	return newName, nil
}
