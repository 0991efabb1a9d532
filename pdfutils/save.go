package pdfutils

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/pkg/errors"
)

// ErrEncryptedSave is returned for encrypted files. An incremental update
// written by the appender would carry no encryption dictionary, leaving the
// new objects in clear text next to encrypted ones, so such files are never
// modified.
var ErrEncryptedSave = errors.New("saving annotations into an encrypted pdf is not supported")

// SaveAnnotations replaces the whole annotation layer of the PDF at path
// with pages: every stored annotation is deleted and the pending ones are
// created in its place. The change is appended as an incremental update
// and the file is swapped in by rename, so a failed write leaves the
// original untouched.
func SaveAnnotations(path string, pages annots.Pages) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reader, err := NewReader(data)
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return err
	}
	if encrypted {
		return errors.Wrapf(ErrEncryptedSave, "%s", filepath.Base(path))
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return err
	}

	appender, err := model.NewPdfAppender(reader)
	if err != nil {
		return errors.Wrap(err, "start incremental update")
	}

	now := time.Now()

	for i := 0; i < numPages; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			return errors.Wrapf(err, "page %d", i+1)
		}

		info, err := GetPageInfo(page)
		if err != nil {
			return errors.Wrapf(err, "page %d", i+1)
		}

		existing, err := page.GetAnnotations()
		if err != nil {
			return errors.Wrapf(err, "page %d", i+1)
		}

		pending := pages[i]
		if len(existing) == 0 && len(pending) == 0 {
			continue
		}

		built := make([]*model.PdfAnnotation, 0, len(pending))
		for _, a := range pending {
			annotation, err := BuildAnnotation(info, a, now)
			if err != nil {
				return errors.Wrapf(err, "page %d", i+1)
			}
			built = append(built, annotation)
		}

		page.SetAnnotations(built)
		appender.UpdatePage(page)
	}

	return writeReplace(path, appender)
}

func writeReplace(path string, appender *model.PdfAppender) error {
	mode := os.FileMode(0644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdfannotator-*.pdf")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := appender.Write(tmp); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write incremental update")
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
