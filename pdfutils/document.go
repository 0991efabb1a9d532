package pdfutils

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"os"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Document is an open PDF. The file is read into memory once, so no
// handle on it is kept while the document is open.
type Document struct {
	path     string
	numPages int

	reader  *model.PdfReader
	fitzDoc *fitz.Document
	pending annots.Pages

	mu    sync.Mutex
	infos map[int]PageInfo
	words map[int][]annots.Word
}

func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader, err := NewReader(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, err
	}

	pending, err := ReadAnnotations(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read annotations")
	}

	// Stored highlights and free text are drawn as overlays from the
	// pending list, so the rasterizer gets a copy without them.
	raster, err := stripEditable(data)
	if err != nil {
		return nil, errors.Wrap(err, "prepare page images")
	}

	fitzDoc, err := fitz.NewFromMemory(raster)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	return &Document{
		path:     path,
		numPages: numPages,
		reader:   reader,
		fitzDoc:  fitzDoc,
		pending:  pending,
		infos:    map[int]PageInfo{},
		words:    map[int][]annots.Word{},
	}, nil
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) NumPages() int {
	return d.numPages
}

// Annotations returns the annotations stored in the file when it was
// opened, as pending annotations.
func (d *Document) Annotations() annots.Pages {
	return d.pending.Clone()
}

func (d *Document) PageInfo(index int) (PageInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pageInfo(index)
}

// Words returns the words of a page. They are extracted once and cached
// for as long as the document is open.
func (d *Document) Words(index int) ([]annots.Word, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if words, ok := d.words[index]; ok {
		return words, nil
	}

	info, err := d.pageInfo(index)
	if err != nil {
		return nil, err
	}

	page, err := d.reader.GetPage(index + 1)
	if err != nil {
		return nil, err
	}

	words, err := PageWords(page, info)
	if err != nil {
		return nil, errors.Wrapf(err, "extract words on page %d", index+1)
	}

	d.words[index] = words

	return words, nil
}

// Render rasterizes a page at zoom, where 1 is 72 dpi.
func (d *Document) Render(index int, zoom float64) (*image.RGBA, error) {
	if index < 0 || index >= d.numPages {
		return nil, errors.Errorf("page %d out of range", index+1)
	}

	img, err := d.fitzDoc.ImageDPI(index, 72*zoom)
	if err != nil {
		return nil, errors.Wrapf(err, "render page %d", index+1)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	return rgba, nil
}

// PreparePage rasterizes a page and extracts its words in parallel. Work
// already running is not interrupted by ctx; a cancelled ctx only keeps
// the page from being started.
func (d *Document) PreparePage(ctx context.Context, index int, zoom float64) (*image.RGBA, []annots.Word, error) {
	var (
		img   *image.RGBA
		words []annots.Word
	)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	g := new(errgroup.Group)

	g.Go(func() error {
		var err error
		img, err = d.Render(index, zoom)
		return err
	})

	g.Go(func() error {
		var err error
		words, err = d.Words(index)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return img, words, nil
}

func (d *Document) Close() error {
	if d.fitzDoc == nil {
		return nil
	}

	err := d.fitzDoc.Close()
	d.fitzDoc = nil

	return err
}

func (d *Document) pageInfo(index int) (PageInfo, error) {
	if info, ok := d.infos[index]; ok {
		return info, nil
	}

	if index < 0 || index >= d.numPages {
		return PageInfo{}, errors.Errorf("page %d out of range", index+1)
	}

	page, err := d.reader.GetPage(index + 1)
	if err != nil {
		return PageInfo{}, err
	}

	info, err := GetPageInfo(page)
	if err != nil {
		return PageInfo{}, err
	}

	d.infos[index] = info

	return info, nil
}

// stripEditable returns data with every highlight and free text annotation
// removed, written as an incremental update. data is returned unchanged
// when there is nothing to remove, and for encrypted files, which cannot
// take an incremental update; their stored annotations stay in the page
// image under the overlay.
func stripEditable(data []byte) ([]byte, error) {
	reader, err := NewReader(data)
	if err != nil {
		return nil, err
	}

	if encrypted, _ := reader.IsEncrypted(); encrypted {
		return data, nil
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, err
	}

	appender, err := model.NewPdfAppender(reader)
	if err != nil {
		return nil, err
	}

	changed := false

	for i := 0; i < numPages; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			return nil, err
		}

		annotations, err := page.GetAnnotations()
		if err != nil {
			return nil, err
		}

		kept := make([]*model.PdfAnnotation, 0, len(annotations))
		for _, annotation := range annotations {
			if GetAnnotationType(annotation.GetContext()) == Unsupported {
				kept = append(kept, annotation)
			}
		}

		if len(kept) == len(annotations) {
			continue
		}

		page.SetAnnotations(kept)
		appender.UpdatePage(page)
		changed = true
	}

	if !changed {
		return data, nil
	}

	var buf bytes.Buffer
	if err := appender.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
