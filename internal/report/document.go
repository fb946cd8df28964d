package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	apperrors "iplreport/internal/errors"
	"iplreport/internal/files"
)

var (
	// ErrDocumentClosed is returned when a closed document is used again
	ErrDocumentClosed = errors.New("document already closed")
	// ErrNoPages is returned when closing a document nothing was added to
	ErrNoPages = errors.New("document has no pages")
)

// Page is one fixed-layout page of the report
type Page interface {
	Title() string
	Render(c *Canvas) error
}

// Metadata is written into the PDF information dictionary
type Metadata struct {
	Title     string
	Subject   string
	Author    string
	Creator   string
	Keywords  string
	CreatedAt time.Time
}

// Document is an append-only sequence of report pages.
// Pages are drawn as they are added; nothing reaches the file system
// until Close, which finalizes the document exactly once.
type Document struct {
	pdf    *fpdf.Fpdf
	theme  Theme
	titles []string
	verify bool
	closed bool
	logger *slog.Logger
}

// NewDocument starts an empty document
func NewDocument(theme Theme, meta Metadata) *Document {
	pdf := fpdf.New(theme.Orientation, "mm", theme.PageSize, "")
	pdf.SetMargins(theme.Margin, theme.Margin, theme.Margin)
	pdf.SetAutoPageBreak(false, theme.Margin)
	pdf.SetCompression(true)

	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	if meta.Keywords != "" {
		pdf.SetKeywords(meta.Keywords, true)
	}
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
		pdf.SetModificationDate(meta.CreatedAt)
	}

	return &Document{
		pdf:    pdf,
		theme:  theme,
		verify: true,
		logger: slog.Default(),
	}
}

// SetVerify turns the post-write pdfcpu check on or off
func (d *Document) SetVerify(verify bool) {
	d.verify = verify
}

// SetLogger replaces the document logger
func (d *Document) SetLogger(logger *slog.Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// PageCount returns the number of pages added so far
func (d *Document) PageCount() int {
	return len(d.titles)
}

// Titles returns the page titles in order
func (d *Document) Titles() []string {
	return append([]string(nil), d.titles...)
}

// AddPage appends a new page and lets p draw on it
func (d *Document) AddPage(p Page) error {
	if d.closed {
		return ErrDocumentClosed
	}

	d.pdf.AddPage()
	number := len(d.titles) + 1
	if err := p.Render(newCanvas(d.pdf, d.theme, number)); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to render page %d", number), err).
			WithContext("page", p.Title())
	}
	if err := d.pdf.Error(); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to render page %d", number), err).
			WithContext("page", p.Title())
	}

	d.titles = append(d.titles, p.Title())
	return nil
}

// Close writes the document to path. The file is written next to path under a
// temporary name, verified, and renamed into place, so path never holds a
// partial document. A document can be closed once; later calls fail.
func (d *Document) Close(path string) error {
	if d.closed {
		return ErrDocumentClosed
	}
	d.closed = true

	if len(d.titles) == 0 {
		return apperrors.NewRenderError("cannot write report", ErrNoPages)
	}

	tmp, err := files.CreateTemp(path)
	if err != nil {
		return apperrors.NewStorageError("failed to prepare report file", err).
			WithContext("path", path)
	}

	if err := d.pdf.OutputFileAndClose(tmp); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("failed to write report", err).
			WithContext("path", path)
	}

	if d.verify {
		if err := VerifyFile(tmp, len(d.titles)); err != nil {
			os.Remove(tmp)
			return apperrors.NewValidationError("report failed verification", err).
				WithContext("path", path)
		}
	}

	if err := files.MoveFile(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("failed to move report into place", err).
			WithContext("path", path)
	}

	d.logger.Info("Report written",
		slog.String("path", path),
		slog.Int("pages", len(d.titles)),
		slog.Bool("verified", d.verify))
	return nil
}
