package report

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// VerifyFile checks that path is a readable PDF holding exactly wantPages pages
func VerifyFile(path string, wantPages int) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("pdf validation failed: %w", err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}
	if pageCount != wantPages {
		return fmt.Errorf("page count mismatch: got %d, want %d", pageCount, wantPages)
	}
	return nil
}
