package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageCount validates the PDF structure and returns its page count.
func pageCount(data []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(newReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("validating pdf: %w", err)
	}
	return ctx.PageCount, nil
}

func (d *Decoder) decodePDF(data []byte) (string, error) {
	pages, err := pageCount(data)
	if err != nil {
		return "", err
	}
	if pages > d.maxPages {
		return "", fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, pages, d.maxPages)
	}

	reader, err := pdf.NewReader(newReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
