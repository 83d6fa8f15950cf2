package render

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/matzehuels/stationviz/pkg/errors"
)

func TestToPDFMissingConverter(t *testing.T) {
	old := PDFConverter
	PDFConverter = "stationviz-no-such-converter"
	defer func() { PDFConverter = old }()

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("err = %v, want UNSUPPORTED", err)
	}
}

func TestToPDF(t *testing.T) {
	if _, err := exec.LookPath(PDFConverter); err != nil {
		t.Skipf("%s not installed", PDFConverter)
	}
	ctx := context.Background()

	if _, err := ToPDF(ctx, []byte("  ")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty input: err = %v, want INVALID_INPUT", err)
	}

	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	pdf, err := ToPDF(ctx, []byte(svg))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}
