package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/stationviz/pkg/errors"
)

// PDFConverter is the external binary used by [ToPDF]. It reads SVG on
// stdin and writes PDF on stdout.
var PDFConverter = "rsvg-convert"

// ToPDF converts an SVG document to PDF by piping it through
// [PDFConverter]. When the converter is not on PATH the error carries
// [errors.ErrCodeUnsupported] and an install hint.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(PDFConverter)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"pdf output needs %s (librsvg2-bin on Debian/Ubuntu, librsvg on Homebrew)", PDFConverter)
	}
	if len(bytes.TrimSpace(svg)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty svg")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s",
			PDFConverter, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
