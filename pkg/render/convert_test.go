package render

import (
	"bytes"
	"context"
	"testing"

	errs "github.com/matzehuels/tagcloud/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestConvert(t *testing.T) {
	ctx := context.Background()
	if !Available() {
		_, err := ToPDF(ctx, []byte(tinySVG))
		if !errs.Is(err, errs.ErrCodeUnsupported) {
			t.Errorf("ToPDF without %s: err = %v, want UNSUPPORTED", Converter, err)
		}
		return
	}

	pdf, err := ToPDF(ctx, []byte(tinySVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF output does not start with %%PDF")
	}

	png, err := ToPNG(ctx, []byte(tinySVG), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG output is not a PNG")
	}
}
