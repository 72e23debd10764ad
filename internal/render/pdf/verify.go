package pdf

import (
	"bytes"
	"fmt"

	pdfreader "github.com/ledongthuc/pdf"
)

// PageCount parses data and returns its number of pages
func PageCount(data []byte) (int, error) {
	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	return r.NumPage(), nil
}
