package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// rowPattern and cellPattern are a deliberately minimal <tr>/<td> scanner:
// the room table this reads has a small, fixed shape (one row per room, one
// cell per block slot), so pulling in a general HTML parser for it has no
// other use anywhere in this repository. See html_parser.rs in the original
// implementation for the equivalent hand-rolled table walk (there done with
// a CSS-selector crate; here done with a pair of regexes).
var (
	rowPattern  = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	cellPattern = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	tagPattern  = regexp.MustCompile(`(?is)<[^>]*>`)
)

// ParseRoomHTML reads a dumped HTML table where each <tr> is one room: the
// first <td> is the room's label (not counted), and the number of non-empty
// <td> cells that follow it is that room's block count. Malformed rows (a
// <tr> with no <td> cells at all) are skipped unless opts.StrictMode is set.
func ParseRoomHTML(r io.Reader, opts Options) ([]int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading room HTML: %w", err)
	}

	var rooms []int
	for i, rowMatch := range rowPattern.FindAllStringSubmatch(string(raw), -1) {
		cells := cellPattern.FindAllStringSubmatch(rowMatch[1], -1)
		if len(cells) == 0 {
			err := malformedRow(i+1, strings.TrimSpace(rowMatch[0]), fmt.Errorf("row has no <td> cells"))
			if opts.StrictMode {
				return nil, err
			}
			continue
		}

		n := 0
		for _, cell := range cells[1:] {
			text := strings.TrimSpace(tagPattern.ReplaceAllString(cell[1], ""))
			if text != "" {
				n++
			}
		}
		rooms = append(rooms, n)
	}

	return rooms, nil
}
