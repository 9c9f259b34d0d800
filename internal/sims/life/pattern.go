package life

import (
	"strings"

	simerrors "lifeworld/internal/errors"
)

// ParsePattern reads a plain-text pattern, one line per row. '#', 'O' and
// '*' mark living cells; '.' and '_' mark dead ones. Blank lines and
// per-line indentation are ignored.
func ParsePattern(text string) ([][]bool, error) {
	lines := strings.Split(strings.Trim(text, "\r\n"), "\n")
	rows := make([][]bool, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for _, ch := range line {
			col := len(row) + 1
			switch ch {
			case '#', 'O', '*':
				row = append(row, true)
			case '.', '_':
				row = append(row, false)
			default:
				return nil, simerrors.InvalidInput("life.parsePattern", "line %d column %d: unexpected %q", i+1, col, ch)
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, simerrors.InvalidInput("life.parsePattern", "empty pattern")
	}
	return rows, nil
}

// Stamp writes a pattern with its top-left corner at (row, col). Dead
// pattern cells overwrite the grid as well. The whole pattern must fit;
// nothing is written otherwise.
func (w *World) Stamp(row, col int, text string) error {
	pat, err := ParsePattern(text)
	if err != nil {
		return err
	}
	for dr, line := range pat {
		if len(line) == 0 {
			continue
		}
		if err := w.check("world.stamp", row+dr, col+len(line)-1); err != nil {
			return err
		}
		if err := w.check("world.stamp", row+dr, col); err != nil {
			return err
		}
	}
	for dr, line := range pat {
		for dc, alive := range line {
			if err := w.SetHealth(row+dr, col+dc, alive); err != nil {
				return err
			}
		}
	}
	return nil
}
