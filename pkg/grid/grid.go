// Package grid maps between linear cell buffers and column/row coordinates
// of a fixed-width text screen.
package grid

// GetGridCoords converts a linear cell index to its column and row.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Fill lays lines out in a cols×rows cell buffer, starting with lines[top].
// Long lines are clipped, tabs become two spaces and empty cells hold ' '.
func Fill(lines []string, top, cols, rows int) []rune {
	cells := make([]rune, cols*rows)
	for i := range cells {
		cells[i] = ' '
	}
	for row := 0; row < rows; row++ {
		n := top + row
		if n < 0 || n >= len(lines) {
			continue
		}
		col := 0
		for _, r := range lines[n] {
			if r == '\t' {
				col += 2
				continue
			}
			if col >= cols {
				break
			}
			cells[row*cols+col] = r
			col++
		}
	}
	return cells
}
