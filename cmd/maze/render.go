package main

import (
	"fmt"
	"io"

	"golang.org/x/crypto/ssh/terminal"

	mazepkg "github.com/artcfox/maze-generator"
	"github.com/artcfox/maze-generator/internal/bitvector"
)

// VT100 alternate-character-set line-drawing glyphs, the same code points
// the teacher's outputLookup table uses.
const (
	blank       = ' '
	rightBottom = 0x6a
	rightTop    = 0x6b
	leftTop     = 0x6c
	leftBottom  = 0x6d
	intersect   = 0x6e
	horizontal  = 0x71
	rightTee    = 0x74
	leftTee     = 0x75
	upTee       = 0x76
	downTee     = 0x77
	vertical    = 0x78
)

var cornerLookup = [16]byte{
	blank, vertical, horizontal, leftBottom,
	vertical, vertical, leftTop, rightTee,
	horizontal, rightBottom, horizontal, upTee,
	rightTop, leftTee, downTee, intersect,
}

// render draws a 2-dimensional maze's walls and most recent solution path
// using VT100 line-drawing characters, falling back to a plain ASCII grid
// if the maze does not fit the terminal size reported for standard input
// (80x24 is assumed when that size cannot be read).
func render(w io.Writer, m *mazepkg.Maze) {
	dims := m.Dims()
	width, height := dims[0], dims[1]
	halls := m.Halls()
	solution := m.Solution()

	cols, rows := getConsoleSize()
	needCols, needRows := 2*width+1, 2*height+1
	useLineDraw := needCols <= cols && needRows <= rows

	wallGrid, solvedGrid := buildGrids(width, height, halls, solution)

	if useLineDraw {
		fmt.Fprint(w, "\033(0")
	}
	for i := 0; i < needRows; i++ {
		for j := 0; j < needCols; j++ {
			ch := cellChar(wallGrid, i, j, needRows, needCols, useLineDraw)
			if solvedGrid[i][j] {
				fmt.Fprintf(w, "\033[32m\033[1m%c\033[0m", ch)
			} else {
				fmt.Fprintf(w, "%c", ch)
			}
		}
		fmt.Fprintln(w)
	}
	if useLineDraw {
		fmt.Fprint(w, "\033(B")
	}
}

func getConsoleSize() (cols, rows int) {
	cols, rows, err := terminal.GetSize(0)
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// buildGrids expands the per-axis hall/solution bitmaps into a (2h+1) by
// (2w+1) boolean grid the way the teacher's carving loop populates its
// maze[][] array directly: odd,odd cells are always open (grid vertices),
// even,even cells are corners, and the cells between them are walls unless
// the corresponding hall bit is set.
func buildGrids(width, height int, halls, solution []*bitvector.BitVector) (wall, solved [][]bool) {
	rows, cols := 2*height+1, 2*width+1
	wall = make([][]bool, rows)
	solved = make([][]bool, rows)
	for i := range wall {
		wall[i] = make([]bool, cols)
		solved[i] = make([]bool, cols)
	}

	isOpen := func(bvs []*bitvector.BitVector, axis, position int) bool {
		return axis < len(bvs) && bvs[axis] != nil && bvs[axis].Get(position)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			position := x + y*width
			gy, gx := 2*y+1, 2*x+1

			if x < width-1 {
				open := isOpen(halls, 0, position)
				wall[gy][gx+1] = !open
				if isOpen(solution, 0, position) {
					solved[gy][gx] = true
					solved[gy][gx+1] = true
					solved[gy][gx+2] = true
				}
			}
			if y < height-1 {
				open := isOpen(halls, 1, position)
				wall[gy+1][gx] = !open
				if isOpen(solution, 1, position) {
					solved[gy][gx] = true
					solved[gy+1][gx] = true
					solved[gy+2][gx] = true
				}
			}
		}
	}

	// The perimeter and all corner posts are always walls, matching the
	// teacher's border-then-interior initialization order.
	for i := 0; i < rows; i++ {
		wall[i][0], wall[i][cols-1] = true, true
	}
	for j := 0; j < cols; j++ {
		wall[0][j], wall[rows-1][j] = true, true
	}
	for i := 0; i < rows; i += 2 {
		for j := 0; j < cols; j += 2 {
			wall[i][j] = true
		}
	}

	return wall, solved
}

func isWall(grid [][]bool, i, j, rows, cols int) bool {
	if i < 0 || i >= rows || j < 0 || j >= cols {
		return false
	}
	return grid[i][j]
}

func bool2int(b bool) int {
	if b {
		return 1
	}
	return 0
}

// cellChar picks the glyph for grid cell (i, j): a corner/intersection
// character (from cornerLookup, mirroring the teacher's displayMaze) at
// even,even positions, a line-draw wall or blank everywhere else.
func cellChar(grid [][]bool, i, j, rows, cols int, lineDraw bool) byte {
	if i%2 == 0 && j%2 == 0 {
		idx := 1*bool2int(isWall(grid, i-1, j, rows, cols)) +
			2*bool2int(isWall(grid, i, j+1, rows, cols)) +
			4*bool2int(isWall(grid, i+1, j, rows, cols)) +
			8*bool2int(isWall(grid, i, j-1, rows, cols))
		if !lineDraw {
			return "+-+|+++-+++-++++"[idx]
		}
		return cornerLookup[idx]
	}
	if !grid[i][j] {
		return ' '
	}
	if i%2 == 0 {
		if !lineDraw {
			return '-'
		}
		return horizontal
	}
	if !lineDraw {
		return '|'
	}
	return vertical
}
