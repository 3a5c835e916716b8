package render

const (
	BoardSize = 10
	LastCell  = BoardSize * BoardSize
)

// Layout lists cell numbers top row first, left to right, as drawn.
// Rows snake: row 0 (bottom) runs 1..10 left to right, row 1 runs 20..11.
var Layout = buildLayout()

func buildLayout() [][]int {
	rows := make([][]int, 0, BoardSize)
	for row := BoardSize - 1; row >= 0; row-- {
		cells := make([]int, BoardSize)
		for col := 0; col < BoardSize; col++ {
			if row%2 == 1 {
				cells[col] = row*BoardSize + (BoardSize - col)
			} else {
				cells[col] = row*BoardSize + col + 1
			}
		}
		rows = append(rows, cells)
	}
	return rows
}
