package model

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // 0-indexed column from the left
	Y int `json:"y"` // 0-indexed row from the top
}

// Cell is a single board square with its occupancy flags
type Cell struct {
	HasBomb  bool `json:"has_bomb"`
	HasPiece bool `json:"has_piece"`
}

// Board represents the fixed N by N grid for one game
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"` // Row-major: Cells[y][x]
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// At returns a pointer to the cell at the given position, or nil if out of bounds
func (b *Board) At(pos Position) *Cell {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return &b.Cells[pos.Y][pos.X]
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Size && pos.Y >= 0 && pos.Y < b.Size
}

// BombCount returns the number of cells currently flagged as bombed
func (b *Board) BombCount() int {
	count := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x].HasBomb {
				count++
			}
		}
	}
	return count
}

// PieceCount returns the number of cells currently holding a piece
func (b *Board) PieceCount() int {
	count := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x].HasPiece {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]Cell, b.Size)
	for i := range cells {
		cells[i] = make([]Cell, b.Size)
		copy(cells[i], b.Cells[i])
	}
	return &Board{
		Size:  b.Size,
		Cells: cells,
	}
}

// PieceID uniquely identifies a movable piece
type PieceID string

// Piece is a player-movable token occupying exactly one cell.
// Identity is stable for the life of a game; only the position changes.
type Piece struct {
	ID       PieceID  `json:"id"`
	Position Position `json:"position"`
}

// BombSet holds the coordinates of live, undiscovered bombs.
// Ordering is deterministic, so uniform selection by index is
// reproducible under a seeded random source. The set never grows
// after initialization.
type BombSet struct {
	positions []Position
	index     map[Position]int
}

// NewBombSet creates an empty bomb set
func NewBombSet() *BombSet {
	return &BombSet{
		index: make(map[Position]int),
	}
}

// Add inserts a position into the set. Returns false if already present.
func (s *BombSet) Add(pos Position) bool {
	if _, ok := s.index[pos]; ok {
		return false
	}
	s.index[pos] = len(s.positions)
	s.positions = append(s.positions, pos)
	return true
}

// Remove deletes a position from the set. Returns false if absent.
// The last element is swapped into the removed slot, so Remove is O(1).
func (s *BombSet) Remove(pos Position) bool {
	i, ok := s.index[pos]
	if !ok {
		return false
	}
	last := len(s.positions) - 1
	moved := s.positions[last]
	s.positions[i] = moved
	s.index[moved] = i
	s.positions = s.positions[:last]
	delete(s.index, pos)
	return true
}

// Contains reports whether the position holds a live bomb
func (s *BombSet) Contains(pos Position) bool {
	_, ok := s.index[pos]
	return ok
}

// Len returns the number of live bombs
func (s *BombSet) Len() int {
	return len(s.positions)
}

// At returns the position at the given index
func (s *BombSet) At(i int) Position {
	return s.positions[i]
}

// Positions returns a copy of the live bomb positions
func (s *BombSet) Positions() []Position {
	result := make([]Position, len(s.positions))
	copy(result, s.positions)
	return result
}
