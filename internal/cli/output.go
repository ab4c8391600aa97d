package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case []GameSummary:
		o.printGameSummaries(v)
	case PlaceResult:
		o.printPlaceResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Cell response type (matches API)
type Cell struct {
	HasBomb  bool `json:"has_bomb"`
	HasPiece bool `json:"has_piece"`
}

// Piece response type
type Piece struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// GameState response type
type GameState struct {
	ID                   string    `json:"id"`
	BoardSize            int       `json:"board_size"`
	Cells                [][]Cell  `json:"cells"`
	Pieces               []Piece   `json:"pieces"`
	LiveBombs            int       `json:"live_bombs"`
	DiscoveredCount      int       `json:"discovered_count"`
	DetonatedCount       int       `json:"detonated_count"`
	Over                 bool      `json:"over"`
	DetonationIntervalMS int       `json:"detonation_interval_ms"`
	CreatedAt            time.Time `json:"created_at"`
}

// GameSummary response type
type GameSummary struct {
	ID              string    `json:"id"`
	BoardSize       int       `json:"board_size"`
	LiveBombs       int       `json:"live_bombs"`
	DiscoveredCount int       `json:"discovered_count"`
	DetonatedCount  int       `json:"detonated_count"`
	Over            bool      `json:"over"`
	CreatedAt       time.Time `json:"created_at"`
}

// PlaceResult response type
type PlaceResult struct {
	Accepted bool      `json:"accepted"`
	Game     GameState `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Board: %dx%d\n", g.BoardSize, g.BoardSize)
	fmt.Printf("Live bombs: %d\n", g.LiveBombs)
	fmt.Printf("Discovered: %d\n", g.DiscoveredCount)
	fmt.Printf("Detonated: %d\n", g.DetonatedCount)
	if g.Over {
		fmt.Println("Status: over")
	} else {
		fmt.Println("Status: in progress")
	}

	fmt.Println()
	o.printBoard(g)
}

func (o *Output) printBoard(g GameState) {
	size := g.BoardSize
	if size == 0 || len(g.Cells) == 0 {
		return
	}

	// Print column headers
	fmt.Print("    ")
	for x := 0; x < size; x++ {
		fmt.Printf("%2d ", x)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for x := 0; x < size; x++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Pieces are shown as P, bombs as *, both should never coincide
	for y := 0; y < size; y++ {
		fmt.Printf("%2d |", y)
		for x := 0; x < size; x++ {
			cell := g.Cells[y][x]
			switch {
			case cell.HasPiece:
				fmt.Print(" P ")
			case cell.HasBomb:
				fmt.Print(" * ")
			default:
				fmt.Print(" . ")
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for x := 0; x < size; x++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printGameSummaries(summaries []GameSummary) {
	if len(summaries) == 0 {
		fmt.Println("No games")
		return
	}
	fmt.Printf("Games (%d):\n", len(summaries))
	for _, s := range summaries {
		status := "in progress"
		if s.Over {
			status = "over"
		}
		fmt.Printf("  %s  %dx%d  bombs=%d discovered=%d detonated=%d  %s\n",
			s.ID, s.BoardSize, s.BoardSize, s.LiveBombs, s.DiscoveredCount, s.DetonatedCount, status)
	}
}

func (o *Output) printPlaceResult(p PlaceResult) {
	if p.Accepted {
		fmt.Println("Piece placed")
	}
	if p.Game.DiscoveredCount > 0 {
		fmt.Printf("Discovered: %d\n", p.Game.DiscoveredCount)
	}
	if p.Game.Over {
		fmt.Println("Game over!")
		fmt.Printf("Final: discovered=%d detonated=%d\n",
			p.Game.DiscoveredCount, p.Game.DetonatedCount)
	} else {
		fmt.Printf("Live bombs remaining: %d\n", p.Game.LiveBombs)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
