package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
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
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case SessionSummary:
		o.printSessionSummary(v)
	case []SessionSummary:
		o.printSessionList(v)
	case SessionDetail:
		o.printSessionDetail(v)
	case ReadyResult:
		o.printReadyResult(v)
	case PlaceResult:
		o.printPlaceResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsGuest   bool   `json:"is_guest"`
	Color     string `json:"color,omitempty"`
	Score     int    `json:"score"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
	HandSize  int    `json:"hand_size"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// SessionSummary response type
type SessionSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stage       string `json:"stage"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Round       int    `json:"round"`
	Rounds      int    `json:"rounds"`
}

// SessionConfig response type
type SessionConfig struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	Rounds      int `json:"rounds"`
}

// Tile response type
type Tile struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	Cost      []string `json:"cost"`
	Resources []string `json:"resources,omitempty"`
	Score     int      `json:"score,omitempty"`
	OwnerID   string   `json:"owner_id,omitempty"`
}

// Board response type
type Board struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Cells  [][]*Tile `json:"cells"`
}

// Winner response type
type Winner struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SessionDetail response type
type SessionDetail struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Stage      string        `json:"stage"`
	Config     SessionConfig `json:"config"`
	Round      int           `json:"round"`
	TurnIndex  int           `json:"turn_index"`
	FinalRound bool          `json:"final_round"`
	Players    []Player      `json:"players"`
	Board      Board         `json:"board"`
	DeckSize   int           `json:"deck_size"`
	Winners    []Winner      `json:"winners,omitempty"`
	YourHand   []*Tile       `json:"your_hand,omitempty"`
}

// ReadyResult response type
type ReadyResult struct {
	Ready   bool `json:"ready"`
	Waiting int  `json:"waiting"`
}

// ResourcePayment response type
type ResourcePayment struct {
	Resources []string `json:"resources"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	OwnerID   string   `json:"owner_id"`
	Score     int      `json:"score"`
}

// PlaceResult response type
type PlaceResult struct {
	Tile     *Tile             `json:"tile"`
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Score    int               `json:"score"`
	Payments []ResourcePayment `json:"resource_payments,omitempty"`
	NewRound bool              `json:"new_round"`
	Ended    bool              `json:"ended"`
	Winners  []Winner          `json:"winners,omitempty"`
	Hand     []*Tile           `json:"hand"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printSessionSummary(s SessionSummary) {
	fmt.Printf("Session: %s (%s)\n", s.Name, s.ID)
	fmt.Printf("Stage: %s\n", s.Stage)
	fmt.Printf("Players: %d/%d\n", s.PlayerCount, s.MaxPlayers)
	fmt.Printf("Round: %d/%d\n", s.Round, s.Rounds)
}

func (o *Output) printSessionList(sessions []SessionSummary) {
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-20s %-10s %d/%d players  round %d/%d\n",
			s.ID, s.Name, s.Stage, s.PlayerCount, s.MaxPlayers, s.Round, s.Rounds)
	}
}

func (o *Output) printSessionDetail(s SessionDetail) {
	fmt.Printf("Session: %s (%s)\n", s.Name, s.ID)
	fmt.Printf("Stage: %s\n", s.Stage)
	fmt.Printf("Board: %dx%d\n", s.Config.BoardWidth, s.Config.BoardHeight)
	fmt.Printf("Round: %d/%d", s.Round, s.Config.Rounds)
	if s.FinalRound {
		fmt.Print(" (final)")
	}
	fmt.Println()
	fmt.Printf("Deck: %d tiles\n", s.DeckSize)

	fmt.Printf("Players (%d):\n", len(s.Players))
	for i, p := range s.Players {
		turnStr := ""
		if s.Stage == "started" && i == s.TurnIndex {
			turnStr = " [turn]"
		}
		readyStr := ""
		if s.Stage == "readycheck" && p.Ready {
			readyStr = " [ready]"
		}
		fmt.Printf("  - %s (%s) %d pts%s%s\n", p.Name, p.Color, p.Score, turnStr, readyStr)
	}

	if len(s.Board.Cells) > 0 {
		fmt.Println("\nBoard:")
		o.printBoard(s.Board)
	}

	if len(s.YourHand) > 0 {
		fmt.Println("\nYour Hand:")
		for i, t := range s.YourHand {
			o.printTile(i, t)
		}
	}

	if len(s.Winners) > 0 {
		fmt.Println("\nWinners:")
		for _, w := range s.Winners {
			fmt.Printf("  %s: %d points\n", w.Name, w.Score)
		}
	}
}

func (o *Output) printBoard(b Board) {
	// Print column headers
	fmt.Print("    ")
	for x := 0; x < b.Width; x++ {
		fmt.Printf(" %d ", x%10)
	}
	fmt.Println()

	for y := 0; y < b.Height; y++ {
		fmt.Printf(" %d |", y%10)
		for x := 0; x < b.Width; x++ {
			tile := b.Cells[x][y]
			if tile == nil {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", strings.ToUpper(tile.Name[:1]))
			}
		}
		fmt.Println("|")
	}
}

func (o *Output) printTile(index int, t *Tile) {
	desc := t.Kind
	if t.Kind == "resource" {
		desc = fmt.Sprintf("resources: %s", strings.Join(t.Resources, ", "))
	} else if t.Score > 0 {
		desc = fmt.Sprintf("%d pts", t.Score)
	}
	costStr := "free"
	if len(t.Cost) > 0 {
		costStr = "cost: " + strings.Join(t.Cost, ", ")
	}
	fmt.Printf("  [%d] %s (%s, %s)\n", index, t.Name, desc, costStr)
}

func (o *Output) printReadyResult(r ReadyResult) {
	if r.Ready {
		fmt.Println("Marked ready")
	} else {
		fmt.Println("Marked not ready")
	}
	fmt.Printf("Waiting on %d player(s)\n", r.Waiting)
}

func (o *Output) printPlaceResult(p PlaceResult) {
	fmt.Printf("Placed %s at (%d, %d)\n", p.Tile.Name, p.X, p.Y)
	if p.Score > 0 {
		fmt.Printf("Scored %d points\n", p.Score)
	}
	for _, pay := range p.Payments {
		fmt.Printf("Paid %s from tile at (%d, %d)", strings.Join(pay.Resources, ", "), pay.X, pay.Y)
		if pay.Score > 0 {
			fmt.Printf(" (+%d pts to owner)", pay.Score)
		}
		fmt.Println()
	}
	if p.NewRound {
		fmt.Println("New round!")
	}
	if p.Ended {
		fmt.Println("Game over!")
		for _, w := range p.Winners {
			fmt.Printf("Winner: %s (%d points)\n", w.Name, w.Score)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
