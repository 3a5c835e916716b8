package types

import "encoding/json"

// Server -> Client
// game_state:
//   state: GameSnapshot
//
// Client -> Server
// select_color:
//   color: "#RRGGBB"

const (
	MsgGameState   = "game_state"
	MsgSelectColor = "select_color"
)

// Envelope is decoded first; State stays raw until the type is known.
type Envelope struct {
	Type  string          `json:"type"`
	State json.RawMessage `json:"state,omitempty"`
}

type SelectColorMessage struct {
	Type  string `json:"type"` // always "select_color"
	Color string `json:"color"`
}

// ConnState is owned by the connection supervisor.
type ConnState int

const (
	ConnConnecting ConnState = iota
	ConnOpen
	ConnClosed
)

func (c ConnState) String() string {
	switch c {
	case ConnConnecting:
		return "connecting"
	case ConnOpen:
		return "open"
	case ConnClosed:
		return "closed"
	default:
		return "invalid"
	}
}

func (c ConnState) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
