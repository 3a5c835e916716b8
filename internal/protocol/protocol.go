package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DoyleJ11/ladders-display/pkg/types"
)

var ErrMalformed = errors.New("malformed message")
var ErrMissingType = errors.New("message has no type")

// Decode extracts the snapshot from a game_state envelope. Recognized
// envelopes of any other type return (nil, nil) so callers can ignore them.
func Decode(data []byte) (*types.GameSnapshot, error) {
	var env types.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == "" {
		return nil, ErrMissingType
	}

	switch env.Type {
	case types.MsgGameState:
		if len(env.State) == 0 || string(env.State) == "null" {
			return nil, fmt.Errorf("%w: game_state without state", ErrMalformed)
		}
		var snap types.GameSnapshot
		if err := json.Unmarshal(env.State, &snap); err != nil {
			return nil, fmt.Errorf("%w: state: %v", ErrMalformed, err)
		}
		return &snap, nil
	default:
		return nil, nil
	}
}

func EncodeSelectColor(color string) ([]byte, error) {
	return json.Marshal(types.SelectColorMessage{Type: types.MsgSelectColor, Color: color})
}
