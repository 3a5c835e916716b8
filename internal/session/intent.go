package session

import (
	"go.uber.org/zap"

	"github.com/DoyleJ11/ladders-display/internal/palette"
	"github.com/DoyleJ11/ladders-display/internal/protocol"
)

func (s *Session) localColor() string {
	return palette.At(s.store.SelectedColorIndexLocal()).Hex
}

// sendColorSelection drops the intent unless a channel is open. Intents
// are never queued for a later connection.
func (s *Session) sendColorSelection(color string) {
	conn := s.sup.current()
	if conn == nil {
		s.log.Debug("not connected, dropping color selection", zap.String("color", color))
		return
	}
	payload, err := protocol.EncodeSelectColor(color)
	if err != nil {
		s.log.Error("encode select_color", zap.Error(err))
		return
	}
	if !conn.Send(payload) {
		s.log.Warn("select_color not sent", zap.Stringer("conn_id", conn.ID()))
		return
	}
	s.log.Info("sent color selection", zap.String("color", color))
}
