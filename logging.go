package flashclass

import (
	"io"

	"github.com/rs/zerolog"
)

// ZerologAdapter bridges a zerolog.Logger to the Logger interface for hosts
// that want structured output instead of the default printf logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

var _ Logger = (*ZerologAdapter)(nil)

func NewZerologAdapter(w io.Writer) *ZerologAdapter {
	return &ZerologAdapter{
		logger: zerolog.New(w).With().Timestamp().Str("component", "flashclass").Logger(),
	}
}

// WrapZerolog adapts an existing zerolog.Logger.
func WrapZerolog(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

func (z *ZerologAdapter) Debug(format string, args ...any) {
	z.logger.Debug().Msgf(format, args...)
}

func (z *ZerologAdapter) Info(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

func (z *ZerologAdapter) Error(format string, args ...any) {
	z.logger.Error().Msgf(format, args...)
}
