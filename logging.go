package sysexec

import (
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// NewZerologLogger builds a structured logger suitable for WithLogger,
// backed by github.com/rs/zerolog. level should be one of the logiface
// Level constants (e.g. logiface.LevelInformational).
func NewZerologLogger(z zerolog.Logger, level logiface.Level) *logiface.Logger[logiface.Event] {
	return izerolog.L.New(
		izerolog.L.WithZerolog(z),
		izerolog.L.WithLevel(level),
	).Logger()
}

// logTick emits a single structured record summarizing one executor tick.
// It is a no-op if logger is nil or below the informational level.
func logTick(logger *logiface.Logger[logiface.Event], globalTime VTime, fired string, activeModels, scheduled int) {
	logger.Info().
		Float64("global_time", float64(globalTime)).
		Str("fired", fired).
		Int("active_models", activeModels).
		Int("scheduled", scheduled).
		Log("tick")
}

func logCreated(logger *logiface.Logger[logiface.Event], name string, at VTime) {
	logger.Debug().
		Str("model", name).
		Float64("global_time", float64(at)).
		Log("model created")
}

func logDestroyed(logger *logiface.Logger[logiface.Event], name string, at VTime) {
	logger.Debug().
		Str("model", name).
		Float64("global_time", float64(at)).
		Log("model destroyed")
}

func logRouted(logger *logiface.Logger[logiface.Event], src, srcPort, dst, dstPort string) {
	logger.Trace().
		Str("src", src).
		Str("src_port", srcPort).
		Str("dst", dst).
		Str("dst_port", dstPort).
		Log("routed")
}

func logFatal(logger *logiface.Logger[logiface.Event], err error) {
	logger.Err().
		Err(err).
		Log("executor terminated")
}
