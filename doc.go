// Package logfront is a small logging front end: named loggers with a
// minimum level and an injectable clock, pluggable output adapters, and a
// listener registry that receives every emitted event.
//
// Loggers come from a [Factory] or a [Builder]:
//
//	f, err := logfront.NewConfig().NewFactory(nil)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	log := f.Logger("orders")
//	log.Info().Str("id", id).Msg("placed")
//
// Each event that passes the logger's level filter is written by its
// [Adapter] and then dispatched, as an immutable [LogEvent], to every
// [Listener] registered on the logger's [Registry]. Package logtest builds
// capture and assertion helpers on top of that.
//
// Adapters live in sub-packages (console, slog, zap, zerolog) and register
// themselves by name from init, so a blank import is enough for [Config] to
// select them.
package logfront
