package errors

import (
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes errors through slog.
type LogHandler struct {
	// Logger receives the records. Nil logs to stderr with a text handler.
	Logger *slog.Logger
	// Verbose adds stack traces to panic records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// HandleError logs a ModalError.
func (h *LogHandler) HandleError(err *ModalError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.Channel != "" {
		attrs = append(attrs, slog.String("channel", err.Channel))
	}
	attrs = append(attrs, slog.Any("err", err.Err))
	h.logger().Error("modalbox error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("modalbox panic", attrs...)
}
