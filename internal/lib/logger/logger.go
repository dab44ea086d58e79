package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the application logger. Local runs get a human-readable
// text handler on stdout; dev and prod write JSON to a file under logPath,
// falling back to stdout when the file cannot be opened.
func SetupLogger(env, logPath string) *slog.Logger {
	var out io.Writer = os.Stdout

	if env != envLocal {
		file, err := os.OpenFile(
			filepath.Join(logPath, "votebot.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err == nil {
			out = file
		}
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// AlertSender delivers high-severity log lines to an operator channel.
type AlertSender interface {
	SendMessage(msg string)
}

// SetupAlertHandler wraps a logger so records at or above minLevel are also
// forwarded to the alert sender (e.g. the Telegram admin chat).
func SetupAlertHandler(log *slog.Logger, sender AlertSender, minLevel slog.Level) *slog.Logger {
	return slog.New(&alertHandler{next: log.Handler(), sender: sender, min: minLevel})
}

type alertHandler struct {
	next   slog.Handler
	sender AlertSender
	min    slog.Level
}

func (h *alertHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *alertHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.min && h.sender != nil {
		msg := r.Level.String() + ": " + r.Message
		r.Attrs(func(a slog.Attr) bool {
			msg += "\n" + a.Key + ": " + a.Value.String()
			return true
		})
		h.sender.SendMessage(msg)
	}
	return h.next.Handle(ctx, r)
}

func (h *alertHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &alertHandler{next: h.next.WithAttrs(attrs), sender: h.sender, min: h.min}
}

func (h *alertHandler) WithGroup(name string) slog.Handler {
	return &alertHandler{next: h.next.WithGroup(name), sender: h.sender, min: h.min}
}
