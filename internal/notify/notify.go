package notify

import (
	"context"
	"log/slog"
)

// Variant mirrors the two presentation styles the dashboard knows.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a user-facing outcome message. The presentation layer
// decides how to render it; this service only emits them.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

var _ Notifier = (*SlogNotifier)(nil)

// SlogNotifier emits notifications to the structured log. It stands in for a
// real push channel until one exists.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With(slog.String("channel", "notification")),
	}
}

func (n *SlogNotifier) Notify(ctx context.Context, notification Notification) {
	level := slog.LevelInfo
	if notification.Variant == VariantDestructive {
		level = slog.LevelWarn
	}

	n.logger.Log(ctx, level, notification.Title,
		slog.String("description", notification.Description),
	)
}
