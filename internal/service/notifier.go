package service

import "context"

// Notifier receives board change events for live subscribers
type Notifier interface {
	BoardChanged(ctx context.Context, boardID uint)
	BoardDeleted(boardID uint)
}

type noopNotifier struct{}

func (noopNotifier) BoardChanged(context.Context, uint) {}
func (noopNotifier) BoardDeleted(uint)                  {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
