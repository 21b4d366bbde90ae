package session

import (
	"log"
	"os"
)

// Notifier receives user-facing warn/info messages. Environment and
// capability degradations are surfaced here instead of failing the
// session.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

type logNotifier struct {
	l *log.Logger
}

// NewLogNotifier returns a Notifier printing to stderr.
func NewLogNotifier() Notifier {
	return &logNotifier{l: log.New(os.Stderr, "", 0)}
}

func (n *logNotifier) Info(msg string) { n.l.Println(msg) }
func (n *logNotifier) Warn(msg string) { n.l.Println("warning: " + msg) }
