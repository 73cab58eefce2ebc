package store

import (
	"io"

	"github.com/charmbracelet/log"
)

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}
