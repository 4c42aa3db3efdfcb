// Package alert is the single notification funnel for the UI controllers:
// every failure or status message is reduced to one Notify call plus
// whatever the caller logs.
package alert

import "log"

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Danger  Level = "danger"
)

type Notifier interface {
	Notify(level Level, msg string)
}

// Func adapts a plain function to Notifier.
type Func func(level Level, msg string)

func (f Func) Notify(level Level, msg string) { f(level, msg) }

// Log writes notifications to the standard logger; the default sink when
// no UI is attached.
func Log() Notifier {
	return Func(func(level Level, msg string) {
		log.Printf("[%s] %s", level, msg)
	})
}

// Discard drops notifications; handy in tests.
func Discard() Notifier {
	return Func(func(Level, string) {})
}
