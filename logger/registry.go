package logger

import "sync"

var components sync.Map // name -> *Logger

// Register pins a logger for a component name, overriding the derived one.
func Register(name string, l *Logger) {
	components.Store(name, pinned{l})
}

// Unregister drops a pinned or cached component logger.
func Unregister(name string) {
	components.Delete(name)
}

// Get returns the logger for a component. Unless one was registered, it is
// the global logger tagged with name, cached until the global logger changes.
func Get(name string) *Logger {
	if v, ok := components.Load(name); ok {
		return v.(entry).logger()
	}
	v, _ := components.LoadOrStore(name, derived{GetGlobalLogger().WithComponent(name)})
	return v.(entry).logger()
}

type entry interface{ logger() *Logger }

type pinned struct{ l *Logger }

func (p pinned) logger() *Logger { return p.l }

type derived struct{ l *Logger }

func (d derived) logger() *Logger { return d.l }

func resetComponents() {
	components.Range(func(k, v any) bool {
		if _, ok := v.(derived); ok {
			components.Delete(k)
		}
		return true
	})
}
