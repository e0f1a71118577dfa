package reactivity

import "log"

// WarnHandler receives development diagnostics. Set it to nil to silence
// them entirely, as a production build would.
type WarnHandler func(format string, args ...any)

var (
	devMode                  = true
	warnHandler  WarnHandler = log.Printf
)

func SetDevMode(on bool) {
	devMode = on
}

func SetWarnHandler(h WarnHandler) {
	warnHandler = h
}

func warn(format string, args ...any) {
	if devMode && warnHandler != nil {
		warnHandler("[reactivity] "+format, args...)
	}
}
