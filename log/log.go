package log

import (
	"fmt"
	"log"
	"strings"
)

// AllowDebug включает вывод сообщений с префиксом [DEBUG].
var AllowDebug = false

// Setup настраивает стандартный логгер: в режиме отладки добавляются микросекунды и файл:строка.
func Setup(debug bool) {
	AllowDebug = debug
	if debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		return
	}
	log.SetFlags(log.LstdFlags)
}

func Printf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	_ = log.Output(2, fmt.Sprintf(format, v...))
}

func Fatalf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	log.Fatalf(format, v...)
}

func allowed(s string) bool {
	if AllowDebug {
		return true
	}
	return !strings.HasPrefix(s, "[DEBUG]")
}
