package store

import "strings"

// Event описывает памятный день, который повторяется каждый год:
// "<Occurrence> <Weekday> of <Month>", например "second Tuesday of October".
//
// Поля хранятся строками в том виде, в каком они пришли из источника (days.json, YAML, HTML).
// Разбор и проверку выполняет пакет calendar.
type Event struct {
	Name       string `json:"name" yaml:"name"`
	Month      string `json:"monthName" yaml:"monthName"`
	Weekday    string `json:"dayName" yaml:"dayName"`
	Occurrence string `json:"occurrence" yaml:"occurrence"`
}

// Events - упорядоченный набор определений. Порядок важен: в нём события выводятся в календаре и экспорте.
type Events []Event

// Key используется для слияния источников: события с одинаковым ключом считаются одним событием.
func (e Event) Key() string {
	return strings.ToLower(strings.Join(strings.Fields(e.Name), " "))
}

func (e Events) Copy() Events {
	if e == nil {
		return nil
	}
	eCopy := make(Events, len(e))
	copy(eCopy, e)
	return eCopy
}

// Index возвращает позицию события с ключом key или -1.
func (e Events) Index(key string) int {
	for i, ev := range e {
		if ev.Key() == key {
			return i
		}
	}
	return -1
}
