package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nvkalinin/days-calendar/store"
)

// File - базовый источник: JSON-файл с массивом событий (формат days.json).
//
//	[{"name": "Ada Lovelace Day", "monthName": "October", "dayName": "Tuesday", "occurrence": "second"}]
type File struct {
	Path string
}

func (f *File) GetEvents() (store.Events, error) {
	// Файл могут менять между синхронизациями, поэтому читаем его при каждом вызове.
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("source/file cannot read %s: %w", f.Path, err)
	}

	return decodeJSON(data)
}

func decodeJSON(data []byte) (store.Events, error) {
	var events store.Events
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("cannot parse events json: %w", err)
	}
	return events, nil
}
