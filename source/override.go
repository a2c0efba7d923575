package source

import (
	"fmt"
	"os"

	"github.com/nvkalinin/days-calendar/store"
	"gopkg.in/yaml.v3"
)

// Override - источник, который берет данные из YAML-файла с локальными изменениями.
// События с тем же именем, что и в предыдущих источниках, заменяют их; остальные добавляются.
type Override struct {
	Path string
}

type overrides struct {
	Days store.Events `yaml:"days"`
}

func (o *Override) GetEvents() (store.Events, error) {
	// Админ может менять файл, поэтому читаем его при каждом вызове.
	f, err := os.ReadFile(o.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read overrides yaml: %w", err)
	}

	ov := overrides{}
	if err := yaml.Unmarshal(f, &ov); err != nil {
		return nil, fmt.Errorf("cannot parse overrides yaml: %w", err)
	}

	return ov.Days, nil
}
