package stores

import (
	"encoding/json"
	"os"
	"path/filepath"

	"getrich-notifier/models/constants"

	"github.com/rs/zerolog/log"
)

type fileStore struct {
	dir string
}

// NewFileStore persists each namespace as <dir>/<namespace>.json.
func NewFileStore(dir string) KeyValueStore {
	return &fileStore{dir: dir}
}

func (store *fileStore) path(namespace string) string {
	return filepath.Join(store.dir, namespace+".json")
}

func (store *fileStore) Load(namespace string) (map[string]string, error) {
	values := make(map[string]string)

	content, err := os.ReadFile(store.path(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return values, err
	}

	if errJSON := json.Unmarshal(content, &values); errJSON != nil {
		return make(map[string]string), errJSON
	}

	return values, nil
}

func (store *fileStore) SaveAll(namespace string, values map[string]string) error {
	content, err := json.Marshal(values)
	if err != nil {
		return err
	}

	log.Debug().
		Str(constants.LogNamespace, namespace).
		Str(constants.LogFileName, store.path(namespace)).
		Msg("Persisting config file")
	return os.WriteFile(store.path(namespace), content, 0600)
}
