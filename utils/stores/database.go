package stores

import (
	"fmt"

	"getrich-notifier/models/entities"
	"getrich-notifier/utils/databases"

	"gorm.io/gorm"
)

type databaseStore struct {
	db databases.SqlConnection
}

// NewDatabaseStore persists each namespace as rows of the destinations table,
// rewritten wholesale on every save.
func NewDatabaseStore(db databases.SqlConnection) KeyValueStore {
	return &databaseStore{db: db}
}

func (store *databaseStore) Load(namespace string) (map[string]string, error) {
	var rows []entities.Destination
	result := store.db.GetDB().Where("namespace = ?", namespace).Find(&rows)
	if result.Error != nil {
		return make(map[string]string), result.Error
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.CommunityID] = row.DestinationID
	}

	return values, nil
}

func (store *databaseStore) SaveAll(namespace string, values map[string]string) error {
	return store.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("namespace = ?", namespace).Delete(&entities.Destination{}).Error; err != nil {
			return fmt.Errorf("failed to clear namespace %s: %w", namespace, err)
		}

		for communityID, destinationID := range values {
			row := entities.Destination{Namespace: namespace, CommunityID: communityID, DestinationID: destinationID}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save destination: %w", err)
			}
		}

		return nil
	})
}
