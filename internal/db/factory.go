package db

import (
	"fmt"
)

type StorageType string

const (
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType  StorageType
	SQLiteDBPath string
}

// NewConnectionFactory отдает подключение к выбранному хранилищу.
// Для inMemory хранилища подключение не нужно, возвращается nil.
func NewConnectionFactory(config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypeSQLite:
		conn, err := NewSQLite(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
		return conn, nil
	case StorageTypeInMemory:
		return nil, nil //nolint:nilnil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}
