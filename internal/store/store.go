// Package store is the key-value persistence boundary of the application. It
// stands in for the browser local storage the site was first written against.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Store is a string-keyed byte store. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value for key. The bool is false when the key is unset.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the store for driver. path is ignored by the memory driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFile:
		return NewFile(OSFS{}, path), nil
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// GetJSON decodes the JSON value stored at key into v. It reports false and
// leaves v untouched when the key is unset.
func GetJSON(s Store, key string, v interface{}) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	return true, nil
}

// SetJSON stores the JSON encoding of v at key.
func SetJSON(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.Set(key, data)
}
