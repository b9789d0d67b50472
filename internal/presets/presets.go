// Package presets persists named multicast group configurations so a
// user does not retype address, port and message on every launch.
package presets

import (
	"fmt"
	"os"

	"go.etcd.io/bbolt"
)

const (
	PresetsBucket = "group_presets"
)

// Preset is one saved group configuration.
type Preset struct {
	Name      string
	Address   string
	Port      int
	Message   string
	Interface string
}

// Store keeps presets in a bbolt bucket.
type Store struct {
	db         *bbolt.DB
	serializer Serializer
}

// Config contains configuration for the Store.
type Config struct {
	Path       string
	FileMode   os.FileMode
	Options    *bbolt.Options
	Serializer Serializer
}

// NewStore opens (or creates) the preset database.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Serializer == nil {
		cfg.Serializer = &GobSerializer{}
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0666
	}

	db, err := bbolt.Open(cfg.Path, cfg.FileMode, cfg.Options)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(PresetsBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{
		db:         db,
		serializer: cfg.Serializer,
	}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return ErrNilDB
	}
	return s.db.Close()
}

// Save writes or overwrites a preset keyed by its name.
func (s *Store) Save(p Preset) error {
	if p.Name == "" {
		return ErrEmptyName
	}

	data, err := s.serializer.Serialize(p)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(PresetsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Put([]byte(p.Name), data)
	})
}

// Get returns the preset stored under name.
func (s *Store) Get(name string) (*Preset, error) {
	var preset Preset

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(PresetsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}

		return s.serializer.Deserialize(data, &preset)
	})
	if err != nil {
		return nil, err
	}

	return &preset, nil
}

// List returns all presets in key order.
func (s *Store) List() ([]Preset, error) {
	var presets []Preset

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(PresetsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		return bucket.ForEach(func(_, data []byte) error {
			var preset Preset
			if err := s.serializer.Deserialize(data, &preset); err != nil {
				return err
			}
			presets = append(presets, preset)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return presets, nil
}

// Delete removes the preset stored under name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(PresetsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}
