package index

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var snapshotBucket = []byte("units")

// unitRecord is the on-disk form of one indexed unit.
type unitRecord struct {
	UnitID    string    `json:"unit_id"`
	Embedding []float32 `json:"embedding"`
	Content   string    `json:"content"`
}

// SaveSnapshot writes the current units to a bbolt file at path,
// replacing any previous snapshot in the file.
func (x *InMemoryIndex) SaveSnapshot(path string) error {
	units := x.Units()

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(snapshotBucket) != nil {
			if err := tx.DeleteBucket(snapshotBucket); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket(snapshotBucket)
		if err != nil {
			return err
		}

		for _, unit := range units {
			record := unitRecord{
				UnitID:    unit.ID,
				Embedding: unit.Embedding,
				Content:   unit.Content,
			}
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", unit.ID, err)
			}
			if err := bucket.Put([]byte(unit.ID), data); err != nil {
				return fmt.Errorf("put %s: %w", unit.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot replaces the index contents with the units stored at path.
// Loading a non-empty snapshot sets the ready flag; a missing bucket
// leaves the index empty and not ready.
func (x *InMemoryIndex) LoadSnapshot(path string) error {
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer db.Close()

	units := make(map[string]Unit)
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(snapshotBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(key, value []byte) error {
			var record unitRecord
			if err := json.Unmarshal(value, &record); err != nil {
				return fmt.Errorf("unmarshal %s: %w", key, err)
			}
			units[record.UnitID] = Unit{
				ID:        record.UnitID,
				Embedding: record.Embedding,
				Content:   record.Content,
				LineCount: countLines(record.Content),
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", path, err)
	}

	x.mu.Lock()
	x.units = units
	x.ready = len(units) > 0
	x.version++
	x.mu.Unlock()

	return nil
}
