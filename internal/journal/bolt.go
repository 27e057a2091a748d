package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Bolt keeps the journal in a bbolt file so it survives restarts.
type Bolt struct {
	db   *bolt.DB
	size int
}

func OpenBolt(path string, size int) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal bucket: %w", err)
	}
	return &Bolt{db: db, size: size}, nil
}

// entryKey sorts by start time; the run ID keeps keys unique.
func entryKey(e Entry) []byte {
	key := make([]byte, 8, 8+len(e.ID))
	binary.BigEndian.PutUint64(key, uint64(e.StartedAt.UnixNano()))
	return append(key, e.ID[:]...)
}

func (j *Bolt) Append(e Entry) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runsBucket)
		if err := b.Put(entryKey(e), value); err != nil {
			return err
		}
		return j.prune(b)
	})
}

func (j *Bolt) prune(b *bolt.Bucket) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for len(keys) > j.size {
		if err := b.Delete(keys[0]); err != nil {
			return err
		}
		keys = keys[1:]
	}
	return nil
}

func (j *Bolt) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("decode journal entry: %w", err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (j *Bolt) Close() error {
	return j.db.Close()
}
