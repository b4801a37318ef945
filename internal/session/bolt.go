package session

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

// BoltStore persists sessions across restarts. Same contract as
// MemoryStore; selected via SESSION_BACKEND=bolt.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(userID string) (Session, error) {
	sess := New()
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get([]byte(userID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &sess)
	})
	if err != nil {
		return New(), err
	}
	return sess, nil
}

func (s *BoltStore) Put(userID string, sess Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return tx.Bucket(sessionsBucket).Put([]byte(userID), data)
	})
}

func (s *BoltStore) Delete(userID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(userID))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
