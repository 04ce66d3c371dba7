package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"faqrag/internal/adapter/vectorstore"
	"faqrag/internal/domain"
)

var keyMeta = []byte("meta")

type boltMeta struct {
	Dimension int `json:"dimension"`
	Count     int `json:"count"`
}

// BoltStore persists one collection in a bucket of a shared bbolt
// database. Documents are keyed by an 8-byte sequence number so loads
// iterate in insertion order; a bolt transaction makes Save atomic.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

// OpenBolt opens (creating if needed) the shared snapshot database.
func OpenBolt(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return db, nil
}

// NewBoltStore creates a snapshot store for the named collection.
func NewBoltStore(db *bbolt.DB, collection string) *BoltStore {
	return &BoltStore{
		db:     db,
		bucket: []byte("collection:" + collection),
	}
}

// Save writes the documents as one snapshot, replacing any previous one.
func (b *BoltStore) Save(docs []domain.Document) error {
	dim := 0
	if len(docs) > 0 {
		dim = len(docs[0].Embedding)
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(b.bucket) != nil {
			if err := tx.DeleteBucket(b.bucket); err != nil {
				return fmt.Errorf("failed to clear bucket: %w", err)
			}
		}
		bkt, err := tx.CreateBucket(b.bucket)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		meta, err := json.Marshal(boltMeta{Dimension: dim, Count: len(docs)})
		if err != nil {
			return err
		}
		if err := bkt.Put(keyMeta, meta); err != nil {
			return err
		}

		for i, doc := range docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to marshal document %s: %w", doc.ID, err)
			}
			if err := bkt.Put(seqKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the snapshot back in document order.
func (b *BoltStore) Load() ([]domain.Document, error) {
	var docs []domain.Document
	var meta boltMeta

	err := b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(b.bucket)
		if bkt == nil {
			return fmt.Errorf("no snapshot for %s", b.bucket)
		}

		raw := bkt.Get(keyMeta)
		if raw == nil {
			return fmt.Errorf("%s: missing meta: %w", b.bucket, vectorstore.ErrCorruptSnapshot)
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return fmt.Errorf("%s: %v: %w", b.bucket, err, vectorstore.ErrCorruptSnapshot)
		}

		return bkt.ForEach(func(k, v []byte) error {
			if len(k) != 8 {
				return nil // meta key
			}
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("%s: %v: %w", b.bucket, err, vectorstore.ErrCorruptSnapshot)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if len(docs) != meta.Count {
		return nil, fmt.Errorf("%s: expected %d documents, found %d: %w",
			b.bucket, meta.Count, len(docs), vectorstore.ErrCorruptSnapshot)
	}
	if err := validate(meta.Dimension, docs); err != nil {
		return nil, fmt.Errorf("%s: %w", b.bucket, err)
	}
	return docs, nil
}

// Exists reports whether the collection bucket is present.
func (b *BoltStore) Exists() (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(b.bucket) != nil
		return nil
	})
	return found, err
}

func seqKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}
