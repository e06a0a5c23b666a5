package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

// boardsKey is the single entry the whole collection lives under, the
// equivalent of the browser localStorage key this store replaces.
const boardsKey = "taskboard_boards"

// BoardRepository wraps BoltDB to persist the board collection as one
// JSON blob under a fixed key.
type BoardRepository struct {
	db     *bolt.DB
	bucket []byte
	logger *zap.Logger
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string, logger *zap.Logger) (*BoardRepository, error) {
	if bucket == "" {
		bucket = "taskboard"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoardRepository{
		db:     db,
		bucket: []byte(bucket),
		logger: logger,
	}, nil
}

// Load reads the stored collection. A missing entry or an unparseable
// blob yields an empty collection, never an error.
func (r *BoardRepository) Load(ctx context.Context) ([]domain.Board, error) {
	if r == nil || r.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var raw []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(r.bucket).Get([]byte(boardsKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.Board{}, nil
	}
	var boards []domain.Board
	if err := json.Unmarshal(raw, &boards); err != nil {
		r.logger.Warn("discarding unreadable board data", zap.Error(err))
		return []domain.Board{}, nil
	}
	return boards, nil
}

// Save replaces the stored collection with the provided one.
func (r *BoardRepository) Save(ctx context.Context, boards []domain.Board) error {
	if r == nil || r.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := json.Marshal(boards)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(boardsKey), payload)
	})
}

// Close closes the Bolt database.
func (r *BoardRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
