// Package thumbs generates grid thumbnails lazily and keeps them in a bbolt
// cache so repeated runs do not decode the same source again.
package thumbs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	ThumbnailsBucket = "Thumbnails" // Bucket name for cache key to PNG bytes.
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Cache stores encoded thumbnails keyed by source and size.
type Cache struct {
	db     *bolt.DB
	logger LoggerFunc
}

// OpenCache creates or opens the cache file at path.
func OpenCache(path string, logger LoggerFunc) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory for %s: %w", path, err)
	}
	if logger != nil {
		logger(fmt.Sprintf("Using thumbnail cache at: %s", path))
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(ThumbnailsBucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", ThumbnailsBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, logger: logger}, nil
}

// CacheKey derives the cache key for a source rendered at size pixels. Data
// URLs can be megabytes long, so the key is a digest.
func CacheKey(source string, size int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", size, source)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached PNG for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	var out []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(ThumbnailsBucket)).Get([]byte(key))
		if v != nil {
			// bbolt memory is only valid inside the transaction.
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		c.logMessage("Thumbnail cache read failed for %s: %v", key, err)
		return nil, false
	}
	return out, out != nil
}

// Put stores data under key.
func (c *Cache) Put(key string, data []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(ThumbnailsBucket)).Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to store thumbnail %s: %w", key, err)
		}
		return nil
	})
}

// Len counts the cached thumbnails.
func (c *Cache) Len() int {
	n := 0
	c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(ThumbnailsBucket)).Stats().KeyN
		return nil
	})
	return n
}

// Purge drops every cached thumbnail.
func (c *Cache) Purge() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(ThumbnailsBucket)); err != nil {
			return fmt.Errorf("failed to delete bucket %s: %w", ThumbnailsBucket, err)
		}
		_, err := tx.CreateBucket([]byte(ThumbnailsBucket))
		return err
	})
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Cache) logMessage(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}
