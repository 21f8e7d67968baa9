// Package main provides a read-only inspection tool for the document store.
//
// It opens the Badger database directly and prints per-collection record
// counts, index key counts, and a per-coach breakdown of content ownership.
//
// Usage:
//
//	DATA_PATH=~/LaTateni/data go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// ownerRecord is the subset of fields shared by all content collections.
type ownerRecord struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/LaTateni/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	prefixes := []string{"coach:", "session:", "player:", "exercise:", "program:", "theory:", "aiquota:"}
	byOwner := make(map[string]map[string]int)

	for _, prefix := range prefixes {
		records, indexKeys, err := countPrefix(db, prefix, byOwner)
		if err != nil {
			log.Fatalf("Failed to scan %s: %v", prefix, err)
		}
		fmt.Printf("%-12s %5d records, %5d index keys\n", strings.TrimSuffix(prefix, ":"), records, indexKeys)
	}

	if len(byOwner) > 0 {
		fmt.Println()
		fmt.Println("Content per coach:")
		for ownerID, counts := range byOwner {
			fmt.Printf("  %s\n", ownerID)
			for collection, n := range counts {
				fmt.Printf("    %-10s %d\n", collection, n)
			}
		}
	}
}

// countPrefix counts records and index keys under one collection prefix and
// accumulates per-owner content counts for collections that carry an owner.
func countPrefix(db *badger.DB, prefix string, byOwner map[string]map[string]int) (records, indexKeys int, err error) {
	collection := strings.TrimSuffix(prefix, ":")

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())

			if strings.HasPrefix(key, prefix+"idx:") {
				indexKeys++
				continue
			}
			records++

			verr := item.Value(func(val []byte) error {
				var rec ownerRecord
				if err := json.Unmarshal(val, &rec); err != nil || rec.OwnerID == "" {
					return nil
				}
				if byOwner[rec.OwnerID] == nil {
					byOwner[rec.OwnerID] = make(map[string]int)
				}
				byOwner[rec.OwnerID][collection]++
				return nil
			})
			if verr != nil {
				return verr
			}
		}
		return nil
	})
	return records, indexKeys, err
}
