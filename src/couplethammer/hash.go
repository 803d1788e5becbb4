package couplethammer

import (
	"context"
	"crypto/md5"
	"database/sql"
	"log"
	"strings"

	"github.com/kalexmills/couplet-hammer/src/couplethammer/db"
)

// DuplicateHash ignores case and everything but letters, spaces and newlines, so
// messages differing only in punctuation hash the same.
func DuplicateHash(content string) [md5.Size]byte {
	return md5.Sum([]byte(strings.ToUpper(hashStrip(content))))
}

func hashStrip(s string) string {
	return stripBytes(s, func(b byte) bool {
		return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == ' ' || b == '\n'
	})
}

func stripBytes(s string, keep func(byte) bool) string {
	var result strings.Builder
	for i := 0; i < len(s); i++ {
		if keep(s[i]) {
			result.WriteByte(s[i])
		}
	}
	return result.String()
}

// UpdateHashes ensures all couplets have their hashes loaded into the table. It's intended
// to be run on a separate goroutine on startup.
func UpdateHashes(sqlDB *sql.DB) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("recovered from panic in UpdateHashes: %v", err)
			return
		}
	}()
	log.Println("beginning UpdateHashes.")
	ctx := context.Background()
	rows, err := sqlDB.QueryContext(ctx, `SELECT message_id, line1, line2 FROM couplet`)
	if err != nil {
		log.Println("encountered error while updating hashes,", err)
		return
	}
	defer rows.Close()
	var (
		messageID    int64
		line1, line2 string
	)
	insertCount := 0
	for rows.Next() {
		err = rows.Scan(&messageID, &line1, &line2)
		if err != nil {
			log.Println("encountered error while scanning hashes,", err)
			return
		}
		hash := DuplicateHash(line1 + "\n" + line2)
		count, _ := db.CoupletHashDAO.Upsert(ctx, sqlDB, messageID, hash[:])
		if count != 0 {
			insertCount++
		}
	}
	log.Printf("upserted %d couplet hashes", insertCount)
}
