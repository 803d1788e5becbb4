package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonbodner/proteus"
)

// ErrDuplicateCouplet is returned by CheckHash when an identical couplet was already stored.
var ErrDuplicateCouplet = errors.New("couplet was already composed")

var CoupletHashDAO CoupletHashDaoImpl

type CoupletHashDaoImpl struct {
	Upsert    func(ctx context.Context, e proteus.ContextExecutor, mid int64, md5Sum []byte) (int64, error) `proq:"q:upsert" prop:"mid,md5Sum"`
	FindByMD5 func(ctx context.Context, e proteus.ContextQuerier, md5Sum []byte) (int64, error)             `proq:"q:findByMD5" prop:"md5Sum"`
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO couplet_hash (message_id, md5_sum) VALUES (:mid:, :md5Sum:)
				   ON CONFLICT (message_id)
				   DO UPDATE SET md5_sum = excluded.md5_sum`,
		"findByMD5": `SELECT message_id FROM couplet_hash WHERE md5_sum = :md5Sum:`,
	}
	err := proteus.ShouldBuild(context.Background(), &CoupletHashDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}

// CheckHash stores hash for mid unless another message already has it, in which case
// ErrDuplicateCouplet is returned.
func CheckHash(ctx context.Context, e proteus.ContextWrapper, mid int64, hash [16]byte) error {
	midFound, err := CoupletHashDAO.FindByMD5(ctx, e, hash[:])
	if err != nil {
		return fmt.Errorf("error while looking up couplet hash: %w", err)
	}
	if midFound != 0 && midFound != mid {
		log.Println("couplet was already composed; original message_id:", midFound)
		return fmt.Errorf("%w for message %d", ErrDuplicateCouplet, midFound)
	}
	_, err = CoupletHashDAO.Upsert(ctx, e, mid, hash[:])
	if err != nil {
		log.Println("could not store couplet hash in database,", err)
		return fmt.Errorf("error while storing couplet hash: %w", err)
	}
	return nil
}
