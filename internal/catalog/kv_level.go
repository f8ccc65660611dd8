package catalog

import (
	"context"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type LevelKV struct {
	db *leveldb.DB
}

func OpenLevelKV(path string) (*LevelKV, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelKV{db: db}, nil
}

func (s *LevelKV) Ping(ctx context.Context) error {
	_, err := s.db.GetProperty("leveldb.num-files-at-level0")
	return err
}

func (s *LevelKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	v, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *LevelKV) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true})
}

func (s *LevelKV) Close() error {
	return s.db.Close()
}
