package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Key layout:
//
//	record:<id>            -> JSON record
//	challenge:<code>:<id>  -> "" (index only; the record lives under record:)
const (
	recordPrefix    = "record:"
	challengePrefix = "challenge:"
)

// LevelStore keeps records in a local LevelDB directory.
type LevelStore struct {
	db *leveldb.DB
}

func OpenLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leaderboard db: %w", err)
	}
	return &LevelStore{db: db}, nil
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}

func (s *LevelStore) Save(ctx context.Context, r Record) error {
	_ = ctx
	r = NewRecord(r)
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put([]byte(recordPrefix+r.ID), b)
	if r.ChallengeCode != "" {
		batch.Put([]byte(challengePrefix+strings.ToUpper(r.ChallengeCode)+":"+r.ID), nil)
	}
	return s.db.Write(batch, nil)
}

func (s *LevelStore) All(ctx context.Context) ([]Record, error) {
	_ = ctx
	var out []Record
	iter := s.db.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		var r Record
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			// A corrupt row shouldn't hide the rest of the board.
			continue
		}
		out = append(out, r)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sortByScore(out)
	return out, nil
}

func (s *LevelStore) ByChallenge(ctx context.Context, code string) ([]Record, error) {
	_ = ctx
	prefix := challengePrefix + strings.ToUpper(strings.TrimSpace(code)) + ":"
	var out []Record
	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()
	for iter.Next() {
		id := strings.TrimPrefix(string(iter.Key()), prefix)
		b, err := s.db.Get([]byte(recordPrefix+id), nil)
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(b, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sortByScore(out)
	return out, nil
}

func sortByScore(rs []Record) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Score != rs[j].Score {
			return rs[i].Score > rs[j].Score
		}
		return rs[i].CreatedAt.Before(rs[j].CreatedAt)
	})
}
