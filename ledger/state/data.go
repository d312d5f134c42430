package state

import (
	lru "github.com/hashicorp/golang-lru"

	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
)

type stateData struct {
	name  string
	dbR   tplgcmm.DBReader
	dbW   tplgcmm.DBWriter
	cache *lru.Cache
}

func newStateData(name string, db tplgcmm.DBReadWriter, cacheSize int) *stateData {
	cache, _ := lru.New(cacheSize)
	return &stateData{
		name:  name,
		dbR:   db,
		dbW:   db,
		cache: cache,
	}
}

func newStateDataReadonly(name string, db tplgcmm.DBReader) *stateData {
	return &stateData{
		name: name,
		dbR:  db,
	}
}

func (s *stateData) Get(key []byte) ([]byte, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(string(key)); ok {
			return cached.([]byte), nil
		}
	}

	val, err := s.dbR.Get(key)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && val != nil {
		s.cache.Add(string(key), val)
	}

	return val, nil
}

func (s *stateData) Set(key []byte, value []byte) error {
	err := s.dbW.Set(key, value)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Add(string(key), value)
	}

	return nil
}

func (s *stateData) Delete(key []byte) error {
	err := s.dbW.Delete(key)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(string(key))
	}

	return nil
}

func (s *stateData) Has(key []byte) (bool, error) {
	if s.cache != nil {
		if _, ok := s.cache.Get(string(key)); ok {
			return true, nil
		}
	}

	return s.dbR.Has(key)
}

func (s *stateData) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	return s.dbR.Iterator(start, end)
}

func (s *stateData) All() ([][]byte, [][]byte, error) {
	it, err := s.dbR.Iterator(nil, nil)
	if err != nil {
		return nil, nil, err
	}
	defer it.Close()

	var keys, values [][]byte
	for it.Next() {
		keys = append(keys, it.Key())
		values = append(values, it.Value())
	}
	if err = it.Error(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}
