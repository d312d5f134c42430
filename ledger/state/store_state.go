package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
)

type Flag int

const (
	Flag_Unknown   Flag = 0x00
	Flag_ReadOnly       = 0x01
	Flag_WriteOnly      = 0x10
)

// StateStore is a set of named key-value stores sharing one backend
// transaction. Writes stay pending until Commit; Rollback drops them all.
type StateStore interface {
	AddNamedStateStore(name string, cacheSize int) error

	Root(name string) ([]byte, error)

	Put(name string, key []byte, value []byte) error

	Delete(name string, key []byte) error

	Exists(name string, key []byte) (bool, error)

	Update(name string, key []byte, value []byte) error

	GetStateData(name string, key []byte) ([]byte, error)

	GetState(name string, key []byte) ([]byte, []byte, error)

	GetAllStateData(name string) ([][]byte, [][]byte, error)

	GetAllState(name string) ([][]byte, [][]byte, [][]byte, error)

	Commit() error

	Rollback() error

	Stop() error

	Close() error
}

type stateStore struct {
	log       tplog.Logger
	backend   backend.Backend
	backendR  tplgcmm.DBReader
	backendRW tplgcmm.DBReadWriter
	lock      sync.RWMutex
	storeMap  map[string]*StateStoreComposition
}

func NewStateStore(log tplog.Logger, backendDB backend.Backend, flag Flag) StateStore {
	if Flag_ReadOnly|Flag_WriteOnly == flag {
		return &stateStore{
			log:       log,
			backend:   backendDB,
			backendRW: backendDB.ReadWriter(),
			storeMap:  make(map[string]*StateStoreComposition),
		}
	} else if Flag_ReadOnly == flag {
		return &stateStore{
			log:      log,
			backend:  backendDB,
			backendR: backendDB.Reader(),
			storeMap: make(map[string]*StateStoreComposition),
		}
	} else {
		log.Panicf("Invalid state store flag")
		return nil
	}
}

func (m *stateStore) AddNamedStateStore(name string, cacheSize int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.storeMap[name]; ok {
		return nil
	}

	var ss *StateStoreComposition
	var err error
	if m.backendR != nil {
		ss, err = newStateStoreCompositionReadonly(m.log, m.backendR, name)
	} else {
		ss, err = newStateStoreComposition(m.log, m.backendRW, name, cacheSize)
	}
	if err != nil {
		return err
	}
	m.storeMap[name] = ss

	return nil
}

func (m *stateStore) Root(name string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.Root(), nil
	}

	return nil, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) Put(name string, key []byte, value []byte) error {
	if m.backendR != nil {
		return errors.New("Can't put because of read only state store")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.Put(key, value)
	}

	return fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) Delete(name string, key []byte) error {
	if m.backendR != nil {
		return errors.New("Can't delete because of read only state store")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.Delete(key)
	}

	return fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) Exists(name string, key []byte) (bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.Exists(key)
	}

	return false, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) Update(name string, key []byte, value []byte) error {
	if m.backendR != nil {
		return errors.New("Can't update because of read only state store")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.Update(key, value)
	}

	return fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) GetStateData(name string, key []byte) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.GetStateData(key)
	}

	return nil, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) GetState(name string, key []byte) ([]byte, []byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.GetState(key)
	}

	return nil, nil, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) GetAllStateData(name string) ([][]byte, [][]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.GetAllStateData()
	}

	return nil, nil, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) GetAllState(name string) ([][]byte, [][]byte, [][]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if ss, ok := m.storeMap[name]; ok {
		return ss.GetAllState()
	}

	return nil, nil, nil, fmt.Errorf("Can't find the responding state store: name=%s", name)
}

func (m *stateStore) Commit() error {
	if m.backendR != nil {
		return errors.New("Can't commit because of read only state store")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	return m.backendRW.Commit()
}

func (m *stateStore) Rollback() error {
	if m.backendR != nil {
		return errors.New("Can't rollback because of read only state store")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	return m.backendRW.Discard()
}

func (m *stateStore) Stop() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.backendR != nil {
		return m.backendR.Discard()
	}

	return m.backendRW.Discard()
}

func (m *stateStore) Close() error {
	return m.backend.Close()
}
