package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

func newTestBackend(t *testing.T) (tplog.Logger, backend.Backend) {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	backendDB := backend.NewBackend(backend.BackendType_Memdb, log, t.TempDir(), "test")
	assert.NotEqual(t, nil, backendDB)

	return log, backendDB
}

func TestPutCommitReadonly(t *testing.T) {
	log, backendDB := newTestBackend(t)

	ss := NewStateStore(log, backendDB, Flag_ReadOnly|Flag_WriteOnly)
	err := ss.AddNamedStateStore("test", 16)
	assert.Equal(t, nil, err)

	err = ss.Put("test", []byte("key1"), []byte("value1"))
	assert.Equal(t, nil, err)

	val, err := ss.GetStateData("test", []byte("key1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)

	err = ss.Commit()
	assert.Equal(t, nil, err)

	ssR := NewStateStore(log, backendDB, Flag_ReadOnly)
	err = ssR.AddNamedStateStore("test", 16)
	assert.Equal(t, nil, err)

	val, err = ssR.GetStateData("test", []byte("key1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)

	err = ssR.Put("test", []byte("key2"), []byte("value2"))
	assert.NotEqual(t, nil, err)

	ssR.Stop()
}

func TestRollbackDropsWrites(t *testing.T) {
	log, backendDB := newTestBackend(t)

	ss := NewStateStore(log, backendDB, Flag_ReadOnly|Flag_WriteOnly)
	ss.AddNamedStateStore("test", 16)
	ss.Put("test", []byte("key1"), []byte("value1"))
	ss.Commit()

	ss2 := NewStateStore(log, backendDB, Flag_ReadOnly|Flag_WriteOnly)
	ss2.AddNamedStateStore("test", 16)
	err := ss2.Put("test", []byte("key2"), []byte("value2"))
	assert.Equal(t, nil, err)
	err = ss2.Rollback()
	assert.Equal(t, nil, err)

	ssR := NewStateStore(log, backendDB, Flag_ReadOnly)
	ssR.AddNamedStateStore("test", 16)

	val, err := ssR.GetStateData("test", []byte("key1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)

	isExist, err := ssR.Exists("test", []byte("key2"))
	assert.Equal(t, nil, err)
	assert.Equal(t, false, isExist)

	ssR.Stop()
}

func TestProofVerifies(t *testing.T) {
	log, backendDB := newTestBackend(t)

	ss := NewStateStore(log, backendDB, Flag_ReadOnly|Flag_WriteOnly)
	ss.AddNamedStateStore("test", 16)
	ss.Put("test", []byte("key1"), []byte("value1"))
	ss.Put("test", []byte("key2"), []byte("value2"))
	err := ss.Commit()
	assert.Equal(t, nil, err)

	ssR := NewStateStore(log, backendDB, Flag_ReadOnly)
	ssR.AddNamedStateStore("test", 16)

	root, err := ssR.Root("test")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(root))

	val, proof, err := ssR.GetState("test", []byte("key1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)
	assert.Equal(t, true, VerifyProof(proof, root, []byte("key1"), []byte("value1")))
	assert.Equal(t, false, VerifyProof(proof, root, []byte("key1"), []byte("valueX")))

	ssR.Stop()
}

func TestNamedStoresAreIsolated(t *testing.T) {
	log, backendDB := newTestBackend(t)

	ss := NewStateStore(log, backendDB, Flag_ReadOnly|Flag_WriteOnly)
	ss.AddNamedStateStore("one", 16)
	ss.AddNamedStateStore("two", 16)

	ss.Put("one", []byte("key1"), []byte("value1"))

	isExist, err := ss.Exists("two", []byte("key1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, false, isExist)

	keys, values, err := ss.GetAllStateData("one")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(keys))
	assert.Equal(t, []byte("value1"), values[0])

	ss.Rollback()
}
