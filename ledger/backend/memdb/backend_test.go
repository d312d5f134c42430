package memdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

func newTestBackend(t *testing.T) *MemDBBackend {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	backend := NewMemDBBackend(log, "test")
	assert.NotEqual(t, nil, backend)

	return backend
}

func TestCommitVisibility(t *testing.T) {
	backend := newTestBackend(t)

	rw := backend.ReadWriter()
	err := rw.Set([]byte("test1"), []byte("value1"))
	assert.Equal(t, nil, err)
	err = rw.Set([]byte("test2"), []byte("value2"))
	assert.Equal(t, nil, err)

	// A reader opened before the commit must not see pending writes.
	r := backend.Reader()
	val, err := r.Get([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte(nil), val)

	// The transaction reads its own writes.
	val, err = rw.Get([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)

	err = rw.Commit()
	assert.Equal(t, nil, err)
	r.Discard()

	r2 := backend.Reader()
	val, err = r2.Get([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("value1"), val)
	r2.Discard()

	assert.Equal(t, int32(0), backend.PendingTxCount())
}

func TestDiscardDropsWrites(t *testing.T) {
	backend := newTestBackend(t)

	rw := backend.ReadWriter()
	rw.Set([]byte("test1"), []byte("value1"))
	err := rw.Discard()
	assert.Equal(t, nil, err)

	r := backend.Reader()
	val, err := r.Get([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte(nil), val)
	r.Discard()

	rw2 := backend.ReadWriter()
	err = rw2.Set([]byte("test1"), []byte("value1"))
	assert.Equal(t, nil, err)
	err = rw2.Commit()
	assert.Equal(t, nil, err)

	err = rw2.Set([]byte("test2"), []byte("value2"))
	assert.NotEqual(t, nil, err)
}

func TestIteratorRange(t *testing.T) {
	backend := newTestBackend(t)

	rw := backend.ReadWriter()
	rw.Set([]byte("a1"), []byte("v1"))
	rw.Set([]byte("a2"), []byte("v2"))
	rw.Set([]byte("a3"), []byte("v3"))
	rw.Set([]byte("b1"), []byte("v4"))
	err := rw.Commit()
	assert.Equal(t, nil, err)

	r := backend.Reader()
	defer r.Discard()

	it, err := r.Iterator([]byte("a2"), []byte("b1"))
	assert.Equal(t, nil, err)

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()

	assert.Equal(t, []string{"a2", "a3"}, keys)

	itAll, err := r.Iterator(nil, nil)
	assert.Equal(t, nil, err)
	count := 0
	for itAll.Next() {
		count++
	}
	itAll.Close()
	assert.Equal(t, 4, count)
}

func TestDelete(t *testing.T) {
	backend := newTestBackend(t)

	rw := backend.ReadWriter()
	rw.Set([]byte("test1"), []byte("value1"))
	err := rw.Commit()
	assert.Equal(t, nil, err)

	rw2 := backend.ReadWriter()
	err = rw2.Delete([]byte("test1"))
	assert.Equal(t, nil, err)
	has, err := rw2.Has([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, false, has)
	err = rw2.Commit()
	assert.Equal(t, nil, err)

	r := backend.Reader()
	has, err = r.Has([]byte("test1"))
	assert.Equal(t, nil, err)
	assert.Equal(t, false, has)
	r.Discard()
}
