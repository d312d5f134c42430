package leveldb

import (
	"path/filepath"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
)

type LeveldbBackend struct {
	log            tplog.Logger
	db             *leveldb.DB
	pendingTxCount int32
}

func NewLeveldbBackend(log tplog.Logger, name string, path string, cacheSize int) *LeveldbBackend {
	dbPath := filepath.Join(path, name+".db")
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: cacheSize,
	})
	if err != nil {
		log.Panicf("Can't open leveldb %s: %v", dbPath, err)
	}

	return &LeveldbBackend{
		log: log,
		db:  db,
	}
}

func (l *LeveldbBackend) Reader() tplgcmm.DBReader {
	snap, err := l.db.GetSnapshot()
	if err != nil {
		l.log.Panicf("Can't get leveldb snapshot: %v", err)
	}

	atomic.AddInt32(&l.pendingTxCount, 1)

	return &leveldbReader{
		backend: l,
		snap:    snap,
	}
}

func (l *LeveldbBackend) ReadWriter() tplgcmm.DBReadWriter {
	// OpenTransaction blocks until the previous transaction is closed, so
	// at most one writer is active at a time.
	tx, err := l.db.OpenTransaction()
	if err != nil {
		l.log.Panicf("Can't open leveldb transaction: %v", err)
	}

	atomic.AddInt32(&l.pendingTxCount, 1)

	return &leveldbReadWriter{
		backend: l,
		tx:      tx,
	}
}

func (l *LeveldbBackend) PendingTxCount() int32 {
	return atomic.LoadInt32(&l.pendingTxCount)
}

func (l *LeveldbBackend) Close() error {
	return l.db.Close()
}

type leveldbIterator struct {
	source iterator.Iterator
}

func (it *leveldbIterator) Next() bool {
	return it.source.Next()
}

func (it *leveldbIterator) Key() []byte {
	// Slices returned by goleveldb are only valid until the next move.
	return append([]byte(nil), it.source.Key()...)
}

func (it *leveldbIterator) Value() []byte {
	return append([]byte(nil), it.source.Value()...)
}

func (it *leveldbIterator) Error() error {
	return it.source.Error()
}

func (it *leveldbIterator) Close() error {
	it.source.Release()
	return it.source.Error()
}

func iterRange(start, end []byte) (*util.Range, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, tplgcmm.ErrKeyEmpty
	}
	return &util.Range{Start: start, Limit: end}, nil
}

type leveldbReader struct {
	backend *LeveldbBackend
	snap    *leveldb.Snapshot
	closed  bool
}

func (r *leveldbReader) Get(key []byte) ([]byte, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}

	val, err := r.snap.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	return val, err
}

func (r *leveldbReader) Has(key []byte) (bool, error) {
	if r.closed {
		return false, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return false, tplgcmm.ErrKeyEmpty
	}
	return r.snap.Has(key, nil)
}

func (r *leveldbReader) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	rng, err := iterRange(start, end)
	if err != nil {
		return nil, err
	}
	return &leveldbIterator{source: r.snap.NewIterator(rng, nil)}, nil
}

func (r *leveldbReader) Discard() error {
	if !r.closed {
		r.closed = true
		r.snap.Release()
		atomic.AddInt32(&r.backend.pendingTxCount, -1)
	}
	return nil
}

type leveldbReadWriter struct {
	backend *LeveldbBackend
	tx      *leveldb.Transaction
	closed  bool
}

func (rw *leveldbReadWriter) Get(key []byte) ([]byte, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}

	val, err := rw.tx.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	return val, err
}

func (rw *leveldbReadWriter) Has(key []byte) (bool, error) {
	if rw.closed {
		return false, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return false, tplgcmm.ErrKeyEmpty
	}
	return rw.tx.Has(key, nil)
}

func (rw *leveldbReadWriter) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	rng, err := iterRange(start, end)
	if err != nil {
		return nil, err
	}
	return &leveldbIterator{source: rw.tx.NewIterator(rng, nil)}, nil
}

func (rw *leveldbReadWriter) Set(key, value []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if err := tplgcmm.ValidateKv(key, value); err != nil {
		return err
	}
	return rw.tx.Put(key, value, nil)
}

func (rw *leveldbReadWriter) Delete(key []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return tplgcmm.ErrKeyEmpty
	}
	return rw.tx.Delete(key, nil)
}

func (rw *leveldbReadWriter) Commit() error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}

	err := rw.tx.Commit()
	rw.closed = true
	atomic.AddInt32(&rw.backend.pendingTxCount, -1)

	return err
}

func (rw *leveldbReadWriter) Discard() error {
	if !rw.closed {
		rw.closed = true
		rw.tx.Discard()
		atomic.AddInt32(&rw.backend.pendingTxCount, -1)
	}
	return nil
}
