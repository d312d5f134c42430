package badger

import (
	"bytes"
	"path/filepath"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru"

	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
)

// BadgerBackend wraps a badger instance and keeps an ARC cache of committed
// values in front of it. The cache is purged of written keys on every
// commit, so readers opened afterwards see fresh values.
type BadgerBackend struct {
	log            tplog.Logger
	db             *badger.DB
	cache          *lru.ARCCache
	pendingTxCount int32
}

func NewBadgerBackend(log tplog.Logger, name string, path string, cacheSize int) *BadgerBackend {
	dbPath := filepath.Join(path, name+".db")
	opts := badger.DefaultOptions(dbPath)
	opts.SyncWrites = false
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		log.Panicf("Can't open badger %s: %v", dbPath, err)
	}

	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		log.Panicf("Can't create arc cache: %v", err)
	}

	return &BadgerBackend{
		log:   log,
		db:    db,
		cache: cache,
	}
}

func (b *BadgerBackend) Reader() tplgcmm.DBReader {
	atomic.AddInt32(&b.pendingTxCount, 1)

	return &badgerReader{
		backend: b,
		txn:     b.db.NewTransaction(false),
	}
}

func (b *BadgerBackend) ReadWriter() tplgcmm.DBReadWriter {
	atomic.AddInt32(&b.pendingTxCount, 1)

	return &badgerReadWriter{
		backend: b,
		txn:     b.db.NewTransaction(true),
	}
}

func (b *BadgerBackend) PendingTxCount() int32 {
	return atomic.LoadInt32(&b.pendingTxCount)
}

func (b *BadgerBackend) Close() error {
	b.cache.Purge()
	return b.db.Close()
}

func txnGet(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

type badgerIterator struct {
	txnIt   *badger.Iterator
	start   []byte
	end     []byte
	started bool
	lastErr error
}

func newBadgerIterator(txn *badger.Txn, start, end []byte) (*badgerIterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, tplgcmm.ErrKeyEmpty
	}

	opts := badger.DefaultIteratorOptions
	return &badgerIterator{
		txnIt: txn.NewIterator(opts),
		start: start,
		end:   end,
	}, nil
}

func (it *badgerIterator) Next() bool {
	if !it.started {
		if it.start == nil {
			it.txnIt.Rewind()
		} else {
			it.txnIt.Seek(it.start)
		}
		it.started = true
	} else {
		if !it.txnIt.Valid() {
			return false
		}
		it.txnIt.Next()
	}

	if !it.txnIt.Valid() {
		return false
	}
	if it.end != nil && bytes.Compare(it.txnIt.Item().Key(), it.end) >= 0 {
		return false
	}

	return true
}

func (it *badgerIterator) Key() []byte {
	return it.txnIt.Item().KeyCopy(nil)
}

func (it *badgerIterator) Value() []byte {
	val, err := it.txnIt.Item().ValueCopy(nil)
	if err != nil {
		it.lastErr = err
		return nil
	}
	return val
}

func (it *badgerIterator) Error() error {
	return it.lastErr
}

func (it *badgerIterator) Close() error {
	it.txnIt.Close()
	return nil
}

type badgerReader struct {
	backend *BadgerBackend
	txn     *badger.Txn
	closed  bool
}

func (r *badgerReader) Get(key []byte) ([]byte, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}

	if cached, ok := r.backend.cache.Get(string(key)); ok {
		return cached.([]byte), nil
	}

	val, err := txnGet(r.txn, key)
	if err == nil && val != nil {
		r.backend.cache.Add(string(key), val)
	}

	return val, err
}

func (r *badgerReader) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

func (r *badgerReader) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return newBadgerIterator(r.txn, start, end)
}

func (r *badgerReader) Discard() error {
	if !r.closed {
		r.closed = true
		r.txn.Discard()
		atomic.AddInt32(&r.backend.pendingTxCount, -1)
	}
	return nil
}

type badgerReadWriter struct {
	backend     *BadgerBackend
	txn         *badger.Txn
	writtenKeys [][]byte
	closed      bool
}

func (rw *badgerReadWriter) Get(key []byte) ([]byte, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}

	// The cache can't serve a transaction that reads its own writes.
	return txnGet(rw.txn, key)
}

func (rw *badgerReadWriter) Has(key []byte) (bool, error) {
	val, err := rw.Get(key)
	return val != nil, err
}

func (rw *badgerReadWriter) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return newBadgerIterator(rw.txn, start, end)
}

func (rw *badgerReadWriter) Set(key, value []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if err := tplgcmm.ValidateKv(key, value); err != nil {
		return err
	}

	err := rw.txn.Set(append([]byte(nil), key...), append([]byte(nil), value...))
	if err != nil {
		return err
	}
	rw.writtenKeys = append(rw.writtenKeys, append([]byte(nil), key...))

	return nil
}

func (rw *badgerReadWriter) Delete(key []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return tplgcmm.ErrKeyEmpty
	}

	err := rw.txn.Delete(append([]byte(nil), key...))
	if err != nil {
		return err
	}
	rw.writtenKeys = append(rw.writtenKeys, append([]byte(nil), key...))

	return nil
}

func (rw *badgerReadWriter) Commit() error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}

	err := rw.txn.Commit()
	if err == nil {
		for _, key := range rw.writtenKeys {
			rw.backend.cache.Remove(string(key))
		}
	}

	rw.closed = true
	rw.writtenKeys = nil
	atomic.AddInt32(&rw.backend.pendingTxCount, -1)

	return err
}

func (rw *badgerReadWriter) Discard() error {
	if !rw.closed {
		rw.closed = true
		rw.txn.Discard()
		rw.writtenKeys = nil
		atomic.AddInt32(&rw.backend.pendingTxCount, -1)
	}
	return nil
}
