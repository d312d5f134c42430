package memdb

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/google/btree"

	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
)

const bTreeDegree = 32

type item struct {
	key   []byte
	value []byte
}

func (i *item) Less(other btree.Item) bool {
	return bytes.Compare(i.key, other.(*item).key) == -1
}

func newKey(key []byte) *item {
	return &item{key: key}
}

func newPair(key, value []byte) *item {
	return &item{key: key, value: value}
}

// MemDBBackend holds the whole key space in an in-memory btree. Readers pin
// a copy-on-write clone of the committed tree; read-write transactions work
// on a private clone and replay their writes on Commit.
type MemDBBackend struct {
	log            tplog.Logger
	name           string
	mtx            sync.RWMutex
	btree          *btree.BTree
	pendingTxCount int32
}

func NewMemDBBackend(log tplog.Logger, name string) *MemDBBackend {
	return &MemDBBackend{
		log:   log,
		name:  name,
		btree: btree.New(bTreeDegree),
	}
}

func (m *MemDBBackend) Reader() tplgcmm.DBReader {
	m.mtx.RLock()
	tree := m.btree.Clone()
	m.mtx.RUnlock()

	atomic.AddInt32(&m.pendingTxCount, 1)

	return &memDBReader{
		backend: m,
		tree:    tree,
	}
}

func (m *MemDBBackend) ReadWriter() tplgcmm.DBReadWriter {
	m.mtx.RLock()
	tree := m.btree.Clone()
	m.mtx.RUnlock()

	atomic.AddInt32(&m.pendingTxCount, 1)

	return &memDBReadWriter{
		backend: m,
		tree:    tree,
	}
}

func (m *MemDBBackend) PendingTxCount() int32 {
	return atomic.LoadInt32(&m.pendingTxCount)
}

func (m *MemDBBackend) Close() error {
	return nil
}

func treeGet(tree *btree.BTree, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}
	got := tree.Get(newKey(key))
	if got == nil {
		return nil, nil
	}
	return got.(*item).value, nil
}

func treeIterator(tree *btree.BTree, start, end []byte) (tplgcmm.Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, tplgcmm.ErrKeyEmpty
	}

	var items []*item
	visit := func(i btree.Item) bool {
		items = append(items, i.(*item))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(visit)
	case start == nil:
		tree.AscendLessThan(newKey(end), visit)
	case end == nil:
		tree.AscendGreaterOrEqual(newKey(start), visit)
	default:
		tree.AscendRange(newKey(start), newKey(end), visit)
	}

	return &memDBIterator{items: items, pos: -1}, nil
}

type memDBIterator struct {
	items []*item
	pos   int
}

func (it *memDBIterator) Next() bool {
	it.pos++
	return it.pos < len(it.items)
}

func (it *memDBIterator) Key() []byte {
	return it.items[it.pos].key
}

func (it *memDBIterator) Value() []byte {
	return it.items[it.pos].value
}

func (it *memDBIterator) Error() error {
	return nil
}

func (it *memDBIterator) Close() error {
	it.items = nil
	return nil
}

type memDBReader struct {
	backend *MemDBBackend
	tree    *btree.BTree
	closed  bool
}

func (r *memDBReader) Get(key []byte) ([]byte, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return treeGet(r.tree, key)
}

func (r *memDBReader) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

func (r *memDBReader) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if r.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return treeIterator(r.tree, start, end)
}

func (r *memDBReader) Discard() error {
	if !r.closed {
		r.closed = true
		r.tree = nil
		atomic.AddInt32(&r.backend.pendingTxCount, -1)
	}
	return nil
}

type dbOp struct {
	delete bool
	key    []byte
	value  []byte
}

type memDBReadWriter struct {
	backend *MemDBBackend
	tree    *btree.BTree
	ops     []dbOp
	closed  bool
}

func (rw *memDBReadWriter) Get(key []byte) ([]byte, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return treeGet(rw.tree, key)
}

func (rw *memDBReadWriter) Has(key []byte) (bool, error) {
	val, err := rw.Get(key)
	return val != nil, err
}

func (rw *memDBReadWriter) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	if rw.closed {
		return nil, tplgcmm.ErrTransactionClosed
	}
	return treeIterator(rw.tree, start, end)
}

func (rw *memDBReadWriter) Set(key, value []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if err := tplgcmm.ValidateKv(key, value); err != nil {
		return err
	}

	keyC := append([]byte(nil), key...)
	valC := append([]byte(nil), value...)
	rw.tree.ReplaceOrInsert(newPair(keyC, valC))
	rw.ops = append(rw.ops, dbOp{key: keyC, value: valC})

	return nil
}

func (rw *memDBReadWriter) Delete(key []byte) error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}
	if len(key) == 0 {
		return tplgcmm.ErrKeyEmpty
	}

	keyC := append([]byte(nil), key...)
	rw.tree.Delete(newKey(keyC))
	rw.ops = append(rw.ops, dbOp{delete: true, key: keyC})

	return nil
}

func (rw *memDBReadWriter) Commit() error {
	if rw.closed {
		return tplgcmm.ErrTransactionClosed
	}

	rw.backend.mtx.Lock()
	for _, op := range rw.ops {
		if op.delete {
			rw.backend.btree.Delete(newKey(op.key))
		} else {
			rw.backend.btree.ReplaceOrInsert(newPair(op.key, op.value))
		}
	}
	rw.backend.mtx.Unlock()

	rw.closed = true
	rw.tree = nil
	rw.ops = nil
	atomic.AddInt32(&rw.backend.pendingTxCount, -1)

	return nil
}

func (rw *memDBReadWriter) Discard() error {
	if !rw.closed {
		rw.closed = true
		rw.tree = nil
		rw.ops = nil
		atomic.AddInt32(&rw.backend.pendingTxCount, -1)
	}
	return nil
}
