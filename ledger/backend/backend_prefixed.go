package backend

import (
	"bytes"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
)

func prefixed(prefix, key []byte) []byte {
	return append(tpcmm.BytesCopy(prefix), key...)
}

// endIter returns the lowest key strictly greater than every key carrying
// bz as prefix, or nil when bz is all 0xFF.
func endIter(bz []byte) (ret []byte) {
	if len(bz) == 0 {
		panic("endIter expects non-zero bz length")
	}
	ret = tpcmm.BytesCopy(bz)
	for i := len(bz) - 1; i >= 0; i-- {
		if ret[i] < byte(0xFF) {
			ret[i]++
			return
		}
		ret[i] = byte(0x00)
		if i == 0 {
			// Overflow
			return nil
		}
	}
	return nil
}

type prefixIterator struct {
	prefix []byte
	source tplgcmm.Iterator
	err    error
}

func (itr *prefixIterator) Next() bool {
	if itr.err != nil {
		return false
	}
	return itr.source.Next()
}

func (itr *prefixIterator) Key() []byte {
	key := itr.source.Key()
	if len(key) < len(itr.prefix) || !bytes.HasPrefix(key, itr.prefix) {
		itr.err = tplgcmm.ErrKeyEmpty
		return nil
	}
	return key[len(itr.prefix):]
}

func (itr *prefixIterator) Value() []byte {
	return itr.source.Value()
}

func (itr *prefixIterator) Error() error {
	if err := itr.source.Error(); err != nil {
		return err
	}
	return itr.err
}

func (itr *prefixIterator) Close() error {
	return itr.source.Close()
}

func prefixedRange(prefix, start, end []byte) ([]byte, []byte) {
	pStart := prefixed(prefix, start)
	var pEnd []byte
	if end == nil {
		pEnd = endIter(prefix)
	} else {
		pEnd = prefixed(prefix, end)
	}
	return pStart, pEnd
}

type prefixReader struct {
	prefix []byte
	source tplgcmm.DBReader
}

// NewReaderPrefixed scopes every key of the given reader under prefix.
func NewReaderPrefixed(prefix []byte, source tplgcmm.DBReader) tplgcmm.DBReader {
	return &prefixReader{
		prefix: prefix,
		source: source,
	}
}

func (r *prefixReader) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}
	return r.source.Get(prefixed(r.prefix, key))
}

func (r *prefixReader) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, tplgcmm.ErrKeyEmpty
	}
	return r.source.Has(prefixed(r.prefix, key))
}

func (r *prefixReader) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	pStart, pEnd := prefixedRange(r.prefix, start, end)
	srcIt, err := r.source.Iterator(pStart, pEnd)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{
		prefix: r.prefix,
		source: srcIt,
	}, nil
}

func (r *prefixReader) Discard() error {
	// The underlying view is shared with other prefixed scopes; its owner
	// discards it.
	return nil
}

type prefixReadWriter struct {
	prefix []byte
	source tplgcmm.DBReadWriter
}

// NewReadWriterPrefixed scopes every key of the given transaction under
// prefix. Commit and Discard stay with the transaction's owner.
func NewReadWriterPrefixed(prefix []byte, source tplgcmm.DBReadWriter) tplgcmm.DBReadWriter {
	return &prefixReadWriter{
		prefix: prefix,
		source: source,
	}
}

func (rw *prefixReadWriter) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, tplgcmm.ErrKeyEmpty
	}
	return rw.source.Get(prefixed(rw.prefix, key))
}

func (rw *prefixReadWriter) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, tplgcmm.ErrKeyEmpty
	}
	return rw.source.Has(prefixed(rw.prefix, key))
}

func (rw *prefixReadWriter) Iterator(start, end []byte) (tplgcmm.Iterator, error) {
	pStart, pEnd := prefixedRange(rw.prefix, start, end)
	srcIt, err := rw.source.Iterator(pStart, pEnd)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{
		prefix: rw.prefix,
		source: srcIt,
	}, nil
}

func (rw *prefixReadWriter) Set(key, value []byte) error {
	if err := tplgcmm.ValidateKv(key, value); err != nil {
		return err
	}
	return rw.source.Set(prefixed(rw.prefix, key), value)
}

func (rw *prefixReadWriter) Delete(key []byte) error {
	if len(key) == 0 {
		return tplgcmm.ErrKeyEmpty
	}
	return rw.source.Delete(prefixed(rw.prefix, key))
}

func (rw *prefixReadWriter) Commit() error {
	return rw.source.Commit()
}

func (rw *prefixReadWriter) Discard() error {
	return nil
}
