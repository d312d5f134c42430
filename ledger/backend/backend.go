package backend

import (
	"github.com/TopiaNetwork/tokenmarket/ledger/backend/badger"
	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend/leveldb"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend/memdb"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

type BackendType int

const (
	BackendType_Unknown BackendType = iota
	BackendType_Leveldb
	BackendType_Badger
	BackendType_Memdb
)

const (
	DefaultCacheSize = 8192
)

type Backend interface {
	// Reader opens a read-only view of the committed state.
	Reader() tplgcmm.DBReader

	// ReadWriter opens a read-write transaction; its writes become visible
	// to subsequent readers only after Commit.
	ReadWriter() tplgcmm.DBReadWriter

	//PendingTxCount return pending transaction count
	PendingTxCount() int32

	// Close closes the database connection.
	Close() error
}

func NewBackend(backendType BackendType, log tplog.Logger, path string, name string) Backend {
	bLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "LedgerBackend", log)

	switch backendType {
	case BackendType_Leveldb:
		return leveldb.NewLeveldbBackend(bLog, name, path, DefaultCacheSize)
	case BackendType_Badger:
		return badger.NewBadgerBackend(bLog, name, path, DefaultCacheSize)
	case BackendType_Memdb:
		return memdb.NewMemDBBackend(bLog, name)
	default:
		bLog.Panicf("Invalid backend type %d", backendType)
	}

	return nil
}
