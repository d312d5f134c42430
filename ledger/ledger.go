package ledger

import (
	"path/filepath"

	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

type LedgerID string

// Ledger owns the backend database and hands out state stores over it.
// A read-write store is one pending transaction; a readonly store is a
// snapshot of the committed state.
type Ledger interface {
	ID() LedgerID

	CreateStateStore() tplgss.StateStore

	CreateStateStoreReadonly() tplgss.StateStore

	PendingStateStore() int32

	Close() error
}

type ledger struct {
	id        LedgerID
	log       tplog.Logger
	backendDB backend.Backend
}

func NewLedger(rootPath string, id LedgerID, log tplog.Logger, backendType backend.BackendType) Ledger {
	ledgerLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "Ledger", log)

	ledgerPath := filepath.Join(rootPath, "ledger", string(id))
	backendDB := backend.NewBackend(backendType, ledgerLog, ledgerPath, string(id))

	return &ledger{
		id:        id,
		log:       ledgerLog,
		backendDB: backendDB,
	}
}

func (l *ledger) ID() LedgerID {
	return l.id
}

func (l *ledger) CreateStateStore() tplgss.StateStore {
	return tplgss.NewStateStore(l.log, l.backendDB, tplgss.Flag_ReadOnly|tplgss.Flag_WriteOnly)
}

func (l *ledger) CreateStateStoreReadonly() tplgss.StateStore {
	return tplgss.NewStateStore(l.log, l.backendDB, tplgss.Flag_ReadOnly)
}

func (l *ledger) PendingStateStore() int32 {
	return l.backendDB.PendingTxCount()
}

func (l *ledger) Close() error {
	return l.backendDB.Close()
}
