package receipt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

func newTestReceiptState(t *testing.T) ReceiptState {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	backendDB := backend.NewBackend(backend.BackendType_Memdb, log, t.TempDir(), "test")
	stateStore := tplgss.NewStateStore(log, backendDB, tplgss.Flag_ReadOnly|tplgss.Flag_WriteOnly)

	return NewReceiptState(stateStore, 16)
}

func TestReceiptSeqAssignment(t *testing.T) {
	rs := newTestReceiptState(t)

	seq, err := rs.LatestReceiptSeq()
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(0), seq)

	err = rs.AddReceipt(&Receipt{
		Op:    ReceiptOp_Register,
		Token: "tokenA",
		From:  "creatorX",
		Value: big.NewInt(100),
	})
	assert.Equal(t, nil, err)

	err = rs.AddReceipt(&Receipt{
		Op:     ReceiptOp_Buy,
		Token:  "tokenA",
		From:   "buyerY",
		To:     "creatorX",
		Amount: 3,
		Value:  big.NewInt(300),
	})
	assert.Equal(t, nil, err)

	seq, _ = rs.LatestReceiptSeq()
	assert.Equal(t, uint64(2), seq)

	r0, err := rs.GetReceipt(0)
	assert.Equal(t, nil, err)
	assert.Equal(t, ReceiptOp_Register, r0.Op)
	assert.Equal(t, "tokenA", r0.Token)
	assert.Equal(t, int64(100), r0.Value.Int64())
	assert.NotEqual(t, uint64(0), r0.Time)

	r1, err := rs.GetReceipt(1)
	assert.Equal(t, nil, err)
	assert.Equal(t, ReceiptOp_Buy, r1.Op)
	assert.Equal(t, uint64(3), r1.Amount)
	assert.Equal(t, "buyerY", r1.From)

	_, err = rs.GetReceipt(2)
	assert.NotEqual(t, nil, err)

	all, err := rs.GetAllReceipts()
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(all))
	assert.Equal(t, uint64(0), all[0].Seq)
	assert.Equal(t, uint64(1), all[1].Seq)
}
