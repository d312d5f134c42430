package asset_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TopiaNetwork/tokenmarket/asset"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/ledger"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
	tpstate "github.com/TopiaNetwork/tokenmarket/state"
)

var (
	issuer    = tpcmm.Address("issuer")
	holder2   = tpcmm.Address("holder2")
	assetAddr = tpcmm.Address("tokenA")
)

func newTestState(t *testing.T) (asset.Provider, tpstate.MarketState) {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	mLedger := ledger.NewLedger(t.TempDir(), "test", log, backend.BackendType_Memdb)
	provider := asset.NewLedgerProvider(log)
	ms := tpstate.CreateMarketState(log, mLedger)

	return provider, ms
}

func TestDeployMintsToIssuer(t *testing.T) {
	provider, ms := newTestState(t)

	ta, err := provider.Deploy(ms, issuer, assetAddr, "Token A", "TKA", big.NewInt(1000))
	assert.Equal(t, nil, err)

	name, err := ta.Name()
	assert.Equal(t, nil, err)
	assert.Equal(t, "Token A", name)

	symbol, err := ta.Symbol()
	assert.Equal(t, nil, err)
	assert.Equal(t, "TKA", symbol)

	bal, err := ta.BalanceOf(issuer)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1000), bal.Int64())

	// Double deploy at the same address is rejected.
	_, err = provider.Deploy(ms, issuer, assetAddr, "Token A2", "TK2", big.NewInt(1))
	assert.NotEqual(t, nil, err)

	ms.Rollback()
}

func TestTransferMovesBalance(t *testing.T) {
	provider, ms := newTestState(t)

	ta, err := provider.Deploy(ms, issuer, assetAddr, "Token A", "TKA", big.NewInt(1000))
	assert.Equal(t, nil, err)

	ok, err := ta.Transfer(holder2, big.NewInt(400))
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)

	balIssuer, _ := ta.BalanceOf(issuer)
	balHolder2, _ := ta.BalanceOf(holder2)
	assert.Equal(t, int64(600), balIssuer.Int64())
	assert.Equal(t, int64(400), balHolder2.Int64())

	// Over-transfer is rejected and moves nothing.
	ok, err = ta.Transfer(holder2, big.NewInt(601))
	assert.NotEqual(t, nil, err)
	assert.Equal(t, false, ok)

	balIssuer, _ = ta.BalanceOf(issuer)
	assert.Equal(t, int64(600), balIssuer.Int64())

	ms.Rollback()
}

func TestGetTokenAssetUnknown(t *testing.T) {
	provider, ms := newTestState(t)

	_, err := provider.GetTokenAsset(ms, issuer, tpcmm.Address("nothing"))
	assert.NotEqual(t, nil, err)

	ms.Rollback()
}
