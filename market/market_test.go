package market

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TopiaNetwork/tokenmarket/asset"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
	"github.com/TopiaNetwork/tokenmarket/ledger"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

var (
	tokenA   = tpcmm.Address("tokenA")
	creatorX = tpcmm.Address("creatorX")
	buyerY   = tpcmm.Address("buyerY")
)

func baseUnits(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).SetUint64(currency.BaseUnit))
}

func newTestMarket(t *testing.T) (TokenMarket, MarketServant) {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	mLedger := ledger.NewLedger(t.TempDir(), "test", log, backend.BackendType_Memdb)
	assetProvider := asset.NewLedgerProvider(log)
	servant := NewMarketServant(log, mLedger, assetProvider, nil)
	tm := NewTokenMarket(log, servant)

	return tm, servant
}

// seedMarket deploys tokenA issued to creatorX, moves marketDeposit of it
// into the market's custody account and credits buyerY with native funds.
func seedMarket(t *testing.T, servant MarketServant, marketDeposit *big.Int, buyerFunds int64) {
	ms := servant.CreateMarketState()

	err := ms.AddBalance(buyerY, currency.TokenSymbol_Native, big.NewInt(buyerFunds))
	assert.Equal(t, nil, err)

	_, err = servant.DeployTokenAsset(ms, creatorX, tokenA, "Token A", "TKA", baseUnits(10))
	assert.Equal(t, nil, err)

	if marketDeposit != nil && marketDeposit.Sign() > 0 {
		creatorAsset, err := servant.GetTokenAsset(ms, creatorX, tokenA)
		assert.Equal(t, nil, err)
		ok, err := creatorAsset.Transfer(MarketHolderAddr, marketDeposit)
		assert.Equal(t, nil, err)
		assert.Equal(t, true, ok)
	}

	err = ms.Commit()
	assert.Equal(t, nil, err)
}

func nativeBalance(servant MarketServant, addr tpcmm.Address) *big.Int {
	ms := servant.CreateMarketStateReadonly()
	defer ms.Stop()

	bal, _ := ms.GetBalance(addr, currency.TokenSymbol_Native)
	return bal
}

func assetBalance(servant MarketServant, token tpcmm.Address, addr tpcmm.Address) *big.Int {
	ms := servant.CreateMarketStateReadonly()
	defer ms.Stop()

	bal, _ := ms.GetBalance(addr, asset.BalanceSymbol(token))
	return bal
}

func TestRegisterToken(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 0)

	assert.Equal(t, false, tm.IsTokenSupported(tokenA))

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	assert.Equal(t, true, tm.IsTokenSupported(tokenA))

	tl, err := tm.GetTokenListing(tokenA)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(100), tl.Price)
	assert.Equal(t, creatorX, tl.Creator)
	assert.Equal(t, true, tl.Supported)
	assert.Equal(t, "Token A", tl.Name)
	assert.Equal(t, "TKA", tl.Symbol)
}

func TestRegisterUnknownAsset(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, nil, 0)

	err := tm.RegisterToken(context.Background(), tpcmm.Address("tokenB"), 100, creatorX)
	assert.NotEqual(t, nil, err)
	assert.Equal(t, false, tm.IsTokenSupported(tpcmm.Address("tokenB")))
}

func TestReRegisterOverwritesAndKeepsDuplicateEntry(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, nil, 0)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)
	err = tm.RegisterToken(context.Background(), tokenA, 250, buyerY)
	assert.Equal(t, nil, err)

	tl, err := tm.GetTokenListing(tokenA)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(250), tl.Price)
	assert.Equal(t, buyerY, tl.Creator)

	tokenIDs, err := tm.GetAllTokenIDs()
	assert.Equal(t, nil, err)
	assert.Equal(t, []tpcmm.Address{tokenA, tokenA}, tokenIDs)
}

func TestBuyExactPayment(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 1000)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	creatorNativeBefore := nativeBalance(servant, creatorX)
	buyerNativeBefore := nativeBalance(servant, buyerY)

	err = tm.Buy(context.Background(), tokenA, 3, 300, buyerY)
	assert.Equal(t, nil, err)

	creatorNativeAfter := nativeBalance(servant, creatorX)
	buyerNativeAfter := nativeBalance(servant, buyerY)

	assert.Equal(t, int64(300), new(big.Int).Sub(creatorNativeAfter, creatorNativeBefore).Int64())
	assert.Equal(t, int64(-300), new(big.Int).Sub(buyerNativeAfter, buyerNativeBefore).Int64())

	// The buyer receives the amount scaled by the base-unit factor.
	assert.Equal(t, 0, assetBalance(servant, tokenA, buyerY).Cmp(baseUnits(3)))
	assert.Equal(t, 0, assetBalance(servant, tokenA, MarketHolderAddr).Cmp(baseUnits(2)))

	held, err := tm.GetBalance(tokenA)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, held.Cmp(baseUnits(2)))
}

func TestBuyZeroPriceToken(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 0)

	err := tm.RegisterToken(context.Background(), tokenA, 0, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Buy(context.Background(), tokenA, 2, 0, buyerY)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, assetBalance(servant, tokenA, buyerY).Cmp(baseUnits(2)))
}

func TestBuyIncorrectPayment(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 1000)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Buy(context.Background(), tokenA, 3, 299, buyerY)
	assert.Equal(t, ErrIncorrectPayment, err)
	err = tm.Buy(context.Background(), tokenA, 3, 301, buyerY)
	assert.Equal(t, ErrIncorrectPayment, err)

	assert.Equal(t, int64(1000), nativeBalance(servant, buyerY).Int64())
	assert.Equal(t, int64(0), nativeBalance(servant, creatorX).Int64())
	assert.Equal(t, 0, assetBalance(servant, tokenA, buyerY).Sign())
}

func TestBuyInvalidAmount(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 1000)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Buy(context.Background(), tokenA, 0, 0, buyerY)
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestBuyUnsupportedToken(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, nil, 1000)

	err := tm.Buy(context.Background(), tokenA, 1, 100, buyerY)
	assert.Equal(t, ErrNotSupported, err)
}

func TestBuyCostOverflow(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 1000)

	err := tm.RegisterToken(context.Background(), tokenA, math.MaxUint64/2+1, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Buy(context.Background(), tokenA, 2, 0, buyerY)
	assert.Equal(t, ErrArithmeticOverflow, err)

	assert.Equal(t, int64(1000), nativeBalance(servant, buyerY).Int64())
	assert.Equal(t, 0, assetBalance(servant, tokenA, buyerY).Sign())
}

func TestBuyPaymentForwardingFailed(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, baseUnits(5), 100)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	// Exact cost 200, buyer only holds 100.
	err = tm.Buy(context.Background(), tokenA, 2, 200, buyerY)
	assert.Equal(t, ErrPaymentForwardingFailed, err)

	assert.Equal(t, int64(100), nativeBalance(servant, buyerY).Int64())
	assert.Equal(t, int64(0), nativeBalance(servant, creatorX).Int64())
}

// The payment is forwarded before the token transfer; when the transfer
// then fails, the already-forwarded payment must be discarded with the
// rest of the operation.
func TestBuyTransferFailureRollsBackPayment(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, big.NewInt(1), 1000) // market holds almost nothing

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Buy(context.Background(), tokenA, 1, 100, buyerY)
	assert.Equal(t, ErrTransferFailed, err)

	assert.Equal(t, int64(1000), nativeBalance(servant, buyerY).Int64())
	assert.Equal(t, int64(0), nativeBalance(servant, creatorX).Int64())
	assert.Equal(t, 0, assetBalance(servant, tokenA, buyerY).Sign())
	assert.Equal(t, int64(1), assetBalance(servant, tokenA, MarketHolderAddr).Int64())
}

// Withdrawals move raw units while purchases move base units; the numbers
// below pin that asymmetry down.
func TestWithdrawMovesRawUnits(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, big.NewInt(40), 0)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	creatorAssetBefore := assetBalance(servant, tokenA, creatorX)

	err = tm.Withdraw(context.Background(), tokenA, 30, creatorX)
	assert.Equal(t, nil, err)

	creatorAssetAfter := assetBalance(servant, tokenA, creatorX)
	assert.Equal(t, int64(30), new(big.Int).Sub(creatorAssetAfter, creatorAssetBefore).Int64())
	assert.Equal(t, int64(10), assetBalance(servant, tokenA, MarketHolderAddr).Int64())
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, big.NewInt(40), 0)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Withdraw(context.Background(), tokenA, 50, creatorX)
	assert.Equal(t, ErrInsufficientBalance, err)

	assert.Equal(t, int64(40), assetBalance(servant, tokenA, MarketHolderAddr).Int64())
}

func TestWithdrawUnauthorized(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, big.NewInt(40), 0)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Withdraw(context.Background(), tokenA, 10, buyerY)
	assert.Equal(t, ErrUnauthorized, err)

	// Unknown token: there is no creator to match, so the caller can't be it.
	err = tm.Withdraw(context.Background(), tpcmm.Address("tokenB"), 10, creatorX)
	assert.Equal(t, ErrUnauthorized, err)

	assert.Equal(t, int64(40), assetBalance(servant, tokenA, MarketHolderAddr).Int64())
}

func TestWithdrawInvalidAmount(t *testing.T) {
	tm, servant := newTestMarket(t)
	seedMarket(t, servant, big.NewInt(40), 0)

	err := tm.RegisterToken(context.Background(), tokenA, 100, creatorX)
	assert.Equal(t, nil, err)

	err = tm.Withdraw(context.Background(), tokenA, 0, creatorX)
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestReceiveAlwaysRejected(t *testing.T) {
	tm, _ := newTestMarket(t)

	err := tm.Receive(context.Background(), buyerY, 100)
	assert.Equal(t, ErrDirectPaymentRejected, err)
	err = tm.Receive(context.Background(), creatorX, 0)
	assert.Equal(t, ErrDirectPaymentRejected, err)
}

func TestListingsByCreator(t *testing.T) {
	tm, servant := newTestMarket(t)

	ms := servant.CreateMarketState()
	_, err := servant.DeployTokenAsset(ms, creatorX, tokenA, "Token A", "TKA", baseUnits(10))
	assert.Equal(t, nil, err)
	_, err = servant.DeployTokenAsset(ms, creatorX, tpcmm.Address("tokenB"), "Token B", "TKB", baseUnits(10))
	assert.Equal(t, nil, err)
	_, err = servant.DeployTokenAsset(ms, buyerY, tpcmm.Address("tokenC"), "Token C", "TKC", baseUnits(10))
	assert.Equal(t, nil, err)
	err = ms.Commit()
	assert.Equal(t, nil, err)

	tm.RegisterToken(context.Background(), tokenA, 1, creatorX)
	tm.RegisterToken(context.Background(), tpcmm.Address("tokenC"), 2, buyerY)
	tm.RegisterToken(context.Background(), tpcmm.Address("tokenB"), 3, creatorX)

	byX, err := tm.GetTokenListingsByCreator(creatorX)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(byX))
	assert.Equal(t, tokenA, byX[0].Token)
	assert.Equal(t, tpcmm.Address("tokenB"), byX[1].Token)

	all, err := tm.GetAllTokenListings()
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(all))
	assert.Equal(t, tokenA, all[0].Token)
	assert.Equal(t, tpcmm.Address("tokenC"), all[1].Token)
	assert.Equal(t, tpcmm.Address("tokenB"), all[2].Token)
}
