package market

import (
	"context"
	"math/big"
	"sync"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
	"github.com/TopiaNetwork/tokenmarket/eventhub"
	"github.com/TopiaNetwork/tokenmarket/listing"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
	statereceipt "github.com/TopiaNetwork/tokenmarket/state/receipt"
)

// MarketHolderAddr is the account under which the market custodies the
// token balances deposited by creators for sale.
const MarketHolderAddr = tpcmm.Address("TPAMarketHolder")

// TokenMarket is the fixed-price token sale engine. Every write operation
// runs against a fresh pending market state: it commits in full on success
// and rolls back in full on any failure.
type TokenMarket interface {
	RegisterToken(ctx context.Context, token tpcmm.Address, price uint64, caller tpcmm.Address) error

	Buy(ctx context.Context, token tpcmm.Address, amount uint64, paidValue uint64, buyer tpcmm.Address) error

	Withdraw(ctx context.Context, token tpcmm.Address, amount uint64, caller tpcmm.Address) error

	Receive(ctx context.Context, from tpcmm.Address, value uint64) error

	GetBalance(token tpcmm.Address) (*big.Int, error)

	IsTokenSupported(token tpcmm.Address) bool

	GetTokenListing(token tpcmm.Address) (*listing.TokenListing, error)

	GetAllTokenIDs() ([]tpcmm.Address, error)

	GetAllTokenListings() ([]*listing.TokenListing, error)

	GetTokenListingsByCreator(creator tpcmm.Address) ([]*listing.TokenListing, error)
}

type tokenMarket struct {
	log     tplog.Logger
	servant MarketServant
	opSync  sync.Mutex
}

func NewTokenMarket(log tplog.Logger, servant MarketServant) TokenMarket {
	tmLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "TokenMarket", log)

	return &tokenMarket{
		log:     tmLog,
		servant: servant,
	}
}

// RegisterToken lists a token for sale at a fixed unit price. The asset's
// name and symbol are captured once here and never re-read. Re-registering
// an already-listed token overwrites its price, creator and metadata.
func (tm *tokenMarket) RegisterToken(ctx context.Context, token tpcmm.Address, price uint64, caller tpcmm.Address) error {
	tm.opSync.Lock()
	defer tm.opSync.Unlock()

	ms := tm.servant.CreateMarketState()

	tokenAsset, err := tm.servant.GetTokenAsset(ms, MarketHolderAddr, token)
	if err != nil {
		tm.log.Errorf("Can't resolve token asset %s: %v", token, err)
		ms.Rollback()
		return err
	}

	name, err := tokenAsset.Name()
	if err != nil {
		tm.log.Errorf("Can't read name of token asset %s: %v", token, err)
		ms.Rollback()
		return err
	}
	symbol, err := tokenAsset.Symbol()
	if err != nil {
		tm.log.Errorf("Can't read symbol of token asset %s: %v", token, err)
		ms.Rollback()
		return err
	}

	tl := &listing.TokenListing{
		Token:     token,
		Supported: true,
		Price:     price,
		Creator:   caller,
		Name:      name,
		Symbol:    symbol,
	}
	if err = ms.AddTokenListing(tl); err != nil {
		tm.log.Errorf("Can't add token listing %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if err = ms.AddReceipt(&statereceipt.Receipt{
		Op:    statereceipt.ReceiptOp_Register,
		Token: string(token),
		From:  string(caller),
		Value: new(big.Int).SetUint64(price),
	}); err != nil {
		tm.log.Errorf("Can't add register receipt of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if err = ms.Commit(); err != nil {
		tm.log.Errorf("Can't commit registration of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	tm.servant.Trig(ctx, eventhub.EventName_TokenListed, &eventhub.TokenListedEvent{
		Token:   token,
		Price:   price,
		Creator: caller,
		Name:    name,
		Symbol:  symbol,
	})

	tm.log.Infof("Registered token %s: price=%d, creator=%s", token, price, caller)

	return nil
}

// Buy exchanges exactly price*amount native currency for amount units of
// the token, scaled by the base-unit factor. Any failure after the payment
// has been forwarded discards the payment along with everything else.
func (tm *tokenMarket) Buy(ctx context.Context, token tpcmm.Address, amount uint64, paidValue uint64, buyer tpcmm.Address) error {
	tm.opSync.Lock()
	defer tm.opSync.Unlock()

	ms := tm.servant.CreateMarketState()

	if !ms.IsTokenListed(token) {
		ms.Rollback()
		return ErrNotSupported
	}
	tl, err := ms.GetTokenListing(token)
	if err != nil {
		tm.log.Errorf("Can't get token listing %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if amount == 0 {
		ms.Rollback()
		return ErrInvalidAmount
	}

	totalCost, err := tpcmm.SafeMulUint64(tl.Price, amount)
	if err != nil {
		ms.Rollback()
		return ErrArithmeticOverflow
	}

	if paidValue != totalCost {
		ms.Rollback()
		return ErrIncorrectPayment
	}

	if err = tm.servant.ForwardValue(ms, buyer, tl.Creator, new(big.Int).SetUint64(paidValue)); err != nil {
		tm.log.Errorf("Can't forward payment of token %s from %s to %s: %v", token, buyer, tl.Creator, err)
		ms.Rollback()
		return ErrPaymentForwardingFailed
	}

	tokenAsset, err := tm.servant.GetTokenAsset(ms, MarketHolderAddr, token)
	if err != nil {
		tm.log.Errorf("Can't resolve token asset %s: %v", token, err)
		ms.Rollback()
		return ErrTransferFailed
	}

	transferValue := tpcmm.SafeMul(amount, currency.BaseUnit)
	ok, err := tokenAsset.Transfer(buyer, transferValue)
	if err != nil || !ok {
		tm.log.Errorf("Token asset %s rejected transfer of %s to %s: %v", token, transferValue.String(), buyer, err)
		ms.Rollback()
		return ErrTransferFailed
	}

	if err = ms.AddReceipt(&statereceipt.Receipt{
		Op:     statereceipt.ReceiptOp_Buy,
		Token:  string(token),
		From:   string(buyer),
		To:     string(tl.Creator),
		Amount: amount,
		Value:  new(big.Int).SetUint64(paidValue),
	}); err != nil {
		tm.log.Errorf("Can't add purchase receipt of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if err = ms.Commit(); err != nil {
		tm.log.Errorf("Can't commit purchase of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	tm.servant.Trig(ctx, eventhub.EventName_TokenPurchased, &eventhub.TokenPurchasedEvent{
		Token:  token,
		Buyer:  buyer,
		Amount: amount,
		Cost:   paidValue,
		Value:  transferValue,
	})

	tm.log.Infof("Purchased token %s: buyer=%s, amount=%d, paid=%d", token, buyer, amount, paidValue)

	return nil
}

// Withdraw returns part of the market's held balance of a token to its
// creator. The amount is moved in raw units, unlike Buy which scales by
// the base-unit factor; callers must account for the difference.
// TODO: revisit the raw-unit withdrawal once downstream consumers can
// migrate to base-unit amounts.
func (tm *tokenMarket) Withdraw(ctx context.Context, token tpcmm.Address, amount uint64, caller tpcmm.Address) error {
	tm.opSync.Lock()
	defer tm.opSync.Unlock()

	ms := tm.servant.CreateMarketState()

	if !ms.IsTokenListed(token) {
		ms.Rollback()
		return ErrUnauthorized
	}
	tl, err := ms.GetTokenListing(token)
	if err != nil {
		tm.log.Errorf("Can't get token listing %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if caller != tl.Creator {
		ms.Rollback()
		return ErrUnauthorized
	}

	if !tl.Supported {
		ms.Rollback()
		return ErrNotSupported
	}

	if amount == 0 {
		ms.Rollback()
		return ErrInvalidAmount
	}

	tokenAsset, err := tm.servant.GetTokenAsset(ms, MarketHolderAddr, token)
	if err != nil {
		tm.log.Errorf("Can't resolve token asset %s: %v", token, err)
		ms.Rollback()
		return ErrTransferFailed
	}

	heldBalance, err := tokenAsset.BalanceOf(MarketHolderAddr)
	if err != nil {
		tm.log.Errorf("Can't read held balance of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	amountVal := new(big.Int).SetUint64(amount)
	if heldBalance.Cmp(amountVal) < 0 {
		ms.Rollback()
		return ErrInsufficientBalance
	}

	ok, err := tokenAsset.Transfer(caller, amountVal)
	if err != nil || !ok {
		tm.log.Errorf("Token asset %s rejected withdrawal of %d to %s: %v", token, amount, caller, err)
		ms.Rollback()
		return ErrTransferFailed
	}

	if err = ms.AddReceipt(&statereceipt.Receipt{
		Op:     statereceipt.ReceiptOp_Withdraw,
		Token:  string(token),
		To:     string(caller),
		Amount: amount,
		Value:  amountVal,
	}); err != nil {
		tm.log.Errorf("Can't add withdrawal receipt of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	if err = ms.Commit(); err != nil {
		tm.log.Errorf("Can't commit withdrawal of token %s: %v", token, err)
		ms.Rollback()
		return err
	}

	tm.servant.Trig(ctx, eventhub.EventName_TokenWithdrawn, &eventhub.TokenWithdrawnEvent{
		Token:   token,
		Creator: caller,
		Amount:  amount,
	})

	tm.log.Infof("Withdrew token %s: creator=%s, amount=%d", token, caller, amount)

	return nil
}

// Receive rejects any native currency sent outside of a purchase.
func (tm *tokenMarket) Receive(ctx context.Context, from tpcmm.Address, value uint64) error {
	tm.log.Warnf("Rejected direct payment: from=%s, value=%d", from, value)

	return ErrDirectPaymentRejected
}

func (tm *tokenMarket) GetBalance(token tpcmm.Address) (*big.Int, error) {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	tokenAsset, err := tm.servant.GetTokenAsset(ms, MarketHolderAddr, token)
	if err != nil {
		return nil, err
	}

	return tokenAsset.BalanceOf(MarketHolderAddr)
}

func (tm *tokenMarket) IsTokenSupported(token tpcmm.Address) bool {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	return ms.IsTokenListed(token)
}

func (tm *tokenMarket) GetTokenListing(token tpcmm.Address) (*listing.TokenListing, error) {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	if !ms.IsTokenListed(token) {
		return nil, ErrNotSupported
	}

	return ms.GetTokenListing(token)
}

func (tm *tokenMarket) GetAllTokenIDs() ([]tpcmm.Address, error) {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	return ms.GetAllTokenIDs()
}

func (tm *tokenMarket) GetAllTokenListings() ([]*listing.TokenListing, error) {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	return ms.GetAllTokenListings()
}

func (tm *tokenMarket) GetTokenListingsByCreator(creator tpcmm.Address) ([]*listing.TokenListing, error) {
	ms := tm.servant.CreateMarketStateReadonly()
	defer ms.Stop()

	return ms.GetTokenListingsByCreator(creator)
}
