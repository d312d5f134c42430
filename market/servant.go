package market

import (
	"context"
	"math/big"

	"github.com/TopiaNetwork/tokenmarket/asset"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
	"github.com/TopiaNetwork/tokenmarket/eventhub"
	"github.com/TopiaNetwork/tokenmarket/ledger"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
	tpstate "github.com/TopiaNetwork/tokenmarket/state"
)

// MarketServant bundles everything the market engine needs from the rest of
// the system: state store creation over the ledger, asset resolution and
// event emission.
type MarketServant interface {
	CreateMarketState() tpstate.MarketState

	CreateMarketStateReadonly() tpstate.MarketState

	GetTokenAsset(state asset.StateView, holder tpcmm.Address, addr tpcmm.Address) (asset.TokenAsset, error)

	DeployTokenAsset(state asset.StateView, issuer tpcmm.Address, addr tpcmm.Address, name string, symbol string, totalSupply *big.Int) (asset.TokenAsset, error)

	ForwardValue(state tpstate.MarketState, from tpcmm.Address, to tpcmm.Address, value *big.Int) error

	Trig(ctx context.Context, name string, data interface{}) error
}

type marketServant struct {
	log           tplog.Logger
	ledger        ledger.Ledger
	assetProvider asset.Provider
	evHub         eventhub.EventHub
}

func NewMarketServant(log tplog.Logger, ledger ledger.Ledger, assetProvider asset.Provider, evHub eventhub.EventHub) MarketServant {
	svLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "MarketServant", log)

	return &marketServant{
		log:           svLog,
		ledger:        ledger,
		assetProvider: assetProvider,
		evHub:         evHub,
	}
}

func (sv *marketServant) CreateMarketState() tpstate.MarketState {
	return tpstate.CreateMarketState(sv.log, sv.ledger)
}

func (sv *marketServant) CreateMarketStateReadonly() tpstate.MarketState {
	return tpstate.CreateMarketStateReadonly(sv.log, sv.ledger)
}

func (sv *marketServant) GetTokenAsset(state asset.StateView, holder tpcmm.Address, addr tpcmm.Address) (asset.TokenAsset, error) {
	return sv.assetProvider.GetTokenAsset(state, holder, addr)
}

func (sv *marketServant) DeployTokenAsset(state asset.StateView, issuer tpcmm.Address, addr tpcmm.Address, name string, symbol string, totalSupply *big.Int) (asset.TokenAsset, error) {
	return sv.assetProvider.Deploy(state, issuer, addr, name, symbol, totalSupply)
}

// ForwardValue moves native currency between accounts inside the pending
// market state, so it rolls back with the rest of the operation.
func (sv *marketServant) ForwardValue(state tpstate.MarketState, from tpcmm.Address, to tpcmm.Address, value *big.Int) error {
	if err := state.SubBalance(from, currency.TokenSymbol_Native, value); err != nil {
		return err
	}

	return state.AddBalance(to, currency.TokenSymbol_Native, value)
}

func (sv *marketServant) Trig(ctx context.Context, name string, data interface{}) error {
	if sv.evHub == nil {
		return nil
	}

	return sv.evHub.Trig(ctx, name, data)
}
