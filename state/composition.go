package state

import (
	"github.com/hashicorp/go-multierror"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/ledger"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
	stateaccount "github.com/TopiaNetwork/tokenmarket/state/account"
	stateasset "github.com/TopiaNetwork/tokenmarket/state/asset"
	statelisting "github.com/TopiaNetwork/tokenmarket/state/listing"
	statereceipt "github.com/TopiaNetwork/tokenmarket/state/receipt"
)

const (
	cacheSize_Listing = 256
	cacheSize_Account = 512
	cacheSize_Asset   = 256
	cacheSize_Receipt = 256
)

// MarketState composes the listing, account, asset and receipt states over
// one pending backend transaction. All writes land together on Commit;
// Rollback drops every one of them.
type MarketState interface {
	statelisting.ListingState

	stateaccount.AccountState

	stateasset.AssetState

	statereceipt.ReceiptState

	StateRoot() ([]byte, error)

	Commit() error

	Rollback() error

	Stop() error
}

type marketState struct {
	tplog.Logger
	statelisting.ListingState
	stateaccount.AccountState
	stateasset.AssetState
	statereceipt.ReceiptState
	stateStore tplgss.StateStore
}

func CreateMarketState(log tplog.Logger, ledger ledger.Ledger) MarketState {
	msLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "MarketState", log)
	stateStore := ledger.CreateStateStore()

	return &marketState{
		Logger:       msLog,
		ListingState: statelisting.NewListingState(stateStore, cacheSize_Listing),
		AccountState: stateaccount.NewAccountState(stateStore, cacheSize_Account),
		AssetState:   stateasset.NewAssetState(stateStore, cacheSize_Asset),
		ReceiptState: statereceipt.NewReceiptState(stateStore, cacheSize_Receipt),
		stateStore:   stateStore,
	}
}

func CreateMarketStateReadonly(log tplog.Logger, ledger ledger.Ledger) MarketState {
	msLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "MarketStateR", log)
	stateStore := ledger.CreateStateStoreReadonly()

	return &marketState{
		Logger:       msLog,
		ListingState: statelisting.NewListingState(stateStore, cacheSize_Listing),
		AccountState: stateaccount.NewAccountState(stateStore, cacheSize_Account),
		AssetState:   stateasset.NewAssetState(stateStore, cacheSize_Asset),
		ReceiptState: statereceipt.NewReceiptState(stateStore, cacheSize_Receipt),
		stateStore:   stateStore,
	}
}

// StateRoot hashes the roots of all named stores into one market root.
func (ms *marketState) StateRoot() ([]byte, error) {
	var rError error

	listingRoot, err := ms.GetListingRoot()
	if err != nil {
		rError = multierror.Append(rError, err)
	}
	accountRoot, err := ms.GetAccountRoot()
	if err != nil {
		rError = multierror.Append(rError, err)
	}
	assetRoot, err := ms.GetAssetRoot()
	if err != nil {
		rError = multierror.Append(rError, err)
	}
	receiptRoot, err := ms.GetReceiptRoot()
	if err != nil {
		rError = multierror.Append(rError, err)
	}
	if rError != nil {
		return nil, rError
	}

	hasher := tpcmm.NewBlake2bHasher(0)
	writer := hasher.Writer()
	writer.Write(listingRoot)
	writer.Write(accountRoot)
	writer.Write(assetRoot)
	writer.Write(receiptRoot)

	return hasher.Bytes(), nil
}

func (ms *marketState) Commit() error {
	return ms.stateStore.Commit()
}

func (ms *marketState) Rollback() error {
	return ms.stateStore.Rollback()
}

func (ms *marketState) Stop() error {
	return ms.stateStore.Stop()
}
