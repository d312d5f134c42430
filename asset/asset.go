package asset

import (
	"math/big"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
)

// AssetMeta is the on-ledger record of a deployed token asset.
type AssetMeta struct {
	Addr        tpcmm.Address
	Name        string
	Symbol      string
	Issuer      tpcmm.Address
	TotalSupply *big.Int
}

// BalanceSymbol returns the bookkeeping symbol of an asset. Asset balances
// live in the same account table as the native currency, keyed by the
// asset's address, so they commit and roll back with everything else.
func BalanceSymbol(assetAddr tpcmm.Address) currency.TokenSymbol {
	return currency.TokenSymbol(string(assetAddr))
}

// TokenAsset is a handle on a deployed asset, bound to a holder account.
// Transfer debits the bound holder.
type TokenAsset interface {
	Name() (string, error)

	Symbol() (string, error)

	BalanceOf(owner tpcmm.Address) (*big.Int, error)

	Transfer(to tpcmm.Address, value *big.Int) (bool, error)
}

// MetaStore is the asset metadata surface a provider needs from state.
type MetaStore interface {
	IsAssetExist(addr tpcmm.Address) bool

	GetAssetMeta(addr tpcmm.Address) (*AssetMeta, error)

	AddAssetMeta(meta *AssetMeta) error

	UpdateAssetMeta(meta *AssetMeta) error
}

// BalanceStore is the balance surface a provider needs from state.
type BalanceStore interface {
	GetBalance(addr tpcmm.Address, symbol currency.TokenSymbol) (*big.Int, error)

	AddBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error

	SubBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error
}

type StateView interface {
	MetaStore
	BalanceStore
}

// Provider resolves token asset handles over a state view.
type Provider interface {
	Deploy(state StateView, issuer tpcmm.Address, addr tpcmm.Address, name string, symbol string, totalSupply *big.Int) (TokenAsset, error)

	GetTokenAsset(state StateView, holder tpcmm.Address, addr tpcmm.Address) (TokenAsset, error)
}
