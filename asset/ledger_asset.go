package asset

import (
	"fmt"
	"math/big"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

type ledgerProvider struct {
	log tplog.Logger
}

// NewLedgerProvider creates a Provider whose assets live entirely in ledger
// state: metadata in the asset store, balances in the account store.
func NewLedgerProvider(log tplog.Logger) Provider {
	return &ledgerProvider{
		log: tplog.CreateModuleLogger(tplogcmm.InfoLevel, "AssetProvider", log),
	}
}

func (p *ledgerProvider) Deploy(state StateView, issuer tpcmm.Address, addr tpcmm.Address, name string, symbol string, totalSupply *big.Int) (TokenAsset, error) {
	if !addr.IsValid() {
		return nil, fmt.Errorf("Invalid asset address %s", addr)
	}
	if state.IsAssetExist(addr) {
		return nil, fmt.Errorf("Have existed asset from %s", addr)
	}
	if totalSupply == nil || totalSupply.Sign() < 0 {
		return nil, fmt.Errorf("Invalid total supply for asset %s", addr)
	}

	meta := &AssetMeta{
		Addr:        addr,
		Name:        name,
		Symbol:      symbol,
		Issuer:      issuer,
		TotalSupply: totalSupply,
	}
	if err := state.AddAssetMeta(meta); err != nil {
		return nil, err
	}

	if totalSupply.Sign() > 0 {
		if err := state.AddBalance(issuer, BalanceSymbol(addr), totalSupply); err != nil {
			return nil, err
		}
	}

	p.log.Infof("Deployed asset %s: name=%s, symbol=%s, totalSupply=%s", addr, name, symbol, totalSupply.String())

	return &ledgerAsset{state: state, holder: issuer, addr: addr}, nil
}

func (p *ledgerProvider) GetTokenAsset(state StateView, holder tpcmm.Address, addr tpcmm.Address) (TokenAsset, error) {
	if !state.IsAssetExist(addr) {
		return nil, fmt.Errorf("No asset from %s", addr)
	}

	return &ledgerAsset{state: state, holder: holder, addr: addr}, nil
}

type ledgerAsset struct {
	state  StateView
	holder tpcmm.Address
	addr   tpcmm.Address
}

func (a *ledgerAsset) Name() (string, error) {
	meta, err := a.state.GetAssetMeta(a.addr)
	if err != nil {
		return "", err
	}

	return meta.Name, nil
}

func (a *ledgerAsset) Symbol() (string, error) {
	meta, err := a.state.GetAssetMeta(a.addr)
	if err != nil {
		return "", err
	}

	return meta.Symbol, nil
}

func (a *ledgerAsset) BalanceOf(owner tpcmm.Address) (*big.Int, error) {
	return a.state.GetBalance(owner, BalanceSymbol(a.addr))
}

func (a *ledgerAsset) Transfer(to tpcmm.Address, value *big.Int) (bool, error) {
	if value == nil || value.Sign() < 0 {
		return false, fmt.Errorf("Invalid transfer value for asset %s", a.addr)
	}

	sym := BalanceSymbol(a.addr)
	if err := a.state.SubBalance(a.holder, sym, value); err != nil {
		return false, err
	}
	if err := a.state.AddBalance(to, sym, value); err != nil {
		return false, err
	}

	return true, nil
}
