package account

import (
	"encoding/json"
	"fmt"
	"math/big"

	tpacc "github.com/TopiaNetwork/tokenmarket/account"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
)

const StateStore_Name = "account"

type AccountState interface {
	GetAccountRoot() ([]byte, error)

	GetAccountProof(addr tpcmm.Address) ([]byte, error)

	IsAccountExist(addr tpcmm.Address) bool

	GetAccount(addr tpcmm.Address) (*tpacc.Account, error)

	GetAllAccounts() ([]*tpacc.Account, error)

	GetNonce(addr tpcmm.Address) (uint64, error)

	GetBalance(addr tpcmm.Address, symbol currency.TokenSymbol) (*big.Int, error)

	AddAccount(acc *tpacc.Account) error

	UpdateAccount(account *tpacc.Account) error

	UpdateNonce(addr tpcmm.Address, nonce uint64) error

	AddBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error

	SubBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error
}

type accountState struct {
	tplgss.StateStore
}

func NewAccountState(stateStore tplgss.StateStore, cacheSize int) AccountState {
	stateStore.AddNamedStateStore(StateStore_Name, cacheSize)
	return &accountState{
		stateStore,
	}
}

func (as *accountState) GetAccountRoot() ([]byte, error) {
	return as.Root(StateStore_Name)
}

func (as *accountState) GetAccountProof(addr tpcmm.Address) ([]byte, error) {
	_, proof, err := as.GetState(StateStore_Name, addr.Bytes())

	return proof, err
}

func (as *accountState) IsAccountExist(addr tpcmm.Address) bool {
	isExist, _ := as.Exists(StateStore_Name, addr.Bytes())

	return isExist
}

func (as *accountState) GetAccount(addr tpcmm.Address) (*tpacc.Account, error) {
	accBytes, err := as.GetStateData(StateStore_Name, addr.Bytes())
	if err != nil {
		return nil, err
	}
	if accBytes == nil {
		return nil, fmt.Errorf("No account from %s", addr)
	}

	var acc tpacc.Account
	err = json.Unmarshal(accBytes, &acc)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (as *accountState) GetAllAccounts() ([]*tpacc.Account, error) {
	_, accsBytes, err := as.GetAllStateData(StateStore_Name)
	if err != nil {
		return nil, err
	}

	var accs []*tpacc.Account
	for _, accBytes := range accsBytes {
		var acc tpacc.Account
		if err = json.Unmarshal(accBytes, &acc); err != nil {
			return nil, err
		}
		accs = append(accs, &acc)
	}

	return accs, nil
}

func (as *accountState) GetNonce(addr tpcmm.Address) (uint64, error) {
	acc, err := as.GetAccount(addr)
	if err != nil {
		return 0, err
	}

	return acc.Nonce, nil
}

// GetBalance returns zero when the account or the symbol has never been
// credited, rather than an error.
func (as *accountState) GetBalance(addr tpcmm.Address, symbol currency.TokenSymbol) (*big.Int, error) {
	if !as.IsAccountExist(addr) {
		return big.NewInt(0), nil
	}

	acc, err := as.GetAccount(addr)
	if err != nil {
		return nil, err
	}

	return acc.Balance(symbol), nil
}

func (as *accountState) AddAccount(acc *tpacc.Account) error {
	if as.IsAccountExist(acc.Addr) {
		return fmt.Errorf("Have existed account from %s", acc.Addr)
	}

	accBytes, err := json.Marshal(acc)
	if err != nil {
		return err
	}

	return as.Put(StateStore_Name, acc.Addr.Bytes(), accBytes)
}

func (as *accountState) UpdateAccount(account *tpacc.Account) error {
	accBytes, err := json.Marshal(account)
	if err != nil {
		return err
	}

	return as.Update(StateStore_Name, account.Addr.Bytes(), accBytes)
}

func (as *accountState) UpdateNonce(addr tpcmm.Address, nonce uint64) error {
	acc, err := as.GetAccount(addr)
	if err != nil {
		return err
	}

	acc.Nonce = nonce

	return as.UpdateAccount(acc)
}

// AddBalance creates the account on first credit.
func (as *accountState) AddBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error {
	var acc *tpacc.Account
	var err error
	if as.IsAccountExist(addr) {
		acc, err = as.GetAccount(addr)
		if err != nil {
			return err
		}
	} else {
		acc = tpacc.NewAccount(addr)
		if err = as.AddAccount(acc); err != nil {
			return err
		}
	}

	acc.BalanceIncrease(symbol, value)

	return as.UpdateAccount(acc)
}

func (as *accountState) SubBalance(addr tpcmm.Address, symbol currency.TokenSymbol, value *big.Int) error {
	if !as.IsAccountExist(addr) {
		return fmt.Errorf("Insufficient balance: no account from %s", addr)
	}

	acc, err := as.GetAccount(addr)
	if err != nil {
		return err
	}

	if err = acc.BalanceDecrease(symbol, value); err != nil {
		return err
	}

	return as.UpdateAccount(acc)
}
