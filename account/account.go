package account

import (
	"fmt"
	"math/big"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/currency"
)

type Account struct {
	Addr     tpcmm.Address
	Name     string
	Nonce    uint64
	Balances map[currency.TokenSymbol]*big.Int
}

func NewAccount(addr tpcmm.Address) *Account {
	return &Account{
		Addr:     addr,
		Balances: make(map[currency.TokenSymbol]*big.Int),
	}
}

func (acc *Account) Balance(symbol currency.TokenSymbol) *big.Int {
	if bal, ok := acc.Balances[symbol]; ok {
		return bal
	}

	return big.NewInt(0)
}

func (acc *Account) BalanceIncrease(symbol currency.TokenSymbol, value *big.Int) {
	if acc.Balances == nil {
		acc.Balances = make(map[currency.TokenSymbol]*big.Int)
	}

	if bal, ok := acc.Balances[symbol]; ok {
		bal.Add(bal, value)
	} else {
		acc.Balances[symbol] = big.NewInt(0).Set(value)
	}
}

func (acc *Account) BalanceDecrease(symbol currency.TokenSymbol, value *big.Int) error {
	bal, ok := acc.Balances[symbol]
	if !ok || bal.Cmp(value) < 0 {
		return fmt.Errorf("Insufficient balance: addr %s, symbol %s, remaining %s, required %s", acc.Addr, symbol, acc.Balance(symbol).String(), value.String())
	}

	bal.Sub(bal, value)

	return nil
}
