package eventhub

import (
	"math/big"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
)

// TokenListedEvent is emitted after a token registration commits.
type TokenListedEvent struct {
	Token   tpcmm.Address
	Price   uint64
	Creator tpcmm.Address
	Name    string
	Symbol  string
}

// TokenPurchasedEvent is emitted after a purchase commits. Cost is the
// native value paid; Value is the asset amount delivered to the buyer.
type TokenPurchasedEvent struct {
	Token  tpcmm.Address
	Buyer  tpcmm.Address
	Amount uint64
	Cost   uint64
	Value  *big.Int
}

// TokenWithdrawnEvent is emitted after a creator withdrawal commits.
type TokenWithdrawnEvent struct {
	Token   tpcmm.Address
	Creator tpcmm.Address
	Amount  uint64
}
