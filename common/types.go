package common

// Address identifies a principal on the market ledger: a creator, a buyer,
// the engine itself or a ledger-resident asset. Caller identities are
// supplied by the embedding host; the market core never derives them from
// keys.
type Address string

// UndefAddress is the zero address; no listing, account or asset may be
// keyed by it.
var UndefAddress = Address("")

func (a Address) IsValid() bool {
	return a != UndefAddress
}

func (a Address) Bytes() []byte {
	return []byte(a)
}
