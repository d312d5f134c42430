package listing

import (
	"github.com/TopiaNetwork/tokenmarket/codec"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
)

// TokenListing is the sale record of one registered token. Price and Creator
// are fixed at registration; Name and Symbol are captured from the asset at
// that moment and never re-read, so they may drift from the asset's live
// metadata.
type TokenListing struct {
	Token     tpcmm.Address
	Supported bool
	Price     uint64 //unit price in native-currency smallest unit
	Creator   tpcmm.Address
	Name      string
	Symbol    string
}

var marshaler = codec.CreateMarshaler(codec.CodecType_JSON)

func MarshalTokenListing(tl *TokenListing) ([]byte, error) {
	return marshaler.Marshal(tl)
}

func UnmarshalTokenListing(tlBytes []byte) (*TokenListing, error) {
	var tl TokenListing
	err := marshaler.Unmarshal(tlBytes, &tl)
	if err != nil {
		return nil, err
	}

	return &tl, nil
}
