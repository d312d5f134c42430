package listing

import (
	"encoding/binary"
	"fmt"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	"github.com/TopiaNetwork/tokenmarket/listing"
)

const (
	StateStore_Name     = "listing"
	StateStore_Name_Idx = "listingidx"
)

var (
	idxEntryPrefix = byte('i')
	idxSeqKey      = []byte("seq")
)

type ListingState interface {
	GetListingRoot() ([]byte, error)

	GetListingProof(token tpcmm.Address) ([]byte, error)

	IsTokenListed(token tpcmm.Address) bool

	GetTokenListing(token tpcmm.Address) (*listing.TokenListing, error)

	AddTokenListing(tl *listing.TokenListing) error

	UpdateTokenListing(tl *listing.TokenListing) error

	GetAllTokenIDs() ([]tpcmm.Address, error)

	GetAllTokenListings() ([]*listing.TokenListing, error)

	GetTokenListingsByCreator(creator tpcmm.Address) ([]*listing.TokenListing, error)
}

type listingState struct {
	tplgss.StateStore
}

func NewListingState(stateStore tplgss.StateStore, cacheSize int) ListingState {
	stateStore.AddNamedStateStore(StateStore_Name, cacheSize)
	stateStore.AddNamedStateStore(StateStore_Name_Idx, cacheSize)
	return &listingState{
		stateStore,
	}
}

func (ls *listingState) GetListingRoot() ([]byte, error) {
	return ls.Root(StateStore_Name)
}

func (ls *listingState) GetListingProof(token tpcmm.Address) ([]byte, error) {
	_, proof, err := ls.GetState(StateStore_Name, token.Bytes())

	return proof, err
}

func (ls *listingState) IsTokenListed(token tpcmm.Address) bool {
	isExist, _ := ls.Exists(StateStore_Name, token.Bytes())

	return isExist
}

func (ls *listingState) GetTokenListing(token tpcmm.Address) (*listing.TokenListing, error) {
	tlBytes, err := ls.GetStateData(StateStore_Name, token.Bytes())
	if err != nil {
		return nil, err
	}
	if tlBytes == nil {
		return nil, fmt.Errorf("No token listing from %s", token)
	}

	return listing.UnmarshalTokenListing(tlBytes)
}

func (ls *listingState) nextIdxSeq() (uint64, error) {
	seqBytes, err := ls.GetStateData(StateStore_Name_Idx, idxSeqKey)
	if err != nil {
		return 0, err
	}

	if seqBytes == nil {
		return 0, nil
	}

	return binary.BigEndian.Uint64(seqBytes), nil
}

// AddTokenListing stores the listing and appends the token to the order
// index. Listing an already-listed token overwrites its record but leaves
// the earlier index entry in place, so enumeration reports the token once
// per listing call.
func (ls *listingState) AddTokenListing(tl *listing.TokenListing) error {
	tlBytes, err := listing.MarshalTokenListing(tl)
	if err != nil {
		return err
	}

	if err = ls.Put(StateStore_Name, tl.Token.Bytes(), tlBytes); err != nil {
		return err
	}

	seq, err := ls.nextIdxSeq()
	if err != nil {
		return err
	}

	idxKey := make([]byte, 9)
	idxKey[0] = idxEntryPrefix
	binary.BigEndian.PutUint64(idxKey[1:], seq)
	if err = ls.Put(StateStore_Name_Idx, idxKey, tl.Token.Bytes()); err != nil {
		return err
	}

	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq+1)

	return ls.Put(StateStore_Name_Idx, idxSeqKey, seqBytes)
}

func (ls *listingState) UpdateTokenListing(tl *listing.TokenListing) error {
	if !ls.IsTokenListed(tl.Token) {
		return fmt.Errorf("No token listing from %s", tl.Token)
	}

	tlBytes, err := listing.MarshalTokenListing(tl)
	if err != nil {
		return err
	}

	return ls.Update(StateStore_Name, tl.Token.Bytes(), tlBytes)
}

func (ls *listingState) GetAllTokenIDs() ([]tpcmm.Address, error) {
	keys, values, err := ls.GetAllStateData(StateStore_Name_Idx)
	if err != nil {
		return nil, err
	}

	var tokenIDs []tpcmm.Address
	for i, key := range keys {
		if len(key) == 0 || key[0] != idxEntryPrefix {
			continue
		}
		tokenIDs = append(tokenIDs, tpcmm.Address(values[i]))
	}

	return tokenIDs, nil
}

func (ls *listingState) GetAllTokenListings() ([]*listing.TokenListing, error) {
	tokenIDs, err := ls.GetAllTokenIDs()
	if err != nil {
		return nil, err
	}

	var tls []*listing.TokenListing
	for _, tokenID := range tokenIDs {
		tl, err := ls.GetTokenListing(tokenID)
		if err != nil {
			return nil, err
		}
		tls = append(tls, tl)
	}

	return tls, nil
}

func (ls *listingState) GetTokenListingsByCreator(creator tpcmm.Address) ([]*listing.TokenListing, error) {
	tls, err := ls.GetAllTokenListings()
	if err != nil {
		return nil, err
	}

	var creatorTLs []*listing.TokenListing
	for _, tl := range tls {
		if tl.Creator == creator {
			creatorTLs = append(creatorTLs, tl)
		}
	}

	return creatorTLs, nil
}
