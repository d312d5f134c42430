package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	"github.com/TopiaNetwork/tokenmarket/listing"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

func newTestListingState(t *testing.T) ListingState {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	backendDB := backend.NewBackend(backend.BackendType_Memdb, log, t.TempDir(), "test")
	stateStore := tplgss.NewStateStore(log, backendDB, tplgss.Flag_ReadOnly|tplgss.Flag_WriteOnly)

	return NewListingState(stateStore, 16)
}

func TestAddAndGetTokenListing(t *testing.T) {
	ls := newTestListingState(t)

	tl := &listing.TokenListing{
		Token:     tpcmm.Address("tokenA"),
		Supported: true,
		Price:     100,
		Creator:   tpcmm.Address("creatorX"),
		Name:      "Token A",
		Symbol:    "TKA",
	}
	err := ls.AddTokenListing(tl)
	assert.Equal(t, nil, err)

	assert.Equal(t, true, ls.IsTokenListed(tpcmm.Address("tokenA")))
	assert.Equal(t, false, ls.IsTokenListed(tpcmm.Address("tokenB")))

	got, err := ls.GetTokenListing(tpcmm.Address("tokenA"))
	assert.Equal(t, nil, err)
	assert.Equal(t, tl.Price, got.Price)
	assert.Equal(t, tl.Creator, got.Creator)
	assert.Equal(t, tl.Name, got.Name)
	assert.Equal(t, tl.Symbol, got.Symbol)
	assert.Equal(t, true, got.Supported)

	_, err = ls.GetTokenListing(tpcmm.Address("tokenB"))
	assert.NotEqual(t, nil, err)
}

// Re-listing an already-listed token overwrites its record but leaves the
// earlier index entry in place, so the token shows up twice in enumeration.
func TestRelistingKeepsDuplicateIndexEntry(t *testing.T) {
	ls := newTestListingState(t)

	err := ls.AddTokenListing(&listing.TokenListing{
		Token: tpcmm.Address("tokenA"), Supported: true, Price: 100, Creator: tpcmm.Address("creatorX"),
	})
	assert.Equal(t, nil, err)
	err = ls.AddTokenListing(&listing.TokenListing{
		Token: tpcmm.Address("tokenA"), Supported: true, Price: 200, Creator: tpcmm.Address("creatorY"),
	})
	assert.Equal(t, nil, err)

	got, err := ls.GetTokenListing(tpcmm.Address("tokenA"))
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(200), got.Price)
	assert.Equal(t, tpcmm.Address("creatorY"), got.Creator)

	tokenIDs, err := ls.GetAllTokenIDs()
	assert.Equal(t, nil, err)
	assert.Equal(t, []tpcmm.Address{"tokenA", "tokenA"}, tokenIDs)
}

func TestEnumerationPreservesInsertionOrder(t *testing.T) {
	ls := newTestListingState(t)

	ls.AddTokenListing(&listing.TokenListing{Token: "tokenC", Supported: true, Price: 3, Creator: "creatorX"})
	ls.AddTokenListing(&listing.TokenListing{Token: "tokenA", Supported: true, Price: 1, Creator: "creatorY"})
	ls.AddTokenListing(&listing.TokenListing{Token: "tokenB", Supported: true, Price: 2, Creator: "creatorX"})

	tokenIDs, err := ls.GetAllTokenIDs()
	assert.Equal(t, nil, err)
	assert.Equal(t, []tpcmm.Address{"tokenC", "tokenA", "tokenB"}, tokenIDs)

	tls, err := ls.GetAllTokenListings()
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(tls))
	assert.Equal(t, tpcmm.Address("tokenC"), tls[0].Token)

	byCreator, err := ls.GetTokenListingsByCreator(tpcmm.Address("creatorX"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(byCreator))
	assert.Equal(t, tpcmm.Address("tokenC"), byCreator[0].Token)
	assert.Equal(t, tpcmm.Address("tokenB"), byCreator[1].Token)
}

func TestUpdateTokenListing(t *testing.T) {
	ls := newTestListingState(t)

	err := ls.UpdateTokenListing(&listing.TokenListing{Token: "tokenA", Supported: true, Price: 1, Creator: "creatorX"})
	assert.NotEqual(t, nil, err)

	ls.AddTokenListing(&listing.TokenListing{Token: "tokenA", Supported: true, Price: 1, Creator: "creatorX"})
	err = ls.UpdateTokenListing(&listing.TokenListing{Token: "tokenA", Supported: true, Price: 9, Creator: "creatorX"})
	assert.Equal(t, nil, err)

	got, _ := ls.GetTokenListing(tpcmm.Address("tokenA"))
	assert.Equal(t, uint64(9), got.Price)

	// Update writes in place, no new index entry.
	tokenIDs, _ := ls.GetAllTokenIDs()
	assert.Equal(t, 1, len(tokenIDs))
}
