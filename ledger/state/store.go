package state

import (
	"github.com/hashicorp/go-multierror"

	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
)

const (
	MOD_NAME = "StateStore"
)

const (
	stateMerkleRootKey = byte(0x00) // Key for root hashes of Merkle trees
	stateDataPrefix    = byte(0x01) // Prefix for state data
	merkleNodePrefix   = byte(0x02) // Prefix for Merkle tree nodes
	merkleValuePrefix  = byte(0x03) // Prefix for Merkle tree values
)

// StateStoreComposition pairs the raw data scope of a named store with its
// merkle proof scope. Both scopes share the owning transaction, so they
// commit and roll back together.
type StateStoreComposition struct {
	log    tplog.Logger
	name   string
	dataS  *stateData
	proofS *stateProof
}

func newStateStoreComposition(log tplog.Logger, backendRW tplgcmm.DBReadWriter, name string, cacheSize int) (*StateStoreComposition, error) {
	named := backend.NewReadWriterPrefixed([]byte(name), backendRW)

	dataDB := backend.NewReadWriterPrefixed([]byte{stateDataPrefix}, named)
	nodeDB := backend.NewReadWriterPrefixed([]byte{merkleNodePrefix}, named)
	valueDB := backend.NewReadWriterPrefixed([]byte{merkleValuePrefix}, named)

	proofS, err := newStateProof(nodeDB, valueDB, named)
	if err != nil {
		return nil, err
	}

	return &StateStoreComposition{
		log:    log,
		name:   name,
		dataS:  newStateData(name, dataDB, cacheSize),
		proofS: proofS,
	}, nil
}

func newStateStoreCompositionReadonly(log tplog.Logger, backendR tplgcmm.DBReader, name string) (*StateStoreComposition, error) {
	named := backend.NewReaderPrefixed([]byte(name), backendR)

	dataDB := backend.NewReaderPrefixed([]byte{stateDataPrefix}, named)
	nodeDB := backend.NewReaderPrefixed([]byte{merkleNodePrefix}, named)
	valueDB := backend.NewReaderPrefixed([]byte{merkleValuePrefix}, named)

	proofS, err := newStateProofReadonly(nodeDB, valueDB, named)
	if err != nil {
		return nil, err
	}

	return &StateStoreComposition{
		log:    log,
		name:   name,
		dataS:  newStateDataReadonly(name, dataDB),
		proofS: proofS,
	}, nil
}

func (store *StateStoreComposition) Root() []byte {
	return store.proofS.Root()
}

func (store *StateStoreComposition) Put(key []byte, value []byte) error {
	var rError error

	if err1 := store.dataS.Set(key, value); err1 != nil {
		rError = multierror.Append(rError, err1)
	}

	if _, err2 := store.proofS.SetWithNewRoot(key, value); err2 != nil {
		rError = multierror.Append(rError, err2)
	}

	return rError
}

func (store *StateStoreComposition) Delete(key []byte) error {
	var rError error

	if err1 := store.dataS.Delete(key); err1 != nil {
		rError = multierror.Append(rError, err1)
	}

	if _, err2 := store.proofS.DeleteWithNewRoot(key); err2 != nil {
		rError = multierror.Append(rError, err2)
	}

	return rError
}

func (store *StateStoreComposition) Exists(key []byte) (bool, error) {
	return store.dataS.Has(key)
}

func (store *StateStoreComposition) Update(key []byte, value []byte) error {
	return store.Put(key, value)
}

func (store *StateStoreComposition) GetStateData(key []byte) ([]byte, error) {
	return store.dataS.Get(key)
}

func (store *StateStoreComposition) GetState(key []byte) ([]byte, []byte, error) {
	var rError error

	value, err1 := store.dataS.Get(key)
	if err1 != nil {
		rError = multierror.Append(rError, err1)
	}

	proof, err2 := store.proofS.Proof(key)
	if err2 != nil {
		rError = multierror.Append(rError, err2)
	}

	return value, proof, rError
}

func (store *StateStoreComposition) GetAllStateData() ([][]byte, [][]byte, error) {
	return store.dataS.All()
}

func (store *StateStoreComposition) GetAllState() ([][]byte, [][]byte, [][]byte, error) {
	keys, values, err := store.dataS.All()
	if err != nil {
		return nil, nil, nil, err
	}

	var proofs [][]byte
	for _, key := range keys {
		proof, err := store.proofS.Proof(key)
		if err != nil {
			return nil, nil, nil, err
		}
		proofs = append(proofs, proof)
	}

	return keys, values, proofs, nil
}
