package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"

	"github.com/lazyledger/smt"

	tplgcmm "github.com/TopiaNetwork/tokenmarket/ledger/backend/common"
)

func encodeProof(sp *smt.SparseMerkleProof) ([]byte, error) {
	var data bytes.Buffer
	enc := gob.NewEncoder(&data)
	err := enc.Encode(sp)

	return data.Bytes(), err
}

func decodeProof(proofData []byte) (*smt.SparseMerkleProof, error) {
	dec := gob.NewDecoder(bytes.NewBuffer(proofData))
	var proof smt.SparseMerkleProof
	err := dec.Decode(&proof)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

// stateProof maintains a sparse merkle tree alongside the raw state data.
// The latest root is persisted under rootDB so a reopened store resumes
// the tree instead of starting empty.
type stateProof struct {
	rootDB tplgcmm.DBReadWriter
	smTree *smt.SparseMerkleTree
}

func newStateProof(nodes tplgcmm.DBReadWriter, values tplgcmm.DBReadWriter, roots tplgcmm.DBReadWriter) (*stateProof, error) {
	nodeStore := &stateProofDB{dbR: nodes, dbW: nodes}
	valueStore := &stateProofDB{dbR: values, dbW: values}

	rootData, err := roots.Get([]byte{stateMerkleRootKey})
	if err != nil {
		return nil, err
	}

	var smTree *smt.SparseMerkleTree
	if rootData == nil {
		smTree = smt.NewSparseMerkleTree(nodeStore, valueStore, sha256.New())
	} else {
		smTree = smt.ImportSparseMerkleTree(nodeStore, valueStore, sha256.New(), rootData)
	}

	return &stateProof{
		rootDB: roots,
		smTree: smTree,
	}, nil
}

func newStateProofReadonly(nodes tplgcmm.DBReader, values tplgcmm.DBReader, roots tplgcmm.DBReader) (*stateProof, error) {
	nodeStore := &stateProofDB{dbR: nodes}
	valueStore := &stateProofDB{dbR: values}

	rootData, err := roots.Get([]byte{stateMerkleRootKey})
	if err != nil {
		return nil, err
	}

	var smTree *smt.SparseMerkleTree
	if rootData == nil {
		smTree = smt.NewSparseMerkleTree(nodeStore, valueStore, sha256.New())
	} else {
		smTree = smt.ImportSparseMerkleTree(nodeStore, valueStore, sha256.New(), rootData)
	}

	return &stateProof{smTree: smTree}, nil
}

func (p *stateProof) Get(key []byte) ([]byte, error) {
	return p.smTree.Get(key)
}

func (p *stateProof) SetWithNewRoot(key []byte, value []byte) ([]byte, error) {
	root, err := p.smTree.Update(key, value)
	if err != nil {
		return nil, err
	}

	if err = p.rootDB.Set([]byte{stateMerkleRootKey}, root); err != nil {
		return nil, err
	}

	return root, nil
}

func (p *stateProof) DeleteWithNewRoot(key []byte) ([]byte, error) {
	root, err := p.smTree.Delete(key)
	if err != nil {
		return nil, err
	}

	if err = p.rootDB.Set([]byte{stateMerkleRootKey}, root); err != nil {
		return nil, err
	}

	return root, nil
}

func (p *stateProof) Has(key []byte) (bool, error) {
	return p.smTree.Has(key)
}

func (p *stateProof) Root() []byte {
	return p.smTree.Root()
}

func (p *stateProof) Proof(key []byte) ([]byte, error) {
	proof, err := p.smTree.Prove(key)
	if err != nil {
		return nil, err
	}

	return encodeProof(&proof)
}

type stateProofDB struct {
	dbR tplgcmm.DBReader
	dbW tplgcmm.DBWriter
}

func (s *stateProofDB) Get(key []byte) ([]byte, error) {
	val, err := s.dbR.Get(key)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, &smt.InvalidKeyError{Key: key}
	}

	return val, nil
}

func (s *stateProofDB) Set(key []byte, value []byte) error {
	if s.dbW == nil {
		return tplgcmm.ErrReadOnly
	}
	return s.dbW.Set(key, value)
}

func (s *stateProofDB) Delete(key []byte) error {
	if s.dbW == nil {
		return tplgcmm.ErrReadOnly
	}
	return s.dbW.Delete(key)
}

func VerifyProof(proofData []byte, root []byte, key []byte, value []byte) bool {
	proof, err := decodeProof(proofData)
	if err != nil {
		return false
	}

	return smt.VerifyProof(*proof, root, key, value, sha256.New())
}
