package receipt

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/TopiaNetwork/tokenmarket/codec"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
	tptime "github.com/TopiaNetwork/tokenmarket/time"
)

const StateStore_Name = "receipt"

var (
	entryPrefix = byte('r')
	seqKey      = []byte("seq")
)

const (
	ReceiptOp_Unknown uint8 = iota
	ReceiptOp_Register
	ReceiptOp_Buy
	ReceiptOp_Withdraw
)

// Receipt is the audit record of one committed market operation. Receipts
// are RLP encoded and assigned a dense sequence number at append time.
type Receipt struct {
	Seq    uint64
	Op     uint8
	Token  string
	From   string
	To     string
	Amount uint64
	Value  *big.Int
	Time   uint64 //millisecond unix timestamp
}

type ReceiptState interface {
	GetReceiptRoot() ([]byte, error)

	LatestReceiptSeq() (uint64, error)

	AddReceipt(r *Receipt) error

	GetReceipt(seq uint64) (*Receipt, error)

	GetAllReceipts() ([]*Receipt, error)
}

type receiptState struct {
	tplgss.StateStore
	marshaler codec.Marshaler
}

func NewReceiptState(stateStore tplgss.StateStore, cacheSize int) ReceiptState {
	stateStore.AddNamedStateStore(StateStore_Name, cacheSize)
	return &receiptState{
		StateStore: stateStore,
		marshaler:  codec.CreateMarshaler(codec.CodecType_RLP),
	}
}

func (rs *receiptState) GetReceiptRoot() ([]byte, error) {
	return rs.Root(StateStore_Name)
}

// LatestReceiptSeq returns the number of receipts appended so far, i.e. the
// seq that the next receipt will take.
func (rs *receiptState) LatestReceiptSeq() (uint64, error) {
	seqBytes, err := rs.GetStateData(StateStore_Name, seqKey)
	if err != nil {
		return 0, err
	}
	if seqBytes == nil {
		return 0, nil
	}

	return binary.BigEndian.Uint64(seqBytes), nil
}

func entryKey(seq uint64) []byte {
	key := make([]byte, 9)
	key[0] = entryPrefix
	binary.BigEndian.PutUint64(key[1:], seq)
	return key
}

func (rs *receiptState) AddReceipt(r *Receipt) error {
	seq, err := rs.LatestReceiptSeq()
	if err != nil {
		return err
	}

	r.Seq = seq
	r.Time = uint64(tptime.Now().UnixMilli())
	if r.Value == nil {
		r.Value = big.NewInt(0)
	}

	rBytes, err := rs.marshaler.Marshal(r)
	if err != nil {
		return err
	}

	if err = rs.Put(StateStore_Name, entryKey(seq), rBytes); err != nil {
		return err
	}

	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq+1)

	return rs.Put(StateStore_Name, seqKey, seqBytes)
}

func (rs *receiptState) GetReceipt(seq uint64) (*Receipt, error) {
	rBytes, err := rs.GetStateData(StateStore_Name, entryKey(seq))
	if err != nil {
		return nil, err
	}
	if rBytes == nil {
		return nil, fmt.Errorf("No receipt from seq %d", seq)
	}

	var r Receipt
	err = rs.marshaler.Unmarshal(rBytes, &r)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (rs *receiptState) GetAllReceipts() ([]*Receipt, error) {
	keys, valuesBytes, err := rs.GetAllStateData(StateStore_Name)
	if err != nil {
		return nil, err
	}

	var receipts []*Receipt
	for i, key := range keys {
		if len(key) == 0 || key[0] != entryPrefix {
			continue
		}
		var r Receipt
		if err = rs.marshaler.Unmarshal(valuesBytes[i], &r); err != nil {
			return nil, err
		}
		receipts = append(receipts, &r)
	}

	return receipts, nil
}
