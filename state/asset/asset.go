package asset

import (
	"encoding/json"
	"fmt"

	"github.com/TopiaNetwork/tokenmarket/asset"
	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	tplgss "github.com/TopiaNetwork/tokenmarket/ledger/state"
)

const StateStore_Name = "asset"

type AssetState interface {
	GetAssetRoot() ([]byte, error)

	IsAssetExist(addr tpcmm.Address) bool

	GetAssetMeta(addr tpcmm.Address) (*asset.AssetMeta, error)

	AddAssetMeta(meta *asset.AssetMeta) error

	UpdateAssetMeta(meta *asset.AssetMeta) error

	GetAllAssetMetas() ([]*asset.AssetMeta, error)
}

type assetState struct {
	tplgss.StateStore
}

func NewAssetState(stateStore tplgss.StateStore, cacheSize int) AssetState {
	stateStore.AddNamedStateStore(StateStore_Name, cacheSize)
	return &assetState{
		stateStore,
	}
}

func (as *assetState) GetAssetRoot() ([]byte, error) {
	return as.Root(StateStore_Name)
}

func (as *assetState) IsAssetExist(addr tpcmm.Address) bool {
	isExist, _ := as.Exists(StateStore_Name, addr.Bytes())

	return isExist
}

func (as *assetState) GetAssetMeta(addr tpcmm.Address) (*asset.AssetMeta, error) {
	metaBytes, err := as.GetStateData(StateStore_Name, addr.Bytes())
	if err != nil {
		return nil, err
	}
	if metaBytes == nil {
		return nil, fmt.Errorf("No asset from %s", addr)
	}

	var meta asset.AssetMeta
	err = json.Unmarshal(metaBytes, &meta)
	if err != nil {
		return nil, err
	}

	return &meta, nil
}

func (as *assetState) AddAssetMeta(meta *asset.AssetMeta) error {
	if as.IsAssetExist(meta.Addr) {
		return fmt.Errorf("Have existed asset from %s", meta.Addr)
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return as.Put(StateStore_Name, meta.Addr.Bytes(), metaBytes)
}

func (as *assetState) UpdateAssetMeta(meta *asset.AssetMeta) error {
	if !as.IsAssetExist(meta.Addr) {
		return fmt.Errorf("No asset from %s", meta.Addr)
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return as.Update(StateStore_Name, meta.Addr.Bytes(), metaBytes)
}

func (as *assetState) GetAllAssetMetas() ([]*asset.AssetMeta, error) {
	_, metasBytes, err := as.GetAllStateData(StateStore_Name)
	if err != nil {
		return nil, err
	}

	var metas []*asset.AssetMeta
	for _, metaBytes := range metasBytes {
		var meta asset.AssetMeta
		if err = json.Unmarshal(metaBytes, &meta); err != nil {
			return nil, err
		}
		metas = append(metas, &meta)
	}

	return metas, nil
}
