package configuration

import (
	"encoding/json"
	"io/fs"
	"io/ioutil"
	"math/big"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
)

type GenesisAsset struct {
	Addr        tpcmm.Address
	Name        string
	Symbol      string
	Issuer      tpcmm.Address
	TotalSupply *big.Int
}

type GenesisAccount struct {
	Addr    tpcmm.Address
	Balance *big.Int //native currency, smallest unit
}

type GenesisData struct {
	Assets   []*GenesisAsset
	Accounts []*GenesisAccount
}

func DefGenesisData() *GenesisData {
	return &GenesisData{}
}

func (genesis *GenesisData) Save(fileFullName string) error {
	dataBytes, err := json.Marshal(genesis)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(fileFullName, dataBytes, fs.ModePerm)
}

func (genesis *GenesisData) Load(fileFullName string) error {
	dataBytes, err := ioutil.ReadFile(fileFullName)
	if err != nil {
		return err
	}

	return json.Unmarshal(dataBytes, genesis)
}
