package configuration

import (
	"sync"
)

var config *Configuration
var once sync.Once

type Configuration struct {
	NodeConfig   *NodeConfiguration
	MarketConfig *MarketConfiguration
	Genesis      *GenesisData
}

func GetConfiguration() *Configuration {
	once.Do(func() {
		genData := new(GenesisData)
		if err := genData.Load("genesis.json"); err != nil {
			genData = DefGenesisData()
		}
		config = &Configuration{
			NodeConfig:   DefNodeConfiguration(),
			MarketConfig: DefMarketConfiguration(),
			Genesis:      genData,
		}
	})

	return config
}
