package configuration

type MarketConfiguration struct {
	LedgerID  string
	DBBackend string
}

func DefMarketConfiguration() *MarketConfiguration {
	return &MarketConfiguration{
		LedgerID:  "tokenmarket",
		DBBackend: "badger",
	}
}
