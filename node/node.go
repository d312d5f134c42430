package node

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AsynkronIT/protoactor-go/actor"

	"github.com/TopiaNetwork/tokenmarket/asset"
	"github.com/TopiaNetwork/tokenmarket/configuration"
	"github.com/TopiaNetwork/tokenmarket/currency"
	"github.com/TopiaNetwork/tokenmarket/eventhub"
	"github.com/TopiaNetwork/tokenmarket/ledger"
	"github.com/TopiaNetwork/tokenmarket/ledger/backend"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
	"github.com/TopiaNetwork/tokenmarket/market"
)

type Node struct {
	log      tplog.Logger
	level    tplogcmm.LogLevel
	sysActor *actor.ActorSystem
	evHub    eventhub.EventHub
	ledger   ledger.Ledger
	servant  market.MarketServant
	market   market.TokenMarket
}

func backendTypeFromName(name string) backend.BackendType {
	switch name {
	case "leveldb":
		return backend.BackendType_Leveldb
	case "badger":
		return backend.BackendType_Badger
	case "memdb":
		return backend.BackendType_Memdb
	default:
		return backend.BackendType_Unknown
	}
}

func NewNode(nodeID string) *Node {
	config := configuration.GetConfiguration()
	rootPath := filepath.Join(config.NodeConfig.RootPath, "tokenmarket")

	mainLog, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	if err != nil {
		fmt.Printf("CreateMainLogger error: %v", err)
	}

	sysActor := actor.NewActorSystem()

	evHub := eventhub.GetEventHubManager().CreateEventHub(nodeID, tplogcmm.InfoLevel, mainLog)

	mLedger := ledger.NewLedger(rootPath, ledger.LedgerID(config.MarketConfig.LedgerID), mainLog, backendTypeFromName(config.MarketConfig.DBBackend))

	assetProvider := asset.NewLedgerProvider(mainLog)
	servant := market.NewMarketServant(mainLog, mLedger, assetProvider, evHub)
	tokenMarket := market.NewTokenMarket(mainLog, servant)

	return &Node{
		log:      mainLog,
		level:    tplogcmm.InfoLevel,
		sysActor: sysActor,
		evHub:    evHub,
		ledger:   mLedger,
		servant:  servant,
		market:   tokenMarket,
	}
}

func (n *Node) Market() market.TokenMarket {
	return n.market
}

// applyGenesis seeds the ledger with the configured assets and native
// balances. Already-present entries are left untouched, so restarting a
// node does not re-mint anything.
func (n *Node) applyGenesis(genesis *configuration.GenesisData) error {
	ms := n.servant.CreateMarketState()

	for _, genAcc := range genesis.Accounts {
		if ms.IsAccountExist(genAcc.Addr) {
			continue
		}
		if err := ms.AddBalance(genAcc.Addr, currency.TokenSymbol_Native, genAcc.Balance); err != nil {
			ms.Rollback()
			return err
		}
	}

	for _, genAsset := range genesis.Assets {
		if ms.IsAssetExist(genAsset.Addr) {
			continue
		}
		_, err := n.servant.DeployTokenAsset(ms, genAsset.Issuer, genAsset.Addr, genAsset.Name, genAsset.Symbol, genAsset.TotalSupply)
		if err != nil {
			ms.Rollback()
			return err
		}
	}

	return ms.Commit()
}

func (n *Node) Start() {
	var gracefulStop = make(chan os.Signal, 1)
	signal.Notify(gracefulStop, syscall.SIGTERM)
	signal.Notify(gracefulStop, syscall.SIGINT)

	var waitChannel = make(chan bool)

	go func() {
		sig := <-gracefulStop
		n.log.Debugf("caught sig: %v", sig)

		n.log.Warn("GRACEFUL STOP APP")

		n.Stop()

		close(waitChannel)
	}()

	if err := n.evHub.Start(n.sysActor); err != nil {
		n.log.Panicf("Can't start event hub: %v", err)
		return
	}

	if err := n.applyGenesis(configuration.GetConfiguration().Genesis); err != nil {
		n.log.Panicf("Can't apply genesis data: %v", err)
		return
	}

	fmt.Println("All services were started")
	<-waitChannel
}

func (n *Node) Stop() {
	n.evHub.Stop()
	if err := n.ledger.Close(); err != nil {
		n.log.Errorf("Can't close ledger: %v", err)
	}
}
