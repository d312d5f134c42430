package eventhub

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AsynkronIT/protoactor-go/actor"
	"github.com/stretchr/testify/assert"

	tpcmm "github.com/TopiaNetwork/tokenmarket/common"
	tplog "github.com/TopiaNetwork/tokenmarket/log"
	tplogcmm "github.com/TopiaNetwork/tokenmarket/log/common"
)

func newTestEventHub(t *testing.T) EventHub {
	log, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.DefaultLogFormat, tplog.DefaultLogOutput, "")

	evHub := NewEventHub(tplogcmm.InfoLevel, log)
	assert.NotEqual(t, nil, evHub)

	sysActor := actor.NewActorSystem()
	err := evHub.Start(sysActor)
	assert.Equal(t, nil, err)

	return evHub
}

func TestObserveAndTrig(t *testing.T) {
	evHub := newTestEventHub(t)
	defer evHub.Stop()

	received := make(chan *TokenListedEvent, 1)
	obsID, err := evHub.Observe(context.Background(), EventName_TokenListed, func(ctx context.Context, data interface{}) error {
		received <- data.(*TokenListedEvent)
		return nil
	})
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", obsID)

	err = evHub.Trig(context.Background(), EventName_TokenListed, &TokenListedEvent{
		Token:   tpcmm.Address("tokenA"),
		Price:   100,
		Creator: tpcmm.Address("creatorX"),
		Name:    "Token A",
		Symbol:  "TKA",
	})
	assert.Equal(t, nil, err)

	select {
	case ev := <-received:
		assert.Equal(t, tpcmm.Address("tokenA"), ev.Token)
		assert.Equal(t, uint64(100), ev.Price)
		assert.Equal(t, tpcmm.Address("creatorX"), ev.Creator)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestUnObserve(t *testing.T) {
	evHub := newTestEventHub(t)
	defer evHub.Stop()

	var count int32
	obsID, err := evHub.Observe(context.Background(), EventName_TokenPurchased, func(ctx context.Context, data interface{}) error {
		atomic.AddInt32(&count, 1)
		return nil
	})
	assert.Equal(t, nil, err)

	err = evHub.UnObserve(context.Background(), obsID, EventName_TokenPurchased)
	assert.Equal(t, nil, err)

	evHub.Trig(context.Background(), EventName_TokenPurchased, &TokenPurchasedEvent{
		Token: tpcmm.Address("tokenA"),
		Buyer: tpcmm.Address("buyerY"),
	})

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}

func TestObserveUnknownEvent(t *testing.T) {
	evHub := newTestEventHub(t)
	defer evHub.Stop()

	_, err := evHub.Observe(context.Background(), "NoSuchEvent", func(ctx context.Context, data interface{}) error {
		return nil
	})
	assert.NotEqual(t, nil, err)
}
