package mq

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"team-files-api/config"
)

func TestPublisherWorker_LatePushAfterStopDoesNotPanic(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.PublisherWorker(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	// a handler finishing out the graceful-shutdown window still pushes
	assert.NotPanics(t, func() {
		r.GetInputChan() <- Event{Id: uuid.New(), TS: time.Now(), Action: ActionUploaded}
	})
}
