package notifier

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			"all placeholders",
			"Olá {name}, vídeo {video} agora em {status}.",
			map[string]string{"name": "Ana", "video": "Teaser", "status": "Published"},
			"Olá Ana, vídeo Teaser agora em Published.",
		},
		{
			"unknown placeholder untouched",
			"Olá {name}, veja {link}.",
			map[string]string{"name": "Ana"},
			"Olá Ana, veja {link}.",
		},
		{
			"repeated placeholder",
			"{video} / {video}",
			map[string]string{"video": "Teaser"},
			"Teaser / Teaser",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.vars))
		})
	}
}

type recordingSender struct {
	mu       sync.Mutex
	failures int
	calls    int
	done     chan struct{}
}

func (r *recordingSender) Send(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failures {
		return errors.New("gateway unavailable")
	}
	select {
	case r.done <- struct{}{}:
	default:
	}
	return nil
}

func (r *recordingSender) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestDispatcher(sender Sender) *QueueDispatcher {
	d := NewQueueDispatcher(sender, log.New(io.Discard, "", 0))
	d.backoff = func(int) time.Duration { return time.Millisecond }
	return d
}

func TestQueueDispatcherDelivers(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}, 1)}
	d := newTestDispatcher(sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(Notification{Channel: ChannelEmail, Recipient: "ana@acme.test", Message: "oi"})

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
	assert.Equal(t, 1, sender.callCount())
}

func TestQueueDispatcherRetriesUntilSuccess(t *testing.T) {
	sender := &recordingSender{failures: 2, done: make(chan struct{}, 1)}
	d := newTestDispatcher(sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(Notification{Channel: ChannelEmail, Recipient: "ana@acme.test", Message: "oi"})

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered after retries")
	}
	assert.Equal(t, 3, sender.callCount())
}

func TestQueueDispatcherGivesUpAfterMaxRetries(t *testing.T) {
	sender := &recordingSender{failures: 100, done: make(chan struct{}, 1)}
	d := newTestDispatcher(sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(Notification{Channel: ChannelEmail, Recipient: "ana@acme.test", Message: "oi"})

	require.Eventually(t, func() bool {
		return sender.callCount() == d.maxRetries
	}, 2*time.Second, 10*time.Millisecond)

	// No further attempts after giving up.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, d.maxRetries, sender.callCount())
}

func TestQueueDispatcherDropsWhenFull(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}, 1)}
	d := newTestDispatcher(sender)

	// Worker not started: the queue fills and further enqueues drop
	// instead of blocking.
	for i := 0; i < cap(d.jobs)+10; i++ {
		d.Enqueue(Notification{Channel: ChannelEmail, Recipient: "ana@acme.test"})
	}

	assert.Equal(t, cap(d.jobs), len(d.jobs))
}

func TestChannelSenderRejectsUnknownChannel(t *testing.T) {
	sender := &ChannelSender{}
	err := sender.Send(Notification{Channel: "pigeon"})
	require.Error(t, err)
}
