package notifier

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Sender delivers a single notification over its channel.
type Sender interface {
	Send(n Notification) error
}

// ChannelSender routes notifications to the WhatsApp or email channel.
type ChannelSender struct {
	WhatsApp *WhatsAppClient
	Email    *EmailSender
}

func (c *ChannelSender) Send(n Notification) error {
	switch n.Channel {
	case ChannelWhatsApp:
		return c.WhatsApp.Send(n.Creds, n.Recipient, n.Message)
	case ChannelEmail:
		return c.Email.Send(n.Recipient, n.Subject, n.Message)
	default:
		return fmt.Errorf("unsupported channel type: %s", n.Channel)
	}
}

type job struct {
	notification Notification
	attempts     int
}

// QueueDispatcher drains an in-process queue on a background worker. Each
// job is retried with exponential backoff up to maxRetries; after that it is
// logged and dropped. Delivery never flows back into request handling.
type QueueDispatcher struct {
	jobs       chan job
	sender     Sender
	logger     *log.Logger
	maxRetries int
	backoff    func(attempt int) time.Duration
}

func NewQueueDispatcher(sender Sender, logger *log.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		jobs:       make(chan job, 256),
		sender:     sender,
		logger:     logger,
		maxRetries: 3,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

func (d *QueueDispatcher) Enqueue(n Notification) {
	select {
	case d.jobs <- job{notification: n}:
	default:
		d.logger.Printf("Notification queue full, dropping %s notification for video %s", n.Channel, n.VideoID)
	}
}

// Start runs the delivery worker until ctx is cancelled.
func (d *QueueDispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case j := <-d.jobs:
				d.process(ctx, j)
			}
		}
	}()
}

func (d *QueueDispatcher) process(ctx context.Context, j job) {
	for {
		err := d.sender.Send(j.notification)
		if err == nil {
			return
		}

		j.attempts++
		if j.attempts >= d.maxRetries {
			d.logger.Printf("Notification to %s failed after %d attempts: %v", j.notification.Recipient, j.attempts, err)
			return
		}

		d.logger.Printf("Notification to %s failed (attempt %d), retrying: %v", j.notification.Recipient, j.attempts, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.backoff(j.attempts)):
		}
	}
}
