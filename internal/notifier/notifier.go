package notifier

import (
	"github.com/google/uuid"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// WhatsappCreds is the per-company gateway configuration read from settings.
type WhatsappCreds struct {
	URL      string
	Token    string
	Instance string
}

type Notification struct {
	Channel   Channel
	Recipient string
	Subject   string
	Message   string
	Creds     WhatsappCreds
	CompanyID uuid.UUID
	VideoID   uuid.UUID
}

// Dispatcher accepts notifications for asynchronous delivery. Enqueue never
// blocks the caller and never reports delivery failures back.
type Dispatcher interface {
	Enqueue(n Notification)
}
