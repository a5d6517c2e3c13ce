package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingWhatsAppSend      = Binding{Name: "whatsapp.send", Method: "POST", Path: "/whatsapp/send"}
	bindingWhatsAppTemplates = Binding{Name: "whatsapp.templates", Method: "GET", Path: "/whatsapp/templates"}
	bindingWhatsAppHistory   = Binding{Name: "whatsapp.history", Method: "GET", Path: "/whatsapp/history/{customer_id}"}
)

var whatsappBindings = []Binding{
	bindingWhatsAppSend,
	bindingWhatsAppTemplates,
	bindingWhatsAppHistory,
}

// WhatsAppGroup covers the /whatsapp endpoints.
type WhatsAppGroup struct {
	t *transport.Client
}

// WhatsAppSend is an outbound message request. Either Body or TemplateName
// is set, not both.
type WhatsAppSend struct {
	CustomerID   int64             `json:"customer_id"`
	Body         string            `json:"body,omitempty"`
	TemplateName string            `json:"template_name,omitempty"`
	Variables    map[string]string `json:"variables,omitempty"`
}

// WhatsAppMessage is one sent or received message.
type WhatsAppMessage struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Direction  string `json:"direction"` // "outbound" or "inbound"
	Body       string `json:"body"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// WhatsAppTemplate is a pre-approved message template.
type WhatsAppTemplate struct {
	Name      string   `json:"name"`
	Body      string   `json:"body"`
	Variables []string `json:"variables,omitempty"`
}

// Send queues a message to a customer.
func (g *WhatsAppGroup) Send(ctx context.Context, msg WhatsAppSend) (WhatsAppMessage, error) {
	return call[WhatsAppMessage](ctx, g.t, bindingWhatsAppSend, nil, nil, msg)
}

// Templates returns the approved template catalogue.
func (g *WhatsAppGroup) Templates(ctx context.Context) ([]WhatsAppTemplate, error) {
	return call[[]WhatsAppTemplate](ctx, g.t, bindingWhatsAppTemplates, nil, nil, nil)
}

// History returns the message log for a customer.
func (g *WhatsAppGroup) History(ctx context.Context, customerID int64) ([]WhatsAppMessage, error) {
	return call[[]WhatsAppMessage](ctx, g.t, bindingWhatsAppHistory, customerParam(customerID), nil, nil)
}
