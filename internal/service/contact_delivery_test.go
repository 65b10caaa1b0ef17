package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/models"
)

type publisherStub struct {
	subject string
	data    []byte
	err     error
}

func (p *publisherStub) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func TestNATSContactDeliveryPublishesEvent(t *testing.T) {
	publisher := &publisherStub{}
	delivery := NewNATSContactDelivery(publisher, "portfolio.contacts.received", testLogger())

	created := time.Date(2024, 2, 2, 8, 30, 0, 0, time.UTC)
	err := delivery.Deliver(context.Background(), models.ContactMessage{
		ID:        "abc",
		Name:      "Ada",
		Email:     "ada@x.com",
		Subject:   "Hi",
		Message:   "Hello",
		CreatedAt: created,
	}, true)
	require.NoError(t, err)
	require.Equal(t, "portfolio.contacts.received", publisher.subject)

	var event ContactEvent
	require.NoError(t, json.Unmarshal(publisher.data, &event))
	require.Equal(t, "abc", event.ID)
	require.Equal(t, "Hello", event.Message)
	require.Equal(t, "Hello", event.Preview)
	require.True(t, event.Persisted)
	require.True(t, event.CreatedAt.Equal(created))
}

func TestNATSContactDeliveryPreviewIsPlainText(t *testing.T) {
	publisher := &publisherStub{}
	delivery := NewNATSContactDelivery(publisher, "portfolio.contacts.received", testLogger())

	raw := "<b>Hello</b>   &amp; welcome\n<a href=\"https://x\">link</a>"
	require.NoError(t, delivery.Deliver(context.Background(), models.ContactMessage{Message: raw}, true))

	var event ContactEvent
	require.NoError(t, json.Unmarshal(publisher.data, &event))
	require.Equal(t, raw, event.Message)
	require.Equal(t, "Hello & welcome link", event.Preview)
}

func TestNATSContactDeliveryPreviewTruncates(t *testing.T) {
	publisher := &publisherStub{}
	delivery := NewNATSContactDelivery(publisher, "portfolio.contacts.received", testLogger())

	require.NoError(t, delivery.Deliver(context.Background(), models.ContactMessage{Message: strings.Repeat("é", 300)}, true))

	var event ContactEvent
	require.NoError(t, json.Unmarshal(publisher.data, &event))
	require.Equal(t, 140, utf8.RuneCountInString(event.Preview))
	require.True(t, strings.HasSuffix(event.Preview, "…"))
}

func TestNATSContactDeliveryWrapsPublishError(t *testing.T) {
	publisher := &publisherStub{err: errors.New("nats: connection closed")}
	delivery := NewNATSContactDelivery(publisher, "portfolio.contacts.received", testLogger())

	err := delivery.Deliver(context.Background(), models.ContactMessage{Name: "Ada"}, false)
	require.ErrorContains(t, err, "publish contact event")
	require.ErrorIs(t, err, publisher.err)
}

func TestLogContactDeliveryNeverFails(t *testing.T) {
	require.NoError(t, NewLogContactDelivery(testLogger()).Deliver(context.Background(), models.ContactMessage{}, false))
}
