package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain/activity"
	"tracker/internal/shared/logger"
)

type fakeChannel struct {
	keys   []string
	msgs   []amqp.Publishing
	err    error
	closed bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, exchange+"|"+key)
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func recordedEvent(t *testing.T) activity.RecordedEvent {
	t.Helper()
	newValue := "Bob Builder"
	e, err := activity.NewEntry(3, 1, activity.ActionAssigned, nil, &newValue, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, e.SetID(11))
	return activity.NewRecordedEvent(e, "TKT-2026-0003")
}

func TestAMQPPublisher_Handle(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisherWithChannel(ch, DefaultActivityQueue, logger.NewNopLogger())

	require.NoError(t, p.Handle(context.Background(), recordedEvent(t)))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "|ticket.activity", ch.keys[0])
	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, activity.EventTypeRecorded, msg.Type)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "TKT-2026-0003", body["ticket_number"])
	assert.Equal(t, "assigned", body["action"])
	assert.Equal(t, "Bob Builder", body["new_value"])
	assert.NotContains(t, body, "old_value")
}

func TestAMQPPublisher_HandleError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := newAMQPPublisherWithChannel(ch, DefaultActivityQueue, logger.NewNopLogger())

	err := p.Handle(context.Background(), recordedEvent(t))
	assert.ErrorIs(t, err, amqp.ErrClosed)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
