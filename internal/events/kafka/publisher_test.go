package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/payables_ledger/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func settledEvent() portsevents.ObligationSettled {
	return portsevents.ObligationSettled{
		EventID:         "evt_1",
		Type:            portsevents.ObligationSettledType,
		ObligationID:    "obl_1",
		BankAccountID:   "bank_1",
		JournalEntryID:  "entry_1",
		Direction:       domain.Payable,
		Amount:          decimal.RequireFromString("150.00"),
		PreviousBalance: decimal.RequireFromString("500.00"),
		CurrentBalance:  decimal.RequireFromString("350.00"),
		SettledAt:       time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		SettledBy:       "user_1",
	}
}

func TestPublisher_PublishObligationSettled(t *testing.T) {
	writer := new(mockWriter)
	p := &Publisher{writer: writer}

	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	require.NoError(t, p.PublishObligationSettled(context.Background(), settledEvent()))

	require.Len(t, written, 1)
	assert.Equal(t, []byte("obl_1"), written[0].Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(written[0].Value, &decoded))
	assert.Equal(t, "obligation.settled", decoded["type"])
	assert.Equal(t, "entry_1", decoded["journalEntryID"])
	assert.Equal(t, "350", decoded["currentBalance"])
	writer.AssertExpectations(t)
}

func TestPublisher_WriteError(t *testing.T) {
	writer := new(mockWriter)
	p := &Publisher{writer: writer}
	brokerErr := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerErr).Once()

	err := p.PublishObligationSettled(context.Background(), settledEvent())

	assert.ErrorIs(t, err, brokerErr)
}

func TestNewPublisher_DefaultTopic(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "")

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultTopic, w.Topic)
}

func TestNewPublisher_FlushesWithoutWaitingForBatch(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "")

	writer, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultBatchTimeout, writer.BatchTimeout)
	assert.Less(t, writer.BatchTimeout, 100*time.Millisecond)
}
