package event

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

// TicketProducer 發送 ticket created 事件
type TicketProducer interface {
	PublishTicketCreated(ctx context.Context, ticket *model.Ticket) error
	Close() error
}

type ticketProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

// TicketCreatedEvent kafka 訊息內容
type TicketCreatedEvent struct {
	Code             string             `json:"code"`
	PurchaseDatetime time.Time          `json:"purchase_datetime"`
	Amount           string             `json:"amount"`
	Purchaser        string             `json:"purchaser"`
	Items            []model.TicketItem `json:"items"`
}

func NewTicketProducer(brokers []string, topic string) TicketProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka ticket producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return &ticketProducer{
		writer: writer,
	}
}

func (p *ticketProducer) PublishTicketCreated(ctx context.Context, ticket *model.Ticket) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	payload, err := json.Marshal(TicketCreatedEvent{
		Code:             ticket.Code,
		PurchaseDatetime: ticket.PurchaseDatetime,
		Amount:           ticket.Amount.String(),
		Purchaser:        ticket.Purchaser,
		Items:            ticket.Items,
	})
	if err != nil {
		return err
	}

	// key 用 ticket code, 同一張 ticket 落在同一個 partition
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ticket.Code),
		Value: payload,
	})
}

func (p *ticketProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
