package kds

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/xgrece/bodegon/utils"
)

// KafkaRelay publishes record events to a Kafka topic. The writer is asynchronous:
// Notify never blocks a request on the broker.
type KafkaRelay struct {
	writer *kafka.Writer
}

func NewKafkaRelay(brokers []string, topic string) *KafkaRelay {
	return &KafkaRelay{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					utils.ErrorLogger.WithError(err).Errorf("kafka: %d events not delivered", len(messages))
				}
			},
		},
	}
}

// encodeEvent keys the message by event name so one event type stays on one partition.
func encodeEvent(msg Message) (kafka.Message, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(msg.Event),
		Value: value,
		Time:  time.Now(),
	}, nil
}

func (k *KafkaRelay) Notify(msg Message) {
	km, err := encodeEvent(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("kafka: marshal message")
		return
	}
	if err := k.writer.WriteMessages(context.Background(), km); err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Error("kafka: write")
	}
}

// Close flushes pending events.
func (k *KafkaRelay) Close() error {
	return k.writer.Close()
}
