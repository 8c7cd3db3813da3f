package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(topic string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewProducer(brokers, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		logrus.Warnf("Kafka connection failed: %v, using mock producer", err)
		return &mockProducer{}
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}

	if err := conn.CreateTopics(topicConfigs...); err != nil {
		logrus.Debugf("Could not create topic (might already exist): %v", err)
	}

	logrus.Infof("Kafka producer connected to %s", brokers)
	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) SendMessage(topic string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, msg)
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// Mock producer for running without a broker.
type mockProducer struct{}

func (m *mockProducer) SendMessage(topic string, message interface{}) error {
	logrus.Debugf("MOCK kafka: message to topic %s: %v", topic, message)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
