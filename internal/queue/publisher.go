package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/lawshop/internal/logger"
    "github.com/iliyamo/lawshop/internal/model"
)

// Publisher sends order events to RabbitMQ. It dials once per message so a
// broker outage never holds a connection open inside a request; checkout
// only logs the returned error.
type Publisher struct {
    URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// OrderPlaced publishes a persistent OrderPlacedEvent for o.
func (p *Publisher) OrderPlaced(ctx context.Context, o model.Order) error {
    body, err := json.Marshal(NewOrderPlacedEvent(o))
    if err != nil {
        return err
    }

    conn, err := amqp.Dial(p.URL)
    if err != nil {
        logger.Error(ctx, "rabbitmq: dial failed", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        logger.Error(ctx, "rabbitmq: channel open failed", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
        logger.Error(ctx, "rabbitmq: queue declare failed", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", OrderPlacedQueue, false, false, pub); err != nil {
        logger.Error(ctx, "rabbitmq: publish failed", err, zap.String("order", o.OrderNumber))
        return err
    }
    logger.Debug(ctx, "order event published", zap.String("order", o.OrderNumber))
    return nil
}
