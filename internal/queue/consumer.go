package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/lawshop/internal/logger"
)

// OrderLogFile is the file name the consumer appends to inside its directory.
const OrderLogFile = "orders.log"

// StartOrderConsumer connects to RabbitMQ, declares the order queue and
// appends one line per event to <dir>/orders.log. It reconnects with
// exponential backoff until ctx is cancelled and then returns ctx.Err().
// A message that cannot be handled is rejected without requeue.
func StartOrderConsumer(ctx context.Context, url, dir string) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            logger.Warn(ctx, "order-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, dir)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warn(ctx, "order-consumer: consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, dir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warn(ctx, "order-consumer: set QoS failed", zap.Error(err))
    }
    if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(OrderPlacedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := HandleMessage(dir, d.Body); err != nil {
                logger.Error(ctx, "order-consumer: handle message failed", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one event and appends its log line to dir.
func HandleMessage(dir string, body []byte) error {
    var ev OrderPlacedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.OrderNumber == "" {
        return errors.New("event without order number")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    f, err := os.OpenFile(filepath.Join(dir, OrderLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders an event as a single human-readable line. Totals are
// listed in currency order.
func FormatLine(ev OrderPlacedEvent) string {
    currencies := make([]string, 0, len(ev.TotalsByCurrency))
    for c := range ev.TotalsByCurrency {
        currencies = append(currencies, c)
    }
    sort.Strings(currencies)
    totals := make([]string, 0, len(currencies))
    for _, c := range currencies {
        totals = append(totals, fmt.Sprintf("%.2f %s", ev.TotalsByCurrency[c], c))
    }

    return fmt.Sprintf("[%s] Order placed | order=%s | order_id=%s | user_id=%s | items=%d | totals=[%s] | titles=[%s]\n",
        ev.PlacedAt, ev.OrderNumber, ev.OrderID, ev.UserID, ev.ItemCount, strings.Join(totals, ", "), strings.Join(ev.Titles, ","))
}
