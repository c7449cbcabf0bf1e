package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/jitter"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	outboxChannel        = "outbox_pending"
	notificationWait     = 30 * time.Second
	reconnectBackoff     = 2 * time.Second
	reconnectMaxBackoff  = 30 * time.Second
	staleProcessingAfter = 5 * time.Minute
)

// OutboxStore — outbox-репозиторий с возвратом зависших событий в очередь.
type OutboxStore interface {
	usecase.OutboxRepository
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// OutboxWorker публикует события outbox в Kafka. Разбор очереди запускается
// по NOTIFY, при старте и по таймеру на случай потерянного уведомления.
type OutboxWorker struct {
	repo      OutboxStore
	logger    logger.Logger
	producer  usecase.MessageProducer
	cfg       *cfg.OutboxCfg
	wake      chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo OutboxStore,
	logger logger.Logger,
	producer usecase.MessageProducer,
	cfg *cfg.OutboxCfg,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		cfg:       cfg,
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	w.wg.Add(3)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()

	go func() {
		defer w.wg.Done()
		defer cancel()
		select {
		case <-w.stop:
		case <-ctx.Done():
		}
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// notify будит цикл разбора, не блокируясь, если он уже разбужен.
func (w *OutboxWorker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *OutboxWorker) run(ctx context.Context) {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped")
			return
		case <-w.wake:
			w.drain(ctx)
		case <-ticker.C:
			if n, err := w.repo.ReleaseStale(ctx, staleProcessingAfter); err != nil {
				w.logger.Warnf("release stale outbox events failed: %v", err)
			} else if n > 0 {
				w.logger.Warnf("released %d stale outbox events", n)
			}
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			conn.Close(ctx)
			conn = nil
			return e.Wrap("failed to LISTEN", err)
		}

		w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
		return nil
	}

	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		if conn == nil {
			if err := connect(); err != nil {
				delay := jitter.ExponentialBackoff(reconnectBackoff, reconnectMaxBackoff, attempt, jitter.DefaultJitter)
				w.logger.Warnf("LISTEN connect failed: %v, retrying in %s", err, delay)
				attempt++
				if !sleep(ctx, delay) {
					return
				}
				continue
			}
			attempt = 0
			// пока соединения не было, уведомления могли потеряться
			w.notify()
		}

		waitCtx, cancel := context.WithTimeout(ctx, notificationWait)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			conn.Close(ctx)
			conn = nil
			continue
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("Received outbox notification")
			w.notify()
		}
	}
}

// processBatch отправляет пачку событий. Неотправленные остаются в processing
// и возвращаются в очередь через ReleaseStale.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.cfg.BatchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Errorf(err, "outbox event %s (%s) not published", event.EventID, event.EventType)
			if isRetryableError(err) {
				// брокер недоступен, остаток пачки подождёт следующего разбора
				return false, err
			}
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return len(events) == w.cfg.BatchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	req := usecase.NewWriteRawMessageReq(event.AggregateID.String(), string(event.EventType), event.Payload)
	if err := w.producer.WriteRawMessage(ctx, req); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
