package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pillulu/internal/domain/evaluator"
	"pillulu/internal/domain/repository"
	"pillulu/internal/pkg/logger"
	"pillulu/internal/pkg/metrics"

	"golang.org/x/time/rate"
)

const (
	deliveryQueueSize = 1024
	deliveryTimeout   = 30 * time.Second
)

type deliveryService struct {
	channels []Channel
	userRepo repository.UserRepository
	limiter  *rate.Limiter
	log      logger.Logger

	queue   chan evaluator.Event
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDeliveryService creates a dispatcher for the given channels. Sends across
// all channels are throttled to ratePerSec.
func NewDeliveryService(channels []Channel, userRepo repository.UserRepository, ratePerSec float64, log logger.Logger) DeliveryService {
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &deliveryService{
		channels: channels,
		userRepo: userRepo,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), burst),
		log:      log,
		queue:    make(chan evaluator.Event, deliveryQueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches workers goroutines reading from the queue.
func (s *deliveryService) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	s.log.Info(fmt.Sprintf("Delivery started with %d workers and %d channels.", workers, len(s.channels)))
}

// Enqueue drops events when the queue is full or the service has stopped.
func (s *deliveryService) Enqueue(events []evaluator.Event) {
	if len(s.channels) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	for _, ev := range events {
		select {
		case s.queue <- ev:
		default:
			s.log.Warn(fmt.Sprintf("Delivery queue full, dropping notification %d", ev.Notification.ID))
			metrics.NotificationDeliveriesTotal.WithLabelValues("queue", "dropped").Inc()
		}
	}
}

// Stop closes the queue, lets the workers drain it, then cancels in-flight waits.
func (s *deliveryService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	s.cancel()
	s.log.Info("Delivery stopped.")
}

func (s *deliveryService) worker() {
	defer s.wg.Done()
	for ev := range s.queue {
		s.deliver(ev)
	}
}

func (s *deliveryService) deliver(ev evaluator.Event) {
	if ev.Notification == nil || ev.Notification.UserID == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, deliveryTimeout)
	defer cancel()

	userID := *ev.Notification.UserID
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			s.log.Warn(fmt.Sprintf("Owner %d of notification %d no longer exists", userID, ev.Notification.ID))
			return
		}
		s.log.Error(fmt.Sprintf("Failed to load owner %d of notification %d", userID, ev.Notification.ID), err)
		return
	}

	for _, ch := range s.channels {
		if !ch.Accepts(user) {
			metrics.NotificationDeliveriesTotal.WithLabelValues(ch.Name(), "skipped").Inc()
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			s.log.Error(fmt.Sprintf("Rate limiter error for notification %d", ev.Notification.ID), err)
			metrics.NotificationDeliveriesTotal.WithLabelValues(ch.Name(), "failed").Inc()
			continue
		}
		if err := ch.Deliver(ctx, user, ev); err != nil {
			s.log.Error(fmt.Sprintf("Failed to deliver notification %d via %s to user %d", ev.Notification.ID, ch.Name(), user.ID), err)
			metrics.NotificationDeliveriesTotal.WithLabelValues(ch.Name(), "failed").Inc()
			continue
		}
		metrics.NotificationDeliveriesTotal.WithLabelValues(ch.Name(), "sent").Inc()
		s.log.Debug(fmt.Sprintf("Delivered notification %d via %s to user %d", ev.Notification.ID, ch.Name(), user.ID))
	}
}
