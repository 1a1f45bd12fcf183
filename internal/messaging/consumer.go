package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	maxRetryAttempts = 3
	initialDelay     = 1 * time.Second
	maxDelay         = 30 * time.Second
)

type SSEClient struct {
	EmployeeID string
	Channel    chan *model.Notification
}

// SSEHub fans persisted notifications out to connected dashboard
// streams.
type SSEHub struct {
	clients    map[string][]*SSEClient
	register   chan *SSEClient
	unregister chan *SSEClient
	broadcast  chan *model.Notification
	mu         sync.RWMutex
}

func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients:    make(map[string][]*SSEClient),
		register:   make(chan *SSEClient),
		unregister: make(chan *SSEClient),
		broadcast:  make(chan *model.Notification, 100),
	}
}

func (h *SSEHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.EmployeeID] = append(h.clients[client.EmployeeID], client)
			h.mu.Unlock()
			log.Printf("sse: client registered for employee %s", client.EmployeeID)

		case client := <-h.unregister:
			h.mu.Lock()
			employeeClients := h.clients[client.EmployeeID]
			for i, c := range employeeClients {
				if c == client {
					h.clients[client.EmployeeID] = append(employeeClients[:i], employeeClients[i+1:]...)
					break
				}
			}
			h.mu.Unlock()
			close(client.Channel)
			log.Printf("sse: client unregistered for employee %s", client.EmployeeID)

		case notification := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[notification.EmployeeID]
			for _, client := range clients {
				select {
				case client.Channel <- notification:
				default:
					// channel full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *SSEHub) RegisterClient(employeeID string) *SSEClient {
	client := &SSEClient{
		EmployeeID: employeeID,
		Channel:    make(chan *model.Notification, 10),
	}
	h.register <- client
	return client
}

func (h *SSEHub) UnregisterClient(client *SSEClient) {
	h.unregister <- client
}

func (h *SSEHub) SendToEmployee(notification *model.Notification) {
	h.broadcast <- notification
}

// NotificationConsumer turns RabbitMQ events into persisted
// notifications and SSE pushes.
type NotificationConsumer struct {
	rmq              *RabbitMQ
	notificationRepo *repository.NotificationRepository
	sseHub           *SSEHub
	done             chan struct{}
	wg               sync.WaitGroup
}

func NewNotificationConsumer(rmq *RabbitMQ, notificationRepo *repository.NotificationRepository, sseHub *SSEHub) *NotificationConsumer {
	return &NotificationConsumer{
		rmq:              rmq,
		notificationRepo: notificationRepo,
		sseHub:           sseHub,
		done:             make(chan struct{}),
	}
}

func (c *NotificationConsumer) Start() {
	c.wg.Add(1)
	go c.consumeLoop()
	log.Println("consumer started")
}

func (c *NotificationConsumer) consumeLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			log.Println("consumer: stopping")
			return
		default:
			msgs, err := c.rmq.Consume()
			if err != nil {
				log.Printf("consumer: error %v, retrying in 5s...", err)
				time.Sleep(5 * time.Second)
				continue
			}

			log.Println("consumer: listening for messages")
			c.processMessages(msgs)
		}
	}
}

func (c *NotificationConsumer) processMessages(msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("consumer: channel closed, reconnecting...")
				return
			}
			c.processMessageWithRetry(msg)
		}
	}
}

func (c *NotificationConsumer) processMessageWithRetry(msg amqp.Delivery) {
	err := retry.Do(
		func() error {
			return c.handleMessage(msg)
		},
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("consumer: retry %d for %s: %v", n+1, msg.RoutingKey, err)
		}),
	)

	if err != nil {
		log.Printf("consumer: %s failed after retries: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
}

func (c *NotificationConsumer) handleMessage(msg amqp.Delivery) error {
	switch msg.RoutingKey {
	case RoutingKeyComplaintStatus:
		return c.handleComplaintStatus(msg)
	case RoutingKeyComplaintAssign:
		return c.handleComplaintAssigned(msg)
	case RoutingKeyEntryReviewed:
		return c.handleEntryReviewed(msg)
	default:
		log.Printf("consumer: unknown routing key %s", msg.RoutingKey)
		return nil
	}
}

func (c *NotificationConsumer) handleComplaintStatus(msg amqp.Delivery) error {
	var event ComplaintStatusMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("complaint_status: bad json: %v", err)
		return nil
	}

	// Only the assigned employee has anyone to notify; citizens file
	// complaints without accounts.
	if event.AssignedEmployeeID == "" {
		return nil
	}

	complaintID, err := uuid.Parse(event.ComplaintID)
	if err != nil {
		log.Printf("complaint_status: bad complaint_id: %v", err)
		return nil
	}

	notification := &model.Notification{
		ID:          uuid.New(),
		EmployeeID:  event.AssignedEmployeeID,
		ComplaintID: &complaintID,
		Title:       "Complaint status updated",
		Message:     fmt.Sprintf("Complaint in zone %s is now %s", event.Zone, event.NewStatus),
		IsRead:      false,
		CreatedAt:   time.Now(),
	}

	if err := c.notificationRepo.Create(notification); err != nil {
		return err
	}

	c.sseHub.SendToEmployee(notification)
	return nil
}

func (c *NotificationConsumer) handleComplaintAssigned(msg amqp.Delivery) error {
	var event ComplaintAssignedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("complaint_assigned: bad json: %v", err)
		return nil
	}

	complaintID, err := uuid.Parse(event.ComplaintID)
	if err != nil {
		log.Printf("complaint_assigned: bad complaint_id: %v", err)
		return nil
	}

	notification := &model.Notification{
		ID:          uuid.New(),
		EmployeeID:  event.EmployeeID,
		ComplaintID: &complaintID,
		Title:       "Complaint assigned to you",
		Message:     fmt.Sprintf("A complaint in zone %s, ward %s needs investigation", event.Zone, event.WardNumber),
		IsRead:      false,
		CreatedAt:   time.Now(),
	}

	if err := c.notificationRepo.Create(notification); err != nil {
		return err
	}

	c.sseHub.SendToEmployee(notification)
	return nil
}

func (c *NotificationConsumer) handleEntryReviewed(msg amqp.Delivery) error {
	var event EntryReviewedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("entry_reviewed: bad json: %v", err)
		return nil
	}

	entryID, err := uuid.Parse(event.EntryID)
	if err != nil {
		log.Printf("entry_reviewed: bad entry_id: %v", err)
		return nil
	}

	notification := &model.Notification{
		ID:         uuid.New(),
		EmployeeID: event.EmployeeID,
		EntryID:    &entryID,
		Title:      "Waste entry reviewed",
		Message:    fmt.Sprintf("Your %.1f kg %s entry was %s", event.AmountKg, event.WasteType, event.NewStatus),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := c.notificationRepo.Create(notification); err != nil {
		return err
	}

	c.sseHub.SendToEmployee(notification)
	return nil
}

func (c *NotificationConsumer) Stop() {
	close(c.done)
	c.wg.Wait()
	log.Println("consumer stopped")
}
