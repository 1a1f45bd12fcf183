package service

import (
	"errors"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/apperr"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/messaging"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"

	"github.com/google/uuid"
)

// NotificationStore is satisfied by repository.NotificationRepository.
type NotificationStore interface {
	GetByEmployeeID(employeeID string) ([]model.Notification, error)
	GetUnreadCount(employeeID string) (int, error)
	MarkAsRead(notificationID uuid.UUID, employeeID string) error
	MarkAllAsRead(employeeID string) error
}

type NotificationService struct {
	notificationRepo NotificationStore
	sseHub           *messaging.SSEHub
}

func NewNotificationService(notificationRepo NotificationStore, sseHub *messaging.SSEHub) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		sseHub:           sseHub,
	}
}

func (s *NotificationService) GetEmployeeNotifications(employeeID string) (*model.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	unreadCount, err := s.notificationRepo.GetUnreadCount(employeeID)
	if err != nil {
		return nil, err
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unreadCount,
	}, nil
}

func (s *NotificationService) MarkAsRead(notificationIDStr, employeeID string) error {
	notificationID, err := uuid.Parse(notificationIDStr)
	if err != nil {
		return apperr.InvalidArgument("Invalid notification ID")
	}

	if err := s.notificationRepo.MarkAsRead(notificationID, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Notification not found")
		}
		return err
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(employeeID string) error {
	return s.notificationRepo.MarkAllAsRead(employeeID)
}

func (s *NotificationService) RegisterClient(employeeID string) *messaging.SSEClient {
	return s.sseHub.RegisterClient(employeeID)
}

func (s *NotificationService) UnregisterClient(client *messaging.SSEClient) {
	s.sseHub.UnregisterClient(client)
}
