package service

import (
	"context"
	"fmt"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/evaluator"
	"pillulu/internal/infrastructure/mail"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

type emailChannel struct {
	sender  mail.Sender
	baseURL string
}

// NewEmailChannel delivers notifications as reminder emails.
func NewEmailChannel(sender mail.Sender, baseURL string) Channel {
	return &emailChannel{sender: sender, baseURL: baseURL}
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Accepts(user *entity.User) bool { return user.Email != "" }

func (c *emailChannel) Deliver(ctx context.Context, user *entity.User, ev evaluator.Event) error {
	var msg mail.Message
	switch ev.Notification.Type {
	case constant.NotificationTimeToTake:
		msg = mail.TimeToTake(user.Email, c.baseURL, ev.Medication.Name, ev.TimeOfDay)
	case constant.NotificationLowStock:
		msg = mail.LowStock(user.Email, c.baseURL, ev.Medication.Name, ev.StockCount, ev.Threshold)
	default:
		return fmt.Errorf("unsupported notification type %q", ev.Notification.Type)
	}
	return c.sender.Send(ctx, msg)
}

// LinePusher is the part of the LINE client used for delivery.
type LinePusher interface {
	PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error
}

type lineChannel struct {
	pusher LinePusher
}

// NewLineChannel delivers notifications as LINE push messages to linked accounts.
func NewLineChannel(pusher LinePusher) Channel {
	return &lineChannel{pusher: pusher}
}

func (c *lineChannel) Name() string { return "line" }

func (c *lineChannel) Accepts(user *entity.User) bool { return user.HasLine() }

func (c *lineChannel) Deliver(ctx context.Context, user *entity.User, ev evaluator.Event) error {
	text := ev.Notification.Title + "\n" + ev.Notification.Message
	return c.pusher.PushMessages(ctx, *user.LineUserID, linebot.NewTextMessage(text))
}
