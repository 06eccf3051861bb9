package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pillulu/internal/application/service"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

const (
	lineWelcomeMessage  = "Welcome to Pillulu! Open Settings in the Pillulu app, tap \"Link LINE\" and send the code shown there to receive medication reminders here."
	lineHelpMessage     = "Send the 8-character link code from Pillulu Settings to link this LINE account."
	lineInvalidCode     = "That code is not valid or has already been used. Please create a new code in Pillulu Settings."
	lineLinkFailed      = "Sorry, linking failed. Please try again later."
	lineLinkedMessageFn = "✅ Linked to %s. Medication reminders will be sent here."
)

// LineBot is the part of the LINE client the webhook needs.
type LineBot interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
	SendMessages(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient LineBot
	userSvc    service.UserService
	log        logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(lineClient LineBot, userSvc service.UserService, log logger.Logger) *LineHandler {
	return &LineHandler{
		lineClient: lineClient,
		userSvc:    userSvc,
		log:        log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Info(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, event)
		default:
			h.log.Info(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleFollowEvent explains how to link an account.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	h.log.Info(fmt.Sprintf("User %s followed the bot.", event.Source.UserID))
	h.reply(ctx, event.ReplyToken, lineWelcomeMessage)
}

// handleUnfollowEvent unlinks the LINE account. No reply is possible.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s unfollowed or blocked the bot.", userID))
	// Error already logged by service
	_ = h.userSvc.UnlinkLine(ctx, userID)
}

// handleMessageEvent treats any text message as a link code.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	replyToken := event.ReplyToken

	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Info(fmt.Sprintf("Received non-text message type from %s", userID))
		h.reply(ctx, replyToken, lineHelpMessage)
		return
	}
	text := strings.TrimSpace(message.Text)
	if text == "" {
		h.reply(ctx, replyToken, lineHelpMessage)
		return
	}

	user, err := h.userSvc.LinkLine(ctx, text, userID)
	switch {
	case err == nil:
		h.reply(ctx, replyToken, fmt.Sprintf(lineLinkedMessageFn, user.Email))
	case errors.Is(err, appErrors.ErrInvalidLinkCode):
		h.log.Info(fmt.Sprintf("User %s sent an unknown link code", userID))
		h.reply(ctx, replyToken, lineInvalidCode)
	default:
		h.reply(ctx, replyToken, lineLinkFailed)
	}
}

func (h *LineHandler) reply(ctx context.Context, replyToken, text string) {
	if replyToken == "" {
		return
	}
	if err := h.lineClient.SendMessages(ctx, replyToken, linebot.NewTextMessage(text)); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send reply message: %s", text), err)
	}
}
