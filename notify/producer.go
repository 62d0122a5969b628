// Package notify is the producer surface of the fan-out layer. Request
// handlers that create likes, follows, comments, or messages construct
// their push events here and hand them to a best-effort Producer: a push
// that fails or finds nobody listening never aborts the caller's primary
// operation.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/pulse/logger"
	"github.com/skillsenselab/pulse/stream"
)

// Publisher is the delivery contract producers depend on, satisfied by
// *stream.Publisher.
type Publisher interface {
	Publish(family stream.Family, subscriberID string, evt stream.Event)
}

// Producer builds and publishes domain events with failure isolation.
type Producer struct {
	pub Publisher
	log *logger.Logger
}

// NewProducer creates a producer over the given publisher.
func NewProducer(pub Publisher, log *logger.Logger) *Producer {
	return &Producer{
		pub: pub,
		log: log.WithComponent("notify"),
	}
}

// Liked pushes a like notification to the liked content's owner.
func (p *Producer) Liked(targetID, actorID, what string) {
	p.publish(stream.FamilyNotifications, targetID, stream.NewEvent(stream.KindNotification,
		stream.NotificationPayload{
			ID:        uuid.New().String(),
			Type:      stream.NotificationLike,
			Title:     "New like",
			Content:   fmt.Sprintf("Someone liked your %s", what),
			ActorID:   actorID,
			CreatedAt: time.Now().UTC(),
		}))
}

// Followed pushes a follow notification to the followed user.
func (p *Producer) Followed(targetID, actorID string) {
	p.publish(stream.FamilyNotifications, targetID, stream.NewEvent(stream.KindNotification,
		stream.NotificationPayload{
			ID:        uuid.New().String(),
			Type:      stream.NotificationFollow,
			Title:     "New follower",
			ActorID:   actorID,
			CreatedAt: time.Now().UTC(),
		}))
}

// Commented pushes a comment notification to the commented post's owner.
func (p *Producer) Commented(targetID, actorID, excerpt string) {
	p.publish(stream.FamilyNotifications, targetID, stream.NewEvent(stream.KindNotification,
		stream.NotificationPayload{
			ID:        uuid.New().String(),
			Type:      stream.NotificationComment,
			Title:     "New comment",
			Content:   excerpt,
			ActorID:   actorID,
			CreatedAt: time.Now().UTC(),
		}))
}

// JobPosted pushes a job-opportunity notification.
func (p *Producer) JobPosted(targetID, title string) {
	p.publish(stream.FamilyNotifications, targetID, stream.NewEvent(stream.KindNotification,
		stream.NotificationPayload{
			ID:        uuid.New().String(),
			Type:      stream.NotificationJob,
			Title:     title,
			CreatedAt: time.Now().UTC(),
		}))
}

// UnreadCountChanged pushes the subscriber's new unread total.
func (p *Producer) UnreadCountChanged(targetID string, count int) {
	p.publish(stream.FamilyNotifications, targetID, stream.NewEvent(stream.KindUnreadCount,
		stream.UnreadCountPayload{Count: count}))
}

// MessageSent pushes a direct message to its recipient.
func (p *Producer) MessageSent(targetID, senderID, conversationID, content string) {
	p.publish(stream.FamilyMessages, targetID, stream.NewEvent(stream.KindMessage,
		stream.MessagePayload{
			ID:             uuid.New().String(),
			ConversationID: conversationID,
			SenderID:       senderID,
			Content:        content,
			SentAt:         time.Now().UTC(),
		}))
}

// publish delivers with failure isolation. A missing target is logged and
// dropped; a panic anywhere below is contained here so the calling
// handler's own transaction cannot be poisoned by the push path.
func (p *Producer) publish(family stream.Family, targetID string, evt stream.Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Push failed, swallowed at producer boundary", logger.Fields(
				logger.FieldFamily, string(family),
				logger.FieldSubscriberID, targetID,
				logger.FieldEventKind, string(evt.Kind),
				logger.FieldError, fmt.Sprintf("%v", r),
			))
		}
	}()

	if targetID == "" {
		p.log.Warn("Push dropped: no target subscriber", logger.Fields(
			logger.FieldFamily, string(family),
			logger.FieldEventKind, string(evt.Kind),
		))
		return
	}

	p.pub.Publish(family, targetID, evt)
}
