package stream

import "time"

// Kind identifies the event vocabulary the gateway pushes. Each kind has
// exactly one payload shape, checked at the producer boundary.
type Kind string

const (
	// KindConnected is the handshake frame sent on every stream open.
	KindConnected Kind = "connected"
	// KindNotification carries a domain notification (like, follow,
	// comment, job).
	KindNotification Kind = "notification"
	// KindUnreadCount announces a change to the subscriber's unread total.
	KindUnreadCount Kind = "unread-count"
	// KindMessage carries a direct message.
	KindMessage Kind = "message"
)

// Event is a typed, timestamped, serializable notification of a domain
// occurrence. Events are transient: created inside a producer's request
// handling, written during the same publish call, never persisted.
type Event struct {
	Kind       Kind      `json:"kind"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent stamps an event with the current time.
func NewEvent(kind Kind, payload any) Event {
	return Event{
		Kind:       kind,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// ConnectedPayload is the handshake payload confirming the stream is live.
type ConnectedPayload struct {
	UserID string `json:"userId"`
}

// NotificationType enumerates the notification sources the platform emits.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
	NotificationJob     NotificationType = "job"
	NotificationManual  NotificationType = "manual"
)

// NotificationPayload is the payload for KindNotification events.
type NotificationPayload struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Content   string           `json:"content,omitempty"`
	ActorID   string           `json:"actorId,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// UnreadCountPayload is the payload for KindUnreadCount events.
type UnreadCountPayload struct {
	Count int `json:"count"`
}

// MessagePayload is the payload for KindMessage events.
type MessagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId,omitempty"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sentAt"`
}
