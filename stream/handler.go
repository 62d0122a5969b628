package stream

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/pulse/auth"
	apperrors "github.com/skillsenselab/pulse/errors"
	"github.com/skillsenselab/pulse/logger"
	"github.com/skillsenselab/pulse/server"
	"github.com/skillsenselab/pulse/validation"
)

// Handler serves the subscriber-facing stream endpoints and the manual
// trigger endpoint for each event family.
type Handler struct {
	hub *Hub
	log *logger.Logger
}

// NewHandler creates a handler over the hub.
func NewHandler(hub *Hub, log *logger.Logger) *Handler {
	return &Handler{
		hub: hub,
		log: log.WithComponent("stream-handler"),
	}
}

// RegisterRoutes mounts per-family stream and trigger routes under
// /api/v1. Identity resolution happens in middleware, so no channel is
// ever allocated for an anonymous caller.
func (h *Handler) RegisterRoutes(r gin.IRouter, svc *auth.Service) {
	allowQuery := h.hub.Config().AllowQueryIdentity
	for _, family := range Families() {
		grp := r.Group("/api/v1/" + string(family))
		grp.GET("/stream", auth.Identity(svc, allowQuery), h.stream(family))
		grp.POST("/trigger", auth.Identity(svc, allowQuery), h.trigger(family))
	}
}

// stream binds one subscriber's long-lived response to a fresh channel:
// register, handshake, then hold open until the peer disconnects or the
// hub shuts down. Cleanup is synchronous with disconnect; a stale entry
// would make every later publish attempt a doomed write.
func (h *Handler) stream(family Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		subscriberID := auth.SubscriberID(c)

		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			server.RespondWithError(c, apperrors.StreamingUnsupported())
			return
		}

		// The server's WriteTimeout would sever the stream; clear the
		// deadline for this response only.
		rc := http.NewResponseController(c.Writer)
		if err := rc.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Warn("Could not clear write deadline", logger.Fields(
				logger.FieldSubscriberID, subscriberID,
				logger.FieldError, err.Error(),
			))
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		ch := NewChannel(h.hub.Config().ChannelBuffer)
		h.hub.Registry().Add(family, subscriberID, ch)
		h.hub.metrics.ChannelOpened(family)
		defer func() {
			h.hub.Registry().Remove(family, subscriberID, ch)
			ch.Close()
			h.hub.metrics.ChannelClosed(family)
			h.log.Debug("Stream closed", logger.Fields(
				logger.FieldFamily, string(family),
				logger.FieldSubscriberID, subscriberID,
				logger.FieldChannelID, ch.ID(),
			))
		}()

		// Handshake frame, before any published event can reach this
		// channel. Every stream open gets its own.
		handshake, err := Encode(NewEvent(KindConnected, ConnectedPayload{UserID: subscriberID}))
		if err != nil {
			return
		}
		if _, err := c.Writer.Write(handshake); err != nil {
			return
		}
		flusher.Flush()

		h.log.Debug("Stream opened", logger.Fields(
			logger.FieldFamily, string(family),
			logger.FieldSubscriberID, subscriberID,
			logger.FieldChannelID, ch.ID(),
			"remote_addr", c.Request.RemoteAddr,
		))

		keepAlive := time.NewTicker(time.Duration(h.hub.Config().KeepAliveSeconds) * time.Second)
		defer keepAlive.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch.Done():
				return
			case frame := <-ch.Frames():
				if _, err := c.Writer.Write(frame); err != nil {
					return
				}
				flusher.Flush()
			case now := <-keepAlive.C:
				if _, err := c.Writer.Write(KeepAliveFrame(now)); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// TriggerRequest is the manual push body. Kind is restricted to the
// producer vocabulary; the connected handshake cannot be forged through
// this endpoint.
type TriggerRequest struct {
	Kind               string `json:"kind" validate:"required,oneof=notification message unread-count"`
	Title              string `json:"title" validate:"required,max=200"`
	Content            string `json:"content" validate:"max=2000"`
	TargetSubscriberID string `json:"targetSubscriberId" validate:"max=128"`
}

// TriggerResponse echoes the constructed event back as confirmation.
type TriggerResponse struct {
	Target string `json:"target"`
	Event  Event  `json:"event"`
}

// trigger constructs an event from the request body and publishes it.
// Validation happens before any registry lookup. Unless cross-user
// triggering is enabled in config, the target is forced to the caller.
func (h *Handler) trigger(family Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := auth.SubscriberID(c)

		var req TriggerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.RespondWithError(c, apperrors.Validation("Request body must be valid JSON.").WithCause(err))
			return
		}
		if err := validation.Validate(req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		target := req.TargetSubscriberID
		if target == "" || !h.hub.Config().AllowCrossUserTrigger {
			target = caller
		}

		evt := buildTriggerEvent(req, caller)
		h.hub.Publisher().Publish(family, target, evt)

		server.RespondCreated(c, TriggerResponse{Target: target, Event: evt})
	}
}

func buildTriggerEvent(req TriggerRequest, caller string) Event {
	now := time.Now().UTC()
	switch Kind(req.Kind) {
	case KindMessage:
		return NewEvent(KindMessage, MessagePayload{
			ID:       uuid.New().String(),
			SenderID: caller,
			Content:  req.Content,
			SentAt:   now,
		})
	case KindUnreadCount:
		return NewEvent(KindUnreadCount, UnreadCountPayload{Count: 1})
	default:
		return NewEvent(KindNotification, NotificationPayload{
			ID:        uuid.New().String(),
			Type:      NotificationManual,
			Title:     req.Title,
			Content:   req.Content,
			ActorID:   caller,
			CreatedAt: now,
		})
	}
}
