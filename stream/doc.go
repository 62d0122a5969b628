// Package stream implements the real-time fan-out layer of the pulse
// gateway: a process-local registry of open Server-Sent Events channels
// keyed by subscriber, a publisher that delivers transient events to every
// channel a subscriber has open, and the HTTP handlers that bind channels
// to long-lived responses.
//
// Events are never stored. A subscriber with no open channel at publish
// time simply never sees the event; reconnection and replay are entirely a
// client concern.
package stream
