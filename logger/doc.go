// Package logger provides structured logging for the pulse gateway,
// backed by zerolog. A process-wide default logger is initialized from
// config at startup; packages tag their own loggers with WithComponent.
package logger
