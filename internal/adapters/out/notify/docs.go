// Package notify contains the notification channels: email over SMTP, a
// log-backed SMS gateway and Kafka topics. Each channel implements
// notifications.Channel. BreakerChannel wraps any of them with a circuit
// breaker.
package notify
