package notify

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smtpSession struct {
	auth string
	from string
	rcpt string
	data string
}

// fakeSMTPServer accepts one connection and speaks just enough SMTP for
// net/smtp's client: no extensions, PLAIN auth always succeeds.
func fakeSMTPServer(t *testing.T) (host, port string, sessions <-chan smtpSession) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan smtpSession, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		r := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
		reply("220 fake ESMTP")

		var s smtpSession
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
			switch verb {
			case "EHLO", "HELO":
				reply("250 fake")
			case "AUTH":
				s.auth = line
				reply("235 ok")
			case "MAIL":
				s.from = line
				reply("250 ok")
			case "RCPT":
				s.rcpt = line
				reply("250 ok")
			case "DATA":
				reply("354 go ahead")
				var body strings.Builder
				for {
					dl, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if dl == ".\r\n" {
						break
					}
					body.WriteString(dl)
				}
				s.data = body.String()
				reply("250 queued")
			case "QUIT":
				reply("221 bye")
				out <- s
				return
			default:
				reply("502 unsupported")
			}
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port, out
}

// silentServer accepts connections and never writes a greeting.
func silentServer(t *testing.T) (host, port string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, conn)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port
}

func TestEmailChannel_SendsViaSMTP(t *testing.T) {
	host, port, sessions := fakeSMTPServer(t)
	ch := NewEmailChannel(SMTPConfig{
		Host:     host,
		Port:     port,
		Username: "bot",
		Password: "secret",
		From:     "orders@local",
	}, slog.New(slog.DiscardHandler))

	err := ch.Send(t.Context(), "a@x.com", testMessage())
	require.NoError(t, err)

	select {
	case s := <-sessions:
		assert.True(t, strings.HasPrefix(s.auth, "AUTH PLAIN "))
		assert.Equal(t, "MAIL FROM:<orders@local>", strings.SplitN(s.from, " BODY", 2)[0])
		assert.Equal(t, "RCPT TO:<a@x.com>", s.rcpt)
		assert.Contains(t, s.data, "Subject: Order 42: ORDER_CREATED\r\n")
		assert.Contains(t, s.data, "To: a@x.com\r\n")
	case <-time.After(2 * time.Second):
		t.Fatal("smtp session did not complete")
	}
}

func TestEmailChannel_WrapsDialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	ch := NewEmailChannel(SMTPConfig{Host: "mail.local", Port: "25"}, slog.New(slog.DiscardHandler))
	ch.dial = func(context.Context, string, string) (net.Conn, error) { return nil, dialErr }

	err := ch.Send(t.Context(), "a@x.com", testMessage())

	require.ErrorIs(t, err, dialErr)
	assert.Contains(t, err.Error(), "a@x.com")
}

func TestEmailChannel_SilentServerHonoursContextDeadline(t *testing.T) {
	host, port := silentServer(t)
	ch := NewEmailChannel(SMTPConfig{Host: host, Port: port, Timeout: time.Minute}, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := ch.Send(ctx, "a@x.com", testMessage())

	require.Error(t, err)
	assert.Less(t, time.Since(started), time.Second)
}

func TestEmailChannel_SilentServerHonoursConfiguredTimeout(t *testing.T) {
	host, port := silentServer(t)
	ch := NewEmailChannel(SMTPConfig{Host: host, Port: port, Timeout: 150 * time.Millisecond}, slog.New(slog.DiscardHandler))

	started := time.Now()
	err := ch.Send(t.Context(), "a@x.com", testMessage())

	require.Error(t, err)
	assert.Less(t, time.Since(started), time.Second)
}

func TestNewEmailChannel_DefaultsTimeout(t *testing.T) {
	ch := NewEmailChannel(SMTPConfig{}, slog.New(slog.DiscardHandler))

	assert.Equal(t, DefaultSMTPTimeout, ch.cfg.Timeout)
}
