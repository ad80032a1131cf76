package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener serves console sessions over ssh. Clients are not authenticated;
// the ssh user name, when it is a valid character name, is the identity.
// Otherwise the session prompts for one.
//
// A shell request starts an interactive session. An exec request runs its
// command line once as the ssh user and closes the channel, so
// `ssh -p 2222 alice@host profile` works from scripts.
type SshListener struct {
	addr    string
	console *Console
	hostKey ssh.Signer
}

func NewSshListener(addr string, console *Console, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		addr:    addr,
		console: console,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)

	listener, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "addr", l.addr)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	user := sshConn.User()
	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "user", user)

	// Closing the connection on cancel unblocks the channel loop below.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		var start sessionStart
		select {
		case start = <-awaitSession(requests):
		case <-ctx.Done():
			ch.Close()
			continue
		}

		rw := newCRLFReadWriter(ch)
		if start.exec {
			status := uint32(0)
			if err := l.console.RunLine(ctx, rw, user, start.command); err != nil {
				slog.WarnContext(ctx, "ssh exec", "user", user, "error", err)
				status = 1
			}
			sendExitStatus(ch, status)
		} else {
			l.console.AcceptConnection(ctx, rw, WithName(user))
		}
		ch.Close()
	}
}

type sessionStart struct {
	exec    bool
	command string
}

// awaitSession answers channel requests until the client asks for a shell or
// an exec. Clients won't forward input before that reply. Pty requests are
// refused so the client keeps local echo and line buffering.
func awaitSession(in <-chan *ssh.Request) <-chan sessionStart {
	out := make(chan sessionStart, 1)
	go func() {
		sent := false
		for req := range in {
			switch {
			case req.Type == "shell" && !sent:
				_ = req.Reply(true, nil)
				out <- sessionStart{}
				sent = true
			case req.Type == "exec" && !sent:
				cmd, ok := execCommand(req.Payload)
				_ = req.Reply(ok, nil)
				if ok {
					out <- sessionStart{exec: true, command: cmd}
					sent = true
				}
			default:
				_ = req.Reply(false, nil)
			}
		}
	}()
	return out
}

// execCommand decodes the command line of an exec request (RFC 4254 6.5).
func execCommand(payload []byte) (string, bool) {
	var msg struct {
		Command string
	}
	if err := ssh.Unmarshal(payload, &msg); err != nil {
		return "", false
	}
	return msg.Command, true
}

func sendExitStatus(ch ssh.Channel, status uint32) {
	payload := ssh.Marshal(struct{ Status uint32 }{status})
	_, _ = ch.SendRequest("exit-status", false, payload)
}
