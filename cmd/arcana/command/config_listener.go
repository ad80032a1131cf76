package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/pixil98/go-arcana/internal/listener"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

type ListenerConfig struct {
	Protocol ListenerType `json:"protocol"`
	// Bind is the interface address to listen on; empty means all interfaces.
	Bind        string `json:"bind,omitempty"`
	Port        uint16 `json:"port"`
	HostKeyPath string `json:"host_key_path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Bind != "" && net.ParseIP(cl.Bind) == nil {
		el.Add(fmt.Errorf("bind %q is not an ip address", cl.Bind))
	}

	return el.Err()
}

// addListener builds the console listener and registers it under name.
func (cl *ListenerConfig) addListener(workers service.WorkerList, name string, console *listener.Console) error {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		workers[name] = listener.NewTelnetListener(cl.addr(), console)
	case ListenerTypeSSH:
		hostKey, err := cl.loadOrGenerateHostKey()
		if err != nil {
			return fmt.Errorf("setting up ssh host key: %w", err)
		}
		workers[name] = listener.NewSshListener(cl.addr(), console, hostKey)
	default:
		return fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
	return nil
}

func (cl *ListenerConfig) addr() string {
	return net.JoinHostPort(cl.Bind, strconv.Itoa(int(cl.Port)))
}

func (cl *ListenerConfig) loadOrGenerateHostKey() (ssh.Signer, error) {
	if cl.HostKeyPath != "" {
		keyBytes, err := os.ReadFile(cl.HostKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
		}
		return signer, nil
	}

	slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key")
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(privKey)
	if err != nil {
		return nil, fmt.Errorf("creating signer from ephemeral key: %w", err)
	}
	return signer, nil
}
