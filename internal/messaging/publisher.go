package messaging

import (
	"strings"
)

const (
	// ActionSubject carries action requests from chat front ends.
	ActionSubject = "arcana.actions"
	// ActionQueue is the queue group action handlers share.
	ActionQueue = "arcana-engine"

	channelPrefix = "arcana.channel."
)

// ChannelSubject is the subject narration for a chat channel is published on.
// Characters NATS treats as separators or wildcards are replaced.
func ChannelSubject(channelID string) string {
	return channelPrefix + strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_").Replace(channelID)
}

// NatsPublisher publishes narration to per-channel NATS subjects.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-channel message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) PublishToChannel(channelID string, data []byte) error {
	return p.server.Publish(ChannelSubject(channelID), data)
}
