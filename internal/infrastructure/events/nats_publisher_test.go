package events

import (
	"context"
	"errors"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

type capturingConn struct {
	msgs []*nats.Msg
	err  error
}

func (c *capturingConn) PublishMsg(m *nats.Msg) error {
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, m)
	return nil
}

func TestNATSPublisher_Publish(t *testing.T) {
	t.Parallel()

	conn := &capturingConn{}
	pub := newPublisher(conn, " futbol.events. ", nil)
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), usecase.Event{Type: usecase.EventTeamRefreshed, TeamID: 13, Count: 25, OccurredAt: at})
	require.NoError(t, err)
	require.Len(t, conn.msgs, 1)

	msg := conn.msgs[0]
	require.Equal(t, "futbol.events.team.refreshed", msg.Subject)
	require.NotEmpty(t, msg.Header.Get(nats.MsgIdHdr))

	var decoded usecase.Event
	require.NoError(t, sonic.Unmarshal(msg.Data, &decoded))
	require.Equal(t, int64(13), decoded.TeamID)
	require.Equal(t, 25, decoded.Count)
	require.True(t, at.Equal(decoded.OccurredAt))
}

func TestNATSPublisher_DefaultPrefixAndErrors(t *testing.T) {
	t.Parallel()

	conn := &capturingConn{err: errors.New("nats: connection closed")}
	pub := newPublisher(conn, "", nil)
	require.Equal(t, "futbol.events.fixtures.refreshed", pub.Subject(usecase.EventFixturesRefreshed))

	err := pub.Publish(context.Background(), usecase.Event{Type: usecase.EventFixturesRefreshed, TeamID: 13})
	require.ErrorContains(t, err, "connection closed")

	require.Error(t, pub.Publish(context.Background(), usecase.Event{}))
	pub.Close()
}
