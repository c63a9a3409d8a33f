package feed

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	core "github.com/cardiomon/cardiomon/core"
)

func Test_PublishReachesConnectedClient(t *testing.T) {
	srv, err := Listen(0)
	require.NoError(t, err)
	defer srv.Close()

	go srv.Serve()

	conn, err := net.Dial("tcp", srv.ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	// Give Serve a moment to register the client before publishing.
	time.Sleep(20 * time.Millisecond)

	srv.Publish(core.Result{SampleIndex: 42, IsQRS: true})

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)

	var got core.Result
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	require.Equal(t, 42, got.SampleIndex)
	require.True(t, got.IsQRS)
}
