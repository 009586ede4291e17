// ABOUTME: Integration tests for the bridge server end-to-end functionality
// ABOUTME: Exercises the full TCP flow with a real socket and traffic log

package tests

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scenebridge/unity-bridge/internal/config"
	"github.com/scenebridge/unity-bridge/internal/db"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/jsonrpc"
	"github.com/scenebridge/unity-bridge/internal/management"
	"github.com/scenebridge/unity-bridge/internal/scene"
	"github.com/scenebridge/unity-bridge/internal/server"
)

type bridge struct {
	addr     string
	registry *scene.Registry
	database *db.DB
	mgmt     *httptest.Server
}

func startBridge(t *testing.T) *bridge {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "bridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := config.Default()
	cfg.Scene.Name = "IntegrationScene"
	cfg.Server.ReadTimeoutSeconds = 5

	registry := scene.NewRegistry(cfg.Scene.Name)
	dispatcher := dispatch.New(registry)

	tcpSrv := server.New(cfg.Server, dispatcher, database)
	require.NoError(t, tcpSrv.Listen("127.0.0.1:0"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = tcpSrv.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not shut down")
		}
	})

	mgmt := httptest.NewServer(management.NewServer(cfg, registry, dispatcher, database, tcpSrv.ActiveConnections))
	t.Cleanup(mgmt.Close)

	return &bridge{
		addr:     tcpSrv.Addr().String(),
		registry: registry,
		database: database,
		mgmt:     mgmt,
	}
}

func dial(t *testing.T, b *bridge) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", b.addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn net.Conn, request string) jsonrpc.Response {
	t.Helper()

	_, err := conn.Write([]byte(request))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 8192)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	var resp jsonrpc.Response
	require.NoError(t, json.Unmarshal(buf[:n], &resp), "response: %s", buf[:n])
	return resp
}

func result(t *testing.T, resp jsonrpc.Response) map[string]interface{} {
	t.Helper()

	require.Nil(t, resp.Error, "unexpected error envelope")
	var embedded string
	require.NoError(t, json.Unmarshal(resp.Result, &embedded), "result must be a JSON-encoded string")
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(embedded), &out))
	return out
}

func TestSceneInfoWithoutParams(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	resp := send(t, conn, `{"jsonrpc":"2.0","method":"get_scene_info","id":"1"}`)
	require.NotNil(t, resp.ID)
	require.Equal(t, `"1"`, string(*resp.ID))

	info := result(t, resp)
	require.Equal(t, "IntegrationScene", info["name"])
}

func TestCreateObjectFlow(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	resp := send(t, conn, `{"jsonrpc":"2.0","method":"create_object","params":{"type":"CUBE","name":"X"},"id":"2"}`)
	created := result(t, resp)
	require.Equal(t, true, created["success"])
	require.Equal(t, "X", created["name"])

	// The object is visible to a second, separate connection.
	conn2 := dial(t, b)
	resp = send(t, conn2, `{"jsonrpc":"2.0","method":"get_object_info","params":{"object_name":"X"},"id":"3"}`)
	info := result(t, resp)
	require.Equal(t, "CUBE", info["type"])
}

func TestValidationAndUnknownMethodErrors(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	// Missing required field names the field.
	resp := send(t, conn, `{"jsonrpc":"2.0","method":"create_object","params":{"name":"X"},"id":"1"}`)
	require.NotNil(t, resp.Error)
	require.Equal(t, jsonrpc.InternalError, resp.Error.Code)
	require.Contains(t, resp.Error.Message, "type")

	// Unknown method names the method.
	resp = send(t, conn, `{"jsonrpc":"2.0","method":"bogus_method","params":{"x":1},"id":"2"}`)
	require.NotNil(t, resp.Error)
	require.Equal(t, "Unknown method: bogus_method", resp.Error.Message)

	// Handler miss mentions the object and "not found".
	resp = send(t, conn, `{"jsonrpc":"2.0","method":"set_material","params":{"object_name":"X","color":[1,0,0]},"id":"3"}`)
	require.NotNil(t, resp.Error)
	require.Contains(t, resp.Error.Message, "X")
	require.Contains(t, resp.Error.Message, "not found")
}

func TestSequentialRequestsOneResponseEach(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	names := []string{"A", "B", "C", "D", "E", "F"}
	for i, name := range names {
		resp := send(t, conn, `{"jsonrpc":"2.0","method":"create_object","params":{"type":"SPHERE","name":"`+name+`"},"id":"`+name+`"}`)
		created := result(t, resp)
		require.Equal(t, name, created["name"], "request %d", i)
	}

	snap := b.registry.Snapshot()
	require.Equal(t, len(names), snap.ObjectCount)
}

func TestConnectionIsolation(t *testing.T) {
	b := startBridge(t)
	connA := dial(t, b)
	connB := dial(t, b)

	// A's failures never disturb B.
	resp := send(t, connA, `{"jsonrpc":"2.0","method":"delete_object","params":{"name":"Ghost"},"id":"a1"}`)
	require.NotNil(t, resp.Error)

	resp = send(t, connB, `{"jsonrpc":"2.0","method":"create_object","params":{"type":"CUBE","name":"FromB"},"id":"b1"}`)
	created := result(t, resp)
	require.Equal(t, "FromB", created["name"])

	// A keeps working after its own error.
	resp = send(t, connA, `{"jsonrpc":"2.0","method":"get_object_info","params":{"object_name":"FromB"},"id":"a2"}`)
	info := result(t, resp)
	require.Equal(t, "FromB", info["name"])
}

func TestFullSceneBuild(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	steps := []string{
		`{"jsonrpc":"2.0","method":"create_camera","params":{"camera_type":"main","position":[0,5,-10]},"id":"1"}`,
		`{"jsonrpc":"2.0","method":"create_light","params":{"lightType":"directional","intensity":1.2},"id":"2"}`,
		`{"jsonrpc":"2.0","method":"create_terrain","params":{"width":100,"length":100},"id":"3"}`,
		`{"jsonrpc":"2.0","method":"create_object","params":{"type":"CUBE","name":"Crate","location":[0,0.5,0]},"id":"4"}`,
		`{"jsonrpc":"2.0","method":"set_material","params":{"object_name":"Crate","color":[0.6,0.4,0.2]},"id":"5"}`,
		`{"jsonrpc":"2.0","method":"add_rigidbody","params":{"object_name":"Crate","mass":10},"id":"6"}`,
		`{"jsonrpc":"2.0","method":"apply_force","params":{"object_name":"Crate","force":[0,100,0],"mode":"impulse"},"id":"7"}`,
		`{"jsonrpc":"2.0","method":"create_skybox","params":{"type":"sunset"},"id":"8"}`,
	}
	for i, step := range steps {
		resp := send(t, conn, step)
		require.Nil(t, resp.Error, "step %d failed: %+v", i, resp.Error)
	}

	resp := send(t, conn, `{"jsonrpc":"2.0","method":"get_scene_info","id":"9"}`)
	info := result(t, resp)
	require.Equal(t, float64(4), info["object_count"])
	require.Equal(t, "sunset", info["skybox"])
}

func TestSoftFailCodeExecution(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	resp := send(t, conn, `{"jsonrpc":"2.0","method":"execute_unity_code","params":{"code":"var x = 1;"},"id":"1"}`)
	out := result(t, resp)
	require.Equal(t, true, out["success"])
	require.NotEmpty(t, out["warning"])
}

func TestTrafficLogAndManagementAPI(t *testing.T) {
	b := startBridge(t)
	conn := dial(t, b)

	send(t, conn, `{"jsonrpc":"2.0","method":"create_object","params":{"type":"CUBE","name":"Logged"},"id":"1"}`)

	// The response row is written after the reply hits the socket, so give
	// the session goroutine a moment to finish logging.
	var messages []db.Message
	require.Eventually(t, func() bool {
		var err error
		messages, err = b.database.RecentMessages(10)
		return err == nil && len(messages) == 2
	}, 2*time.Second, 10*time.Millisecond, "expected one request and one response row")
	require.Equal(t, "create_object", messages[1].Method)

	resp, err := http.Get(b.mgmt.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "healthy", health["status"])
	require.Equal(t, float64(1), health["object_count"])

	sceneResp, err := http.Get(b.mgmt.URL + "/api/scene")
	require.NoError(t, err)
	defer sceneResp.Body.Close()

	var snap scene.Snapshot
	require.NoError(t, json.NewDecoder(sceneResp.Body).Decode(&snap))
	require.Equal(t, "Logged", snap.Objects[0].Name)
}
