//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// Op codes of the hearts match.
const (
	OpStartGame     int64 = 1
	OpPlayCard      int64 = 2
	OpTableSnapshot int64 = 100
	OpGameStarted   int64 = 101
	OpHandDealt     int64 = 102
	OpCardPlayed    int64 = 103
)

type MatchData struct {
	OpCode int64
	Fields map[string]interface{}
}

type TestClient struct {
	Token  string
	UserID string
	conn   *websocket.Conn
	cid    atomic.Int64
	data   chan MatchData
	joined chan string
}

func baseURL() string {
	return fmt.Sprintf("http://%s:%d", Host, Port)
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())
	body, _ := json.Marshal(map[string]string{"id": deviceID})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, baseURL()+"/v2/account/authenticate/device?create=true", bytes.NewReader(body))
	req.SetBasicAuth(ServerKey, "")
	req.Header.Set("Content-Type", "application/json")

	var session struct {
		Token string `json:"token"`
	}
	if err := doJSON(req, &session); err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	wsURL := fmt.Sprintf("ws://%s:%d/ws?lang=en&status=true&format=json&token=%s", Host, Port, url.QueryEscape(session.Token))
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}

	tc := &TestClient{
		Token:  session.Token,
		conn:   conn,
		data:   make(chan MatchData, 256),
		joined: make(chan string, 1),
	}
	go tc.readLoop()
	return tc
}

func doJSON(req *http.Request, out interface{}) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (tc *TestClient) Close() {
	if tc.conn != nil {
		tc.conn.Close()
	}
}

func (tc *TestClient) readLoop() {
	defer close(tc.data)
	for {
		var envelope struct {
			Match *struct {
				MatchID string `json:"match_id"`
				Self    struct {
					UserID string `json:"user_id"`
				} `json:"self"`
			} `json:"match"`
			MatchData *struct {
				OpCode string `json:"op_code"`
				Data   string `json:"data"`
			} `json:"match_data"`
		}
		if err := tc.conn.ReadJSON(&envelope); err != nil {
			return
		}
		switch {
		case envelope.Match != nil:
			tc.UserID = envelope.Match.Self.UserID
			tc.joined <- envelope.Match.MatchID
		case envelope.MatchData != nil:
			op, _ := strconv.ParseInt(envelope.MatchData.OpCode, 10, 64)
			raw, _ := base64.StdEncoding.DecodeString(envelope.MatchData.Data)
			fields := map[string]interface{}{}
			_ = json.Unmarshal(raw, &fields)
			tc.data <- MatchData{OpCode: op, Fields: fields}
		}
	}
}

func (tc *TestClient) send(msg map[string]interface{}) error {
	msg["cid"] = strconv.FormatInt(tc.cid.Add(1), 10)
	return tc.conn.WriteJSON(msg)
}

// QuickMatch calls the quick_match RPC and returns the match id.
func (tc *TestClient) QuickMatch(t *testing.T) string {
	t.Helper()
	payload, _ := json.Marshal("{}")
	req, _ := http.NewRequest(http.MethodPost, baseURL()+"/v2/rpc/quick_match", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+tc.Token)
	req.Header.Set("Content-Type", "application/json")

	var rpc struct {
		Payload string `json:"payload"`
	}
	if err := doJSON(req, &rpc); err != nil {
		t.Fatalf("RPC quick_match failed: %v", err)
	}
	var resp struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil || resp.MatchID == "" {
		t.Fatalf("RPC quick_match returned %q: %v", rpc.Payload, err)
	}
	return resp.MatchID
}

func (tc *TestClient) JoinMatch(t *testing.T, matchID string) {
	t.Helper()
	if err := tc.send(map[string]interface{}{"match_join": map[string]string{"match_id": matchID}}); err != nil {
		t.Fatalf("Failed to join match %s: %v", matchID, err)
	}
	select {
	case <-tc.joined:
	case <-time.After(5 * time.Second):
		t.Fatalf("Timeout joining match %s", matchID)
	}
}

func (tc *TestClient) SendMatchState(t *testing.T, matchID string, opCode int64, fields map[string]interface{}) {
	t.Helper()
	raw, _ := json.Marshal(fields)
	err := tc.send(map[string]interface{}{"match_data_send": map[string]interface{}{
		"match_id": matchID,
		"op_code":  strconv.FormatInt(opCode, 10),
		"data":     base64.StdEncoding.EncodeToString(raw),
	}})
	if err != nil {
		t.Fatalf("Failed to send op %d: %v", opCode, err)
	}
}

// WaitFor drains match data until opCode arrives.
func (tc *TestClient) WaitFor(t *testing.T, opCode int64, timeout time.Duration) MatchData {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-tc.data:
			if !ok {
				t.Fatalf("Socket closed waiting for OpCode %d", opCode)
			}
			if msg.OpCode == opCode {
				return msg
			}
		case <-deadline:
			t.Fatalf("Timeout waiting for OpCode %d", opCode)
		}
	}
}
