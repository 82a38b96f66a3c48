package chatbot_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ManishR23/clink-chatbot/chatbot"
	"github.com/ManishR23/clink-chatbot/httpapi"
	"github.com/ManishR23/clink-chatbot/inventory"
)

// fakeAIServer stands in for the chat completions endpoint. reply receives
// the decoded request and returns the model text to send back
func fakeAIServer(t *testing.T, reply func(req *chatbot.ChatRequest) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatbot.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := chatbot.ChatResponse{
			ID: "chatcmpl-test",
			Choices: []chatbot.Choice{{
				Message:      chatbot.Message{Role: chatbot.RoleAssistant, Content: reply(&req)},
				FinishReason: "stop",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

// lastUserMessage returns the content of the trailing user message
func lastUserMessage(req *chatbot.ChatRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == chatbot.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}

func newTestBot(t *testing.T, ai *httptest.Server) (*chatbot.Bot, *chatbot.MemoryStore) {
	t.Helper()
	inv := testInventory(t)
	store := chatbot.NewMemoryStore(10*1024*1024, time.Hour)
	client := chatbot.NewAIClient(ai.URL, "test-model", "", 0.7)
	return chatbot.New(store, client, inv), store
}

func TestProcessTurnPassthrough(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return "Hi! What are you building?"
	})
	defer ai.Close()

	bot, _ := newTestBot(t, ai)

	reply, sessionID, err := bot.ProcessTurn(context.Background(), "", "hello")
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if reply != "Hi! What are you building?" {
		t.Errorf("Expected raw reply passed through, got %q", reply)
	}
	if sessionID == "" {
		t.Error("Expected a session ID")
	}
}

func TestProcessTurnDirective(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return `Happy to help! [calculate_cost(name="RedBrick", quantity=74)]`
	})
	defer ai.Close()

	bot, _ := newTestBot(t, ai)

	reply, _, err := bot.ProcessTurn(context.Background(), "", "How much for 74 red bricks?")
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	for _, want := range []string{"$37.00", "$55.50", "$18.50", "85", "$42.50", "$63.75", "$21.25"} {
		if !strings.Contains(reply, want) {
			t.Errorf("Expected reply to contain %q, got %q", want, reply)
		}
	}
	if strings.Contains(reply, "calculate_cost") {
		t.Errorf("Directive token leaked to the user: %q", reply)
	}
}

func TestProcessTurnDirectiveNotFound(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return `[calculate_cost(name="BlueBrick", quantity=10)]`
	})
	defer ai.Close()

	bot, _ := newTestBot(t, ai)

	reply, _, err := bot.ProcessTurn(context.Background(), "", "How much for blue bricks?")
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if !strings.Contains(reply, "BlueBrick") || !strings.Contains(reply, "Sorry") {
		t.Errorf("Expected apology naming the material, got %q", reply)
	}
	if strings.ContainsAny(reply, "0123456789$") {
		t.Errorf("Expected zero numeric content, got %q", reply)
	}
}

func TestProcessTurnDirectiveShortStock(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return `[calculate_cost(name="RedBrick", quantity=150)]`
	})
	defer ai.Close()

	bot, _ := newTestBot(t, ai)

	reply, _, err := bot.ProcessTurn(context.Background(), "", "How much for 150 red bricks?")
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	for _, want := range []string{"100 RedBrick", "$50.00", "remaining 50"} {
		if !strings.Contains(reply, want) {
			t.Errorf("Expected reply to contain %q, got %q", want, reply)
		}
	}
	if strings.Contains(reply, "Home Depot") || strings.Contains(reply, "sav") {
		t.Errorf("Expected no savings comparison on a partial quote, got %q", reply)
	}
}

func TestProcessTurnEmptyMessage(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		t.Error("Model must not be called for empty input")
		return ""
	})
	defer ai.Close()

	bot, store := newTestBot(t, ai)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, _, err := bot.ProcessTurn(context.Background(), "", message)
		if err == nil {
			t.Errorf("Expected error for message %q, got nil", message)
		}
	}

	//no transcript mutation on rejected input
	if sess, _ := store.Create(); len(sess.Messages) != 0 {
		t.Error("Expected store untouched by rejected input")
	}
}

func TestProcessTurnTranscript(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return fmt.Sprintf("reply to %q", lastUserMessage(req))
	})
	defer ai.Close()

	bot, store := newTestBot(t, ai)

	var sessionID string
	var err error
	for i, msg := range []string{"first", "second", "third"} {
		_, sessionID, err = bot.ProcessTurn(context.Background(), sessionID, msg)
		if err != nil {
			t.Fatalf("ProcessTurn %d failed: %v", i, err)
		}
	}

	sess, err := store.Get(sessionID)
	if err != nil || sess == nil {
		t.Fatalf("Could not load session: %v", err)
	}
	if len(sess.Messages) != 6 {
		t.Fatalf("Expected 6 transcript entries, got %d", len(sess.Messages))
	}
	if sess.Messages[0].Role != chatbot.RoleUser || sess.Messages[0].Content != "first" {
		t.Errorf("Unexpected first entry: %+v", sess.Messages[0])
	}
	if sess.Messages[5].Role != chatbot.RoleAssistant {
		t.Errorf("Unexpected last entry: %+v", sess.Messages[5])
	}
}

func TestReset(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return "ok"
	})
	defer ai.Close()

	bot, store := newTestBot(t, ai)
	recordsBefore := len(bot.Inventory().Records())

	var sessionID string
	var err error
	for i := 0; i < 3; i++ {
		_, sessionID, err = bot.ProcessTurn(context.Background(), sessionID, fmt.Sprintf("turn %d", i))
		if err != nil {
			t.Fatalf("ProcessTurn failed: %v", err)
		}
	}

	sess, _ := store.Get(sessionID)
	if len(sess.Messages) != 6 {
		t.Fatalf("Expected 6 transcript entries before reset, got %d", len(sess.Messages))
	}

	if err := bot.Reset(sessionID); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	sess, _ = store.Get(sessionID)
	if sess == nil || len(sess.Messages) != 0 {
		t.Fatalf("Expected empty transcript after reset, got %+v", sess)
	}

	//the inventory snapshot is unaffected
	if len(bot.Inventory().Records()) != recordsBefore {
		t.Error("Reset altered the inventory snapshot")
	}
	if rec := bot.Inventory().FindByName("RedBrick"); rec == nil || rec.Available != 100 {
		t.Errorf("Reset altered inventory record: %+v", rec)
	}
}

func TestSystemPromptSent(t *testing.T) {
	var gotSystem string
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		if len(req.Messages) > 0 && req.Messages[0].Role == chatbot.RoleSystem {
			gotSystem = req.Messages[0].Content
		}
		return "ok"
	})
	defer ai.Close()

	bot, _ := newTestBot(t, ai)

	if _, _, err := bot.ProcessTurn(context.Background(), "", "hello"); err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	for _, want := range []string{"ClinkBot", "RedBrick", "calculate_cost"} {
		if !strings.Contains(gotSystem, want) {
			t.Errorf("Expected system prompt to contain %q", want)
		}
	}
}

// HTTP API tests

func newTestServer(t *testing.T, ai *httptest.Server) *httptest.Server {
	t.Helper()
	bot, _ := newTestBot(t, ai)
	server := httptest.NewServer(httpapi.NewRouter(io.Discard, bot, bot.Inventory()))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Could not marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func TestHTTPChat(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return `[calculate_cost(name="RedBrick", quantity=74)]`
	})
	defer ai.Close()

	server := newTestServer(t, ai)

	resp, body := postJSON(t, server.URL+"/api/1.0/chat/", map[string]string{"message": "price for 74 red bricks?"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}

	var chatResp httpapi.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		t.Fatalf("Could not decode response: %v", err)
	}
	if chatResp.SessionID == "" {
		t.Error("Expected a session ID")
	}
	if !strings.Contains(chatResp.Reply, "$37.00") {
		t.Errorf("Expected a quote, got %q", chatResp.Reply)
	}
}

func TestHTTPChatEmptyMessage(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string { return "ok" })
	defer ai.Close()

	server := newTestServer(t, ai)

	resp, _ := postJSON(t, server.URL+"/api/1.0/chat/", map[string]string{"message": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty message, got %d", resp.StatusCode)
	}
}

func TestHTTPNullBody(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string { return "ok" })
	defer ai.Close()

	server := newTestServer(t, ai)

	//a body of null is valid JSON that decodes to a nil request
	for _, path := range []string{"/api/1.0/chat/", "/api/1.0/chat/reset"} {
		resp, err := http.Post(server.URL+path, "application/json", strings.NewReader("null"))
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400 for null body, got %d", path, resp.StatusCode)
		}
	}
}

func TestChatZeroTemperatureSent(t *testing.T) {
	var body []byte
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatbot.ChatResponse{
			Choices: []chatbot.Choice{{Message: chatbot.Message{Role: chatbot.RoleAssistant, Content: "ok"}, FinishReason: "stop"}},
		})
	}))
	defer ai.Close()

	client := chatbot.NewAIClient(ai.URL, "test-model", "", 0)
	if _, err := client.Chat(context.Background(), []chatbot.Message{{Role: chatbot.RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	//a deterministic temperature of 0 must reach the API explicitly
	if !strings.Contains(string(body), `"temperature":0}`) {
		t.Errorf("Expected explicit zero temperature in request, got %s", body)
	}
}

func TestHTTPChatUpstreamFailure(t *testing.T) {
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer ai.Close()

	server := newTestServer(t, ai)

	resp, body := postJSON(t, server.URL+"/api/1.0/chat/", map[string]string{"message": "hello"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500 for upstream failure, got %d", resp.StatusCode)
	}

	var errResp httpapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Expected a JSON error envelope, got %q", body)
	}
}

func TestHTTPReset(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string { return "ok" })
	defer ai.Close()

	server := newTestServer(t, ai)

	resp, body := postJSON(t, server.URL+"/api/1.0/chat/", map[string]string{"message": "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var chatResp httpapi.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		t.Fatalf("Could not decode response: %v", err)
	}

	resp, body = postJSON(t, server.URL+"/api/1.0/chat/reset", map[string]string{"session_id": chatResp.SessionID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "reset") {
		t.Errorf("Expected reset acknowledgement, got %s", body)
	}
}

func TestHTTPInventory(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string { return "ok" })
	defer ai.Close()

	server := newTestServer(t, ai)

	resp, err := http.Get(server.URL + "/api/1.0/inventory/")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var list httpapi.ListInventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("Could not decode response: %v", err)
	}
	if len(list.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(list.Items))
	}

	//case-insensitive single-record lookup
	resp2, err := http.Get(server.URL + "/api/1.0/inventory/redbrick")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp2.StatusCode)
	}

	var rec inventory.Record
	if err := json.NewDecoder(resp2.Body).Decode(&rec); err != nil {
		t.Fatalf("Could not decode response: %v", err)
	}
	if rec.Name != "RedBrick" {
		t.Errorf("Expected RedBrick, got %q", rec.Name)
	}

	resp3, err := http.Get(server.URL + "/api/1.0/inventory/nosuchitem")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp3.StatusCode)
	}
}

func TestWebSocketChat(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string {
		return `[calculate_cost(name="RedBrick", quantity=74)]`
	})
	defer ai.Close()

	server := newTestServer(t, ai)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/1.0/chat/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chatbot.ClientMessage{Message: "price for 74 red bricks?"}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var reply string
	var sessionID string
	for {
		var msg chatbot.ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read response: %v", err)
		}

		switch msg.Type {
		case chatbot.MessageTypeText:
			reply += msg.Content
		case chatbot.MessageTypeError:
			t.Fatalf("Received error: %s", msg.Error)
		}

		if msg.Type == chatbot.MessageTypeDone {
			sessionID = msg.SessionID
			break
		}
	}

	if !strings.Contains(reply, "$37.00") {
		t.Errorf("Expected a quote, got %q", reply)
	}
	if sessionID == "" {
		t.Error("Session ID is empty")
	}
}

func TestWebSocketEmptyMessage(t *testing.T) {
	ai := fakeAIServer(t, func(req *chatbot.ChatRequest) string { return "ok" })
	defer ai.Close()

	server := newTestServer(t, ai)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/1.0/chat/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chatbot.ClientMessage{Message: ""}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var msg chatbot.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}

	if msg.Type != chatbot.MessageTypeError {
		t.Errorf("Expected error message, got type=%s", msg.Type)
	}
}
