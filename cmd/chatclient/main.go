package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type clientMessage struct {
	Message string `json:"message"`
}

type serverMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func main() {
	server := flag.String("server", "http://localhost:8080", "Server URL (http/https)")
	sessionID := flag.String("session", "", "Session ID to continue (optional)")
	flag.Parse()

	// Convert HTTP URL to WebSocket URL
	wsURL := strings.Replace(*server, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL += "/api/1.0/chat/ws"

	fmt.Println("ClinkBot chat client. Type /reset to start over, exit to quit.")

	reader := bufio.NewReader(os.Stdin)
	currentSessionID := *sessionID

	for {
		fmt.Print("\nYou: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.ToLower(input) == "exit" || strings.ToLower(input) == "quit" {
			fmt.Println("Goodbye!")
			return
		}
		if input == "/reset" {
			if err := reset(*server, currentSessionID); err != nil {
				fmt.Printf("Reset failed: %v\n", err)
			} else {
				fmt.Println("Conversation reset.")
			}
			continue
		}

		// Connect to WebSocket
		url := wsURL
		if currentSessionID != "" {
			url += "?session_id=" + currentSessionID
		}

		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			fmt.Printf("WebSocket connection failed: %v\n", err)
			continue
		}

		// Send message
		if err := conn.WriteJSON(clientMessage{Message: input}); err != nil {
			fmt.Printf("Failed to send message: %v\n", err)
			conn.Close()
			continue
		}

		// Read response
		fmt.Print("ClinkBot: ")
		for {
			var msg serverMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					break
				}
				fmt.Printf("\nError reading response: %v\n", err)
				break
			}

			switch msg.Type {
			case "text":
				fmt.Print(msg.Content)
			case "done":
				fmt.Println()
				currentSessionID = msg.SessionID
			case "error":
				fmt.Printf("\nError: %s\n", msg.Error)
			}

			if msg.Type == "done" || msg.Type == "error" {
				break
			}
		}

		conn.Close()
	}
}

func reset(serverURL, sessionID string) error {
	body, err := json.Marshal(resetRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := http.Post(serverURL+"/api/1.0/chat/reset", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reset failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
