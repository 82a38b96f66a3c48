package httpapi

import "github.com/ManishR23/clink-chatbot/inventory"

//ChatResponse is the composed reply for one chat turn
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

//ResetResponse acknowledges a session reset
type ResetResponse struct {
	Status string `json:"status"`
}

//ListInventoryResponse contains the full catalog
type ListInventoryResponse struct {
	Items []*inventory.Record `json:"items"`
}
