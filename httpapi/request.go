package httpapi

//ChatRequest is one chat turn. SessionID may be empty to start a new session
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

//ResetRequest discards a session's transcript
type ResetRequest struct {
	SessionID string `json:"session_id"`
}
