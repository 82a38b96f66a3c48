package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ManishR23/clink-chatbot/chatbot"
)

//handleChat processes one chat turn: the message is forwarded to the model
//with the session transcript, and the post-processed reply is returned along
//with the session ID
func handleChat(bot *chatbot.Bot) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var req *ChatRequest
		d := json.NewDecoder(r.Body)
		if err := d.Decode(&req); err != nil || req == nil {
			return handleError(http.StatusBadRequest, fmt.Errorf("Could not decode json: %v", err))
		}

		reply, sessionID, err := bot.ProcessTurn(r.Context(), req.SessionID, req.Message)
		if resp := checkError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: &ChatResponse{SessionID: sessionID, Reply: reply}}
	}
}

//handleResetChat discards the session's transcript. Resetting an unknown
//session succeeds: the result either way is an empty transcript
func handleResetChat(bot *chatbot.Bot) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var req *ResetRequest
		d := json.NewDecoder(r.Body)
		if err := d.Decode(&req); err != nil || req == nil {
			return handleError(http.StatusBadRequest, fmt.Errorf("Could not decode json: %v", err))
		}

		if resp := checkError(bot.Reset(req.SessionID)); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: &ResetResponse{Status: "reset"}}
	}
}
