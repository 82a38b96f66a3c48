package httpapi

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManishR23/clink-chatbot/chatbot"
	"github.com/ManishR23/clink-chatbot/inventory"
)

//NewRouter returns an HTTP router for the HTTP API
func NewRouter(w io.Writer, bot *chatbot.Bot, inv *inventory.Store) http.Handler {

	//construct middleware
	var m = func(h returnHandler) http.Handler {
		return logMiddleware(jsonMiddleware(h), w)
	}

	r := mux.NewRouter()

	r.Path("/chat/").Methods("POST").Handler(m(handleChat(bot)))
	r.Path("/chat/reset").Methods("POST").Handler(m(handleResetChat(bot)))

	r.Path("/inventory/").Methods("GET").Handler(m(handleListInventory(inv)))
	r.Path("/inventory/{name}").Methods("GET").Handler(m(handleReadItem(inv)))

	//chat WebSocket endpoint (no JSON middleware)
	r.Path("/chat/ws").Handler(chatbot.NewHandler(bot))

	r.NotFoundHandler = m(notFoundHandler)

	return http.StripPrefix("/api/1.0", r)
}
