package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"

	"github.com/ManishR23/clink-chatbot/chatbot"
	"github.com/ManishR23/clink-chatbot/httpapi"
	"github.com/ManishR23/clink-chatbot/inventory"
)

func main() {
	inv, err := inventory.Load(config.InventoryPath)
	if err != nil {
		log.Fatalln("Could not load inventory:", err)
	}
	log.Printf("Loaded %d catalog items from %s\n", len(inv.Records()), config.InventoryPath)

	store := chatbot.NewMemoryStore(config.CacheMaxBytes, time.Minute*time.Duration(config.SessionExpiration))
	client := chatbot.NewAIClient(config.AIEndpoint, config.AIModel, config.AIKey, *config.AITemperature)
	bot := chatbot.New(store, client, inv)

	r := httpapi.NewRouter(os.Stdout, bot, inv)

	chain := handlers.CompressHandler(http.StripPrefix(config.Prefix, r))

	log.Println("Listening on:", config.ListenAddr)
	log.Println(http.ListenAndServe(config.ListenAddr, chain))
}
