package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManishR23/clink-chatbot/inventory"
)

// Bot processes chat turns: it forwards the session transcript to the model
// and post-processes the reply, running the cost calculator when the reply
// carries a calculation directive
type Bot struct {
	store  SessionStore
	client *AIClient
	inv    *inventory.Store
	prompt string
}

// New creates a Bot over the given session store, AI client, and inventory
// snapshot. The system prompt is built once: the catalog is immutable for the
// lifetime of the process
func New(store SessionStore, client *AIClient, inv *inventory.Store) *Bot {
	return &Bot{
		store:  store,
		client: client,
		inv:    inv,
		prompt: SystemPrompt(inv.Records()),
	}
}

// ProcessTurn handles one chat turn. An empty sessionID starts a new session;
// the (possibly new) session ID is returned alongside the reply. Empty input
// is rejected before the model call and does not touch the transcript
func (b *Bot) ProcessTurn(ctx context.Context, sessionID, message string) (reply string, id string, err error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", &inventory.Error{Description: "No input provided", Type: inventory.ErrorTypeUser, Err: errors.New("empty message")}
	}

	var sess *Session
	if sessionID != "" {
		if sess, err = b.store.Get(sessionID); err != nil {
			return "", "", &inventory.Error{Description: "Could not load session", Type: inventory.ErrorTypeServer, Err: err}
		}
	}
	if sess == nil {
		if sess, err = b.store.Create(); err != nil {
			return "", "", &inventory.Error{Description: "Could not create session", Type: inventory.ErrorTypeServer, Err: err}
		}
	}

	messages := make([]Message, 0, len(sess.Messages)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: b.prompt})
	messages = append(messages, sess.Messages...)
	messages = append(messages, Message{Role: RoleUser, Content: message})

	raw, err := b.client.Chat(ctx, messages)
	if err != nil {
		return "", "", &inventory.Error{Description: "Assistant request failed", Type: inventory.ErrorTypeServer, Err: err}
	}

	reply = b.postprocess(raw)

	if err = b.store.AddMessages(sess.ID, []Message{
		{Role: RoleUser, Content: message},
		{Role: RoleAssistant, Content: reply},
	}); err != nil {
		return "", "", &inventory.Error{Description: "Could not save session", Type: inventory.ErrorTypeServer, Err: err}
	}

	return reply, sess.ID, nil
}

// postprocess runs the directive protocol over a raw model reply. When a
// well-formed directive is present the composed calculation result replaces
// the reply entirely, so no directive token can leak to the customer. With no
// directive the raw reply passes through verbatim
func (b *Bot) postprocess(raw string) string {
	d, ok := ExtractDirective(raw)
	if !ok {
		return raw
	}

	res, err := b.inv.Calculate(d.Name, d.Quantity)
	if err == nil {
		return ComposeQuote(res)
	}

	var notFound *inventory.NotFoundError
	if errors.As(err, &notFound) {
		return ComposeNotFound(d.Name)
	}

	var short *inventory.InsufficientStockError
	if errors.As(err, &short) {
		return ComposeShortStock(b.inv.FindByName(short.Name), short.Requested)
	}

	// the parser guarantees quantity >= 1, so this is unreachable in
	// practice; fall back to the reply with tokens removed
	return strings.TrimSpace(StripDirectives(raw))
}

// Reset discards the session's transcript. The inventory snapshot is
// unaffected
func (b *Bot) Reset(sessionID string) error {
	if err := b.store.Reset(sessionID); err != nil {
		return &inventory.Error{Description: fmt.Sprintf("Could not reset session %q", sessionID), Type: inventory.ErrorTypeServer, Err: err}
	}
	return nil
}

// Inventory returns the bot's inventory snapshot
func (b *Bot) Inventory() *inventory.Store {
	return b.inv
}
