package chatbot

import (
	"container/list"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"sync"
	"time"
)

var randChars = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
var randMax = big.NewInt(int64(len(randChars)))

func randKey(length int) string {
	str := make([]byte, length)
	for i := range str {
		k, err := rand.Int(rand.Reader, randMax)
		if err != nil {
			str[i] = randChars[0]
		} else {
			str[i] = randChars[k.Int64()]
		}
	}
	return string(str)
}

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in OpenAI format
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents one customer's chat session and holds its transcript
type Session struct {
	ID        string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionStore defines the interface for session storage
type SessionStore interface {
	Get(id string) (*Session, error)
	Create() (*Session, error)
	AddMessages(id string, msgs []Message) error
	// Reset clears a session's transcript. Resetting an unknown session is
	// not an error
	Reset(id string) error
}

// MemoryStore implements SessionStore with an LRU cache bounded by estimated
// byte size. Sessions idle past the TTL are scavenged in the background
type MemoryStore struct {
	mu       sync.Mutex
	maxBytes int
	curBytes int
	ttl      time.Duration
	cache    map[string]*list.Element
	lru      *list.List
}

type cacheEntry struct {
	id    string
	sess  *Session
	bytes int
}

// NewMemoryStore creates a new in-memory session store. Sessions are evicted
// when the store exceeds maxBytes or when idle longer than ttl
func NewMemoryStore(maxBytes int, ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		maxBytes: maxBytes,
		ttl:      ttl,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
	go s.scavenge()
	return s
}

// scavenge removes stale sessions periodically
func (s *MemoryStore) scavenge() {
	for {
		time.Sleep(s.ttl / 2)
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, elem := range s.cache {
			entry := elem.Value.(*cacheEntry)
			if entry.sess.UpdatedAt.Before(cutoff) {
				s.lru.Remove(elem)
				delete(s.cache, id)
				s.curBytes -= entry.bytes
			}
		}
		s.mu.Unlock()
	}
}

func (s *MemoryStore) estimateBytes(sess *Session) int {
	data, _ := json.Marshal(sess.Messages)
	return len(data) + len(sess.ID)
}

// Get retrieves a session by ID, or nil if it does not exist
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.cache[id]; ok {
		s.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).sess, nil
	}
	return nil, nil
}

// Create creates a new empty session
func (s *MemoryStore) Create() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        randKey(32),
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	bytes := s.estimateBytes(sess)
	s.evictIfNeeded(bytes)

	entry := &cacheEntry{id: sess.ID, sess: sess, bytes: bytes}
	elem := s.lru.PushFront(entry)
	s.cache[sess.ID] = elem
	s.curBytes += bytes

	return sess, nil
}

// AddMessages appends messages to a session's transcript
func (s *MemoryStore) AddMessages(id string, msgs []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.cache[id]
	if !ok {
		return nil
	}

	entry := elem.Value.(*cacheEntry)
	oldBytes := entry.bytes

	entry.sess.Messages = append(entry.sess.Messages, msgs...)
	entry.sess.UpdatedAt = time.Now()

	newBytes := s.estimateBytes(entry.sess)
	entry.bytes = newBytes
	s.curBytes += (newBytes - oldBytes)

	s.lru.MoveToFront(elem)
	s.evictIfNeeded(0)

	return nil
}

// Reset clears a session's transcript, returning it to empty
func (s *MemoryStore) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.cache[id]
	if !ok {
		return nil
	}

	entry := elem.Value.(*cacheEntry)
	oldBytes := entry.bytes

	entry.sess.Messages = []Message{}
	entry.sess.UpdatedAt = time.Now()

	newBytes := s.estimateBytes(entry.sess)
	entry.bytes = newBytes
	s.curBytes += (newBytes - oldBytes)

	s.lru.MoveToFront(elem)
	return nil
}

func (s *MemoryStore) evictIfNeeded(additionalBytes int) {
	for s.curBytes+additionalBytes > s.maxBytes && s.lru.Len() > 0 {
		oldest := s.lru.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		s.lru.Remove(oldest)
		delete(s.cache, entry.id)
		s.curBytes -= entry.bytes
	}
}
