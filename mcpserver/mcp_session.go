package mcpserver

import (
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// MockitoSession implements the ClientSession interface for MCP
type MockitoSession struct {
	mu            sync.Mutex
	id            string
	notifChannel  chan mcp.JSONRPCNotification
	isInitialized bool
	createdAt     time.Time
	lastAccessed  time.Time
}

// NewMockitoSession creates a new session instance
func NewMockitoSession(sessionID string) *MockitoSession {
	now := time.Now()

	return &MockitoSession{
		id:           sessionID,
		notifChannel: make(chan mcp.JSONRPCNotification, 10),
		createdAt:    now,
		lastAccessed: now,
	}
}

func (s *MockitoSession) SessionID() string {
	return s.id
}

func (s *MockitoSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifChannel
}

// Initialize marks the session as initialized
func (s *MockitoSession) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isInitialized = true
	s.lastAccessed = time.Now()
}

func (s *MockitoSession) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isInitialized
}

// Touch records activity on the session
func (s *MockitoSession) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccessed = time.Now()
}

func (s *MockitoSession) GetLastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastAccessed
}

func (s *MockitoSession) GetCreatedAt() time.Time {
	return s.createdAt
}
