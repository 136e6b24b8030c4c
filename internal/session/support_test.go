package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-interview-be/internal/entity"
	"ai-interview-be/pkg/events"
	"ai-interview-be/pkg/interviewer"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeConn scripts the client side of a socket: queued inbound frames are
// read one by one, outbound writes are recorded.
type fakeConn struct {
	inbound chan []byte

	mu        sync.Mutex
	written   [][]byte
	closeSent bool
}

func newFakeConn(frames ...string) *fakeConn {
	c := &fakeConn{inbound: make(chan []byte, len(frames)+1)}
	for _, f := range frames {
		c.inbound <- []byte(f)
	}
	return c
}

// endInput makes the next ReadMessage fail, like a client disconnect.
func (c *fakeConn) endInput() {
	close(c.inbound)
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	data, ok := <-c.inbound
	if !ok {
		return 0, nil, errors.New("client gone")
	}
	return websocket.TextMessage, data, nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch messageType {
	case websocket.TextMessage:
		c.written = append(c.written, data)
	case websocket.CloseMessage:
		c.closeSent = true
	}
	return nil
}

func (c *fakeConn) textFrames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := make([]string, 0, len(c.written))
	for _, w := range c.written {
		frames = append(frames, string(w))
	}
	return frames
}

func (c *fakeConn) closeFrameSent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeSent
}

func (c *fakeConn) SetReadLimit(int64)                {}
func (c *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetPongHandler(func(string) error) {}
func (c *fakeConn) Close() error                      { return nil }

// fakeStore is an in-memory Store for one interview.
type fakeStore struct {
	mu        sync.Mutex
	interview *entity.Interview
	jd        *entity.JobDescription
	resume    *entity.CandidateResume
}

func newFakeStore(interview *entity.Interview, jd *entity.JobDescription, resume *entity.CandidateResume) *fakeStore {
	return &fakeStore{interview: interview, jd: jd, resume: resume}
}

func (s *fakeStore) GetInterview(_ context.Context, id uuid.UUID) (*entity.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil || s.interview.Id != id {
		return nil, nil
	}
	snapshot := *s.interview
	snapshot.QuestionsAsked = append([]string(nil), s.interview.QuestionsAsked...)
	snapshot.IntegrityFlags = append([]entity.IntegrityFlag(nil), s.interview.IntegrityFlags...)
	return &snapshot, nil
}

func (s *fakeStore) GetJobDescription(context.Context, uuid.UUID) (*entity.JobDescription, error) {
	return s.jd, nil
}

func (s *fakeStore) GetCandidateResume(context.Context, uuid.UUID) (*entity.CandidateResume, error) {
	return s.resume, nil
}

func (s *fakeStore) MarkStarted(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview != nil && s.interview.Status == entity.InterviewStatusScheduled {
		now := time.Now().UTC()
		s.interview.Status = entity.InterviewStatusInProgress
		s.interview.StartTime = &now
	}
	return nil
}

func (s *fakeStore) AppendQuestion(_ context.Context, id uuid.UUID, question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil {
		return errors.New("interview not found")
	}
	s.interview.QuestionsAsked = append(s.interview.QuestionsAsked, question)
	return nil
}

func (s *fakeStore) AppendIntegrityFlag(_ context.Context, id uuid.UUID, flag entity.IntegrityFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil {
		return errors.New("interview not found")
	}
	s.interview.IntegrityFlags = append(s.interview.IntegrityFlags, flag)
	return nil
}

func (s *fakeStore) Complete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview != nil && !s.terminal() {
		now := time.Now().UTC()
		s.interview.Status = entity.InterviewStatusCompleted
		s.interview.EndTime = &now
	}
	return nil
}

func (s *fakeStore) Terminate(_ context.Context, id uuid.UUID, evaluation *entity.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview != nil && !s.terminal() {
		now := time.Now().UTC()
		s.interview.Status = entity.InterviewStatusTerminated
		s.interview.EndTime = &now
		s.interview.Evaluation = evaluation
	}
	return nil
}

func (s *fakeStore) SetEvaluation(_ context.Context, id uuid.UUID, evaluation *entity.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil {
		return errors.New("interview not found")
	}
	s.interview.Evaluation = evaluation
	return nil
}

func (s *fakeStore) terminal() bool {
	return s.interview.Status == entity.InterviewStatusCompleted ||
		s.interview.Status == entity.InterviewStatusTerminated
}

func (s *fakeStore) snapshot() entity.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.interview
}

// fakeModelSession replays scripted replies; a negative failAt never fires.
type fakeModelSession struct {
	mu      sync.Mutex
	replies []string
	failAt  int
	calls   int
	prompts []string
}

func (m *fakeModelSession) Send(_ context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, text)
	if m.failAt == m.calls {
		return "", errors.New("model unavailable")
	}
	if len(m.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *fakeModelSession) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *fakeModelSession) sentPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

type fakeModelClient struct {
	session      *fakeModelSession
	systemPrompt string
	sessions     int
}

func (c *fakeModelClient) NewSession(_ context.Context, _ string, systemPrompt string) (interviewer.Session, error) {
	c.sessions++
	c.systemPrompt = systemPrompt
	return c.session, nil
}

func (c *fakeModelClient) Generate(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

type fakeAuditPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakeAuditPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakeAuditPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type fakeLifecyclePublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *fakeLifecyclePublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType())
	return nil
}

func (p *fakeLifecyclePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}
