package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mellah-kais/cnam-server/internal/audio"
	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/prompts"
	"github.com/mellah-kais/cnam-server/internal/storage"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

// StreamSink is the outbound side of one live voice connection. The
// websocket layer implements it; tests record into it.
type StreamSink interface {
	Ready()
	Partial(text string)
	Final(result *models.VoiceFormResult)
	Error(message string)
}

type StreamConfig struct {
	// PartialInterval is the minimum gap between partial passes.
	PartialInterval time.Duration
	// PartialMinBytes is the buffered-audio floor below which partials are
	// not worth a backend round trip.
	PartialMinBytes int
}

func (c StreamConfig) withDefaults() StreamConfig {
	if c.PartialInterval <= 0 {
		c.PartialInterval = 5 * time.Second
	}
	if c.PartialMinBytes <= 0 {
		c.PartialMinBytes = 32000
	}
	return c
}

type streamSession struct {
	id       string
	language string
	sink     StreamSink

	mu          sync.Mutex
	buffer      []byte
	lastPartial time.Time
	processing  bool
	finalizing  bool // stop in progress, no new partials
	closed      bool // sink is gone, nothing may be emitted

	inflight sync.WaitGroup
}

// StreamManager owns one session per live connection: it accumulates chunks,
// schedules speculative partial transcriptions, and runs the full pipeline
// once on stop. Sessions are purely in-memory and die with the connection.
type StreamManager struct {
	cfg      StreamConfig
	pipeline VoiceService
	scratch  *storage.Scratch
	logger   *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*streamSession
}

func NewStreamManager(cfg StreamConfig, pipeline VoiceService, scratch *storage.Scratch, logger *logrus.Logger) *StreamManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &StreamManager{
		cfg:      cfg.withDefaults(),
		pipeline: pipeline,
		scratch:  scratch,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*streamSession),
	}
}

// Shutdown cancels in-flight backend calls. Running passes drain on their own.
func (m *StreamManager) Shutdown() { m.cancel() }

// Start creates the session for id and acknowledges readiness. A session
// already registered under id is replaced; its sink goes dark.
func (m *StreamManager) Start(id, language string, sink StreamSink) {
	if language == "" {
		language = prompts.DefaultLanguage
	}

	sess := &streamSession{
		id:          id,
		language:    language,
		sink:        sink,
		lastPartial: time.Now(),
	}

	m.mu.Lock()
	if old, ok := m.sessions[id]; ok {
		old.mu.Lock()
		old.closed = true
		old.mu.Unlock()
	}
	m.sessions[id] = sess
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{"session": id, "language": language}).Info("stream started")
	sink.Ready()
}

// Chunk appends audio to the session buffer and, when the trigger policy
// allows, launches one non-blocking partial pass. Unknown ids are a no-op.
func (m *StreamManager) Chunk(id string, data []byte) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.buffer = append(sess.buffer, data...)

	now := time.Now()
	trigger := now.Sub(sess.lastPartial) > m.cfg.PartialInterval &&
		!sess.processing && !sess.finalizing && !sess.closed &&
		len(sess.buffer) > m.cfg.PartialMinBytes
	var snapshot []byte
	if trigger {
		// Reserve the slot and stamp the window before the pass runs, so a
		// slow backend cannot cause a second partial to pile up behind it.
		sess.processing = true
		sess.lastPartial = now
		snapshot = append([]byte(nil), sess.buffer...)
		sess.inflight.Add(1)
	}
	sess.mu.Unlock()

	if trigger {
		go m.runPartial(sess, snapshot)
	}
}

func (m *StreamManager) runPartial(sess *streamSession, snapshot []byte) {
	defer sess.inflight.Done()
	defer func() {
		sess.mu.Lock()
		sess.processing = false
		sess.mu.Unlock()
	}()

	log := m.logger.WithFields(logrus.Fields{
		"session":  sess.id,
		"buffered": len(snapshot),
		"duration": audio.Duration(snapshot),
	})

	path, err := m.scratch.Put("partial", sess.id, audio.WithWAVHeader(snapshot))
	if err != nil {
		log.WithError(err).Error("partial pass: scratch write failed")
		return
	}
	defer func() { _ = m.scratch.Remove(path) }()

	text, err := m.pipeline.TranscribeOnly(m.ctx, path, sess.language)
	if err != nil {
		// Partial passes are speculative; a failure never ends the stream.
		log.WithError(err).Warn("partial pass failed")
		return
	}

	sess.mu.Lock()
	dead := sess.closed
	sess.mu.Unlock()
	if dead {
		return
	}
	sess.sink.Partial(text)
	log.WithField("text_len", len(text)).Debug("partial emitted")
}

// Stop removes the session, waits out any in-flight partial so the final is
// never preceded out of order, then runs the full pipeline over the complete
// buffer and emits exactly one final (or error) event.
func (m *StreamManager) Stop(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.finalizing = true
	sess.mu.Unlock()

	sess.inflight.Wait()

	sess.mu.Lock()
	buffer := sess.buffer
	sess.mu.Unlock()

	log := m.logger.WithFields(logrus.Fields{
		"session":  id,
		"buffered": len(buffer),
		"duration": audio.Duration(buffer),
	})
	log.Info("stream stopping")

	result, err := m.processFinal(sess, buffer)

	sess.mu.Lock()
	dead := sess.closed
	sess.closed = true
	sess.mu.Unlock()
	if dead {
		return
	}

	if err != nil {
		log.WithError(err).Error("final pass failed")
		sess.sink.Error(err.Error())
		return
	}
	sess.sink.Final(result)
	log.WithField("intent", result.Data.Intent).Info("final emitted")
}

func (m *StreamManager) processFinal(sess *streamSession, buffer []byte) (*models.VoiceFormResult, error) {
	if len(buffer) == 0 {
		return nil, utils.E(utils.CodeNoAudio, "StreamManager.Stop", "no audio received", nil)
	}

	wav := audio.WithWAVHeader(buffer)
	path, err := m.scratch.Put("final", sess.id, wav)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "StreamManager.Stop", "scratch write failed", err)
	}
	defer func() { _ = m.scratch.Remove(path) }()

	return m.pipeline.ProcessVoiceToForm(m.ctx, path, "stream_"+sess.id+".wav", int64(len(wav)), sess.language)
}

// Disconnect abandons the session: no final pass, and a still-running partial
// finds the sink closed and emits nothing.
func (m *StreamManager) Disconnect(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()

	m.logger.WithField("session", id).Info("stream abandoned")
}

// SessionCount reports live sessions, for the health endpoint.
func (m *StreamManager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
