// Package tutor connects the app to the generative backend: Hans the chat
// tutor, quiz feedback, the daily lesson, and API key readiness.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/chat"
	"github.com/abhisek/deutschpro/internal/llm"
	"github.com/abhisek/deutschpro/internal/logger"
	"github.com/abhisek/deutschpro/internal/store"
)

// CredentialKey is the kv key holding a key entered in the app.
const CredentialKey = "tutor_api_key"

// Readiness says whether the backend can be called right now.
type Readiness string

const (
	ReadinessChecking Readiness = "checking"
	ReadinessReady    Readiness = "ready"
	ReadinessMissing  Readiness = "missing"
)

// ProviderFactory builds a provider for an API key. It must not make a
// billable call.
type ProviderFactory func(ctx context.Context, apiKey string) (llm.Provider, error)

// FactoryFromConfig builds providers from cfg with the key substituted.
func FactoryFromConfig(cfg llm.Config, eventRepo store.EventRepo, log *logger.Logger) ProviderFactory {
	return func(ctx context.Context, apiKey string) (llm.Provider, error) {
		c := cfg.WithAPIKey(apiKey)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return llm.NewProvider(ctx, c, eventRepo, log)
	}
}

// Config holds generation settings per intent.
type Config struct {
	ChatMaxTokens     int
	ChatTemperature   float64
	FeedbackMaxTokens int
	DailyMaxTokens    int
	DailyTemperature  float64
}

// DefaultConfig returns sensible defaults for the tutor.
func DefaultConfig() Config {
	return Config{
		ChatMaxTokens:     1024,
		ChatTemperature:   0.8,
		FeedbackMaxTokens: 256,
		DailyMaxTokens:    4096,
		DailyTemperature:  0.7,
	}
}

// Gateway owns the selected credential and the provider built from it.
// Safe for concurrent use.
type Gateway struct {
	factory ProviderFactory
	kv      store.KVRepo
	envKey  string
	cfg     Config
	log     *logger.Logger

	mu          sync.Mutex
	provider    llm.Provider
	activeKey   string
	rejectedKey string
	readiness   Readiness
}

// NewGateway creates a gateway. envKey is the environment default
// credential and may be empty. Readiness starts as checking until
// CheckReadiness runs.
func NewGateway(factory ProviderFactory, kv store.KVRepo, envKey string, cfg Config, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{
		factory:   factory,
		kv:        kv,
		envKey:    strings.TrimSpace(envKey),
		cfg:       cfg,
		log:       log.With("component", "tutor"),
		readiness: ReadinessChecking,
	}
}

// EnvKey returns the environment default credential for cfg. The mock
// provider needs no key, so it gets a placeholder.
func EnvKey(cfg llm.Config) string {
	if cfg.Provider == "mock" {
		return "mock"
	}
	return cfg.APIKey()
}

// Readiness returns the last computed state.
func (g *Gateway) Readiness() Readiness {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.readiness
}

// CheckReadiness recomputes readiness from the stored and environment
// credentials. It never calls the backend.
func (g *Gateway) CheckReadiness(ctx context.Context) Readiness {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, err := g.checkLocked(ctx)
	if err != nil {
		g.log.Warn("credential check failed", "error", err)
	}
	return r
}

func (g *Gateway) checkLocked(ctx context.Context) (Readiness, error) {
	g.readiness = ReadinessChecking

	key := g.resolveKeyLocked(ctx)
	if key == "" {
		g.provider, g.activeKey = nil, ""
		g.readiness = ReadinessMissing
		return g.readiness, nil
	}
	if g.provider != nil && key == g.activeKey {
		g.readiness = ReadinessReady
		return g.readiness, nil
	}

	p, err := g.factory(ctx, key)
	if err != nil {
		g.provider, g.activeKey = nil, ""
		g.readiness = ReadinessMissing
		return g.readiness, fmt.Errorf("build provider: %w", err)
	}
	g.provider, g.activeKey = p, key
	g.readiness = ReadinessReady
	return g.readiness, nil
}

// resolveKeyLocked prefers a key stored from the app over the environment
// default, skipping the key the backend last rejected.
func (g *Gateway) resolveKeyLocked(ctx context.Context) string {
	stored, ok, err := g.kv.Get(ctx, CredentialKey)
	if err != nil {
		g.log.Warn("read stored credential", "error", err)
	}
	stored = strings.TrimSpace(stored)
	if ok && stored != "" && stored != g.rejectedKey {
		return stored
	}
	if g.envKey != "" && g.envKey != g.rejectedKey {
		return g.envKey
	}
	return ""
}

// SelectCredential stores key and re-verifies readiness. The returned state
// is the verified one, not an assumption.
func (g *Gateway) SelectCredential(ctx context.Context, key string) (Readiness, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return g.Readiness(), &Error{Kind: KindCredentialMissing, Op: "select credential"}
	}
	if err := g.kv.Put(ctx, CredentialKey, key); err != nil {
		return g.Readiness(), fmt.Errorf("store credential: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.rejectedKey = ""
	g.provider, g.activeKey = nil, ""

	r, err := g.checkLocked(ctx)
	if err != nil {
		return r, &Error{Kind: KindCredentialMissing, Op: "select credential", Err: err}
	}
	g.log.Info("credential selected", "readiness", r)
	return r, nil
}

// ForgetCredential removes the stored key and falls back to the
// environment default, if any.
func (g *Gateway) ForgetCredential(ctx context.Context) (Readiness, error) {
	if err := g.kv.Delete(ctx, CredentialKey); err != nil {
		return g.Readiness(), fmt.Errorf("forget credential: %w", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.provider, g.activeKey = nil, ""
	r, _ := g.checkLocked(ctx)
	return r, nil
}

// CredentialHint returns a masked form of the active key for display.
func (g *Gateway) CredentialHint() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return MaskKey(g.activeKey)
}

// MaskKey hides all but the edges of an API key.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("•", len(key))
	}
	return key[:4] + "…" + key[len(key)-4:]
}

// current returns the provider to use, building it if needed.
func (g *Gateway) current(ctx context.Context, op string) (llm.Provider, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.provider == nil {
		if _, err := g.checkLocked(ctx); err != nil {
			g.log.Warn("credential check failed", "error", err)
		}
	}
	if g.provider == nil {
		return nil, "", &Error{Kind: KindCredentialMissing, Op: op}
	}
	return g.provider, g.activeKey, nil
}

// reject drops the provider for key and forces readiness to missing.
func (g *Gateway) reject(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rejectedKey = key
	g.provider, g.activeKey = nil, ""
	g.readiness = ReadinessMissing
	g.log.Warn("credential rejected by backend", "key", MaskKey(key))
}

func (g *Gateway) generate(ctx context.Context, op string, req llm.Request) (*llm.Response, error) {
	p, key, err := g.current(ctx, op)
	if err != nil {
		return nil, err
	}
	resp, err := p.Generate(ctx, req)
	if err != nil {
		gerr := classify(op, req.Schema != nil, err)
		switch {
		case gerr.Kind == KindCredentialRejected:
			g.reject(key)
		case gerr.Kind == KindInvalidResponseShape && gerr.Path != "":
			g.log.Warn("reply does not match schema", "op", op, "schema", req.Schema.Name, "path", gerr.Path)
		}
		return nil, gerr
	}
	return resp, nil
}

// Chat sends the transcript plus message to Hans and returns his reply.
func (g *Gateway) Chat(ctx context.Context, history []chat.Message, message string) (string, error) {
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Failed || strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := llm.RoleUser
		if m.Role == chat.RoleModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := g.generate(llm.WithPurpose(ctx, llm.PurposeChat), "chat", llm.Request{
		System:      hansSystemPrompt,
		Messages:    msgs,
		MaxTokens:   g.cfg.ChatMaxTokens,
		Temperature: g.cfg.ChatTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// FeedbackOnAnswer asks for a short explanation of a scored answer.
func (g *Gateway) FeedbackOnAnswer(ctx context.Context, question, chosen string, correct bool) (string, error) {
	resp, err := g.generate(llm.WithPurpose(ctx, llm.PurposeFeedback), "feedback", llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: buildFeedbackPrompt(question, chosen, correct)}},
		MaxTokens: g.cfg.FeedbackMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// DailyLessonID is the id given to the generated lesson for date.
func DailyLessonID(date time.Time) string {
	return catalog.DailyIDPrefix + date.Format(time.DateOnly)
}

// GenerateDailyLesson requests a structured lesson and checks it against
// the lesson rules before returning it.
func (g *Gateway) GenerateDailyLesson(ctx context.Context, date time.Time) (catalog.Lesson, error) {
	const op = "daily lesson"
	resp, err := g.generate(llm.WithPurpose(ctx, llm.PurposeDailyLesson), op, llm.Request{
		System:      dailyLessonSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildDailyLessonPrompt(date)}},
		Schema:      DailyLessonSchema,
		MaxTokens:   g.cfg.DailyMaxTokens,
		Temperature: g.cfg.DailyTemperature,
	})
	if err != nil {
		return catalog.Lesson{}, err
	}

	lesson, err := decodeLesson(resp.Content)
	if err != nil {
		return catalog.Lesson{}, &Error{Kind: KindInvalidResponseShape, Op: op, Err: err}
	}
	lesson.ID = DailyLessonID(date)
	if err := catalog.ValidateLesson(lesson); err != nil {
		return catalog.Lesson{}, &Error{Kind: KindInvalidResponseShape, Op: op, Err: err}
	}
	return lesson, nil
}

var errNoExercises = errors.New("lesson has no exercises")

func decodeLesson(raw json.RawMessage) (catalog.Lesson, error) {
	var l catalog.Lesson
	if err := json.Unmarshal(raw, &l); err != nil {
		return catalog.Lesson{}, fmt.Errorf("decode lesson: %w", err)
	}
	if len(l.Exercises) == 0 {
		return catalog.Lesson{}, errNoExercises
	}
	return l, nil
}
