// Package planner holds the session: the single in-memory owner of supply
// state, contacts, preferences, and the active scenario. All mutation goes
// through the session under one lock; the store is written one key at a time
// with soft-fail semantics, so in-memory state stays authoritative when a
// write fails.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/preparedness-planner-service/internal/domain"
	"github.com/couchcryptid/preparedness-planner-service/internal/observability"
	"github.com/couchcryptid/preparedness-planner-service/internal/store"
)

// Persisted key names. Each key is an independent JSON blob; there are no
// cross-key transactions.
const (
	KeySupplies    = "supplies-checked-state"
	KeyContacts    = "contacts"
	KeyPreferences = "preferences"
	KeyLocation    = "location"
)

var (
	// ErrNoScenario is returned by operations that require an active scenario.
	ErrNoScenario = errors.New("no active scenario")

	// ErrSuperseded is returned when a delayed operation completes after a
	// newer request has already taken over the session.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Preferences mirror the persisted preference blob. Sound defaults to on.
type Preferences struct {
	SoundEnabled bool `json:"soundEnabled"`
}

// Event is one entry on the optional event feed.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// EventPublisher receives session events. A nil publisher disables the feed.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// Session is the application state, constructed once at startup.
type Session struct {
	mu      sync.Mutex
	kv      store.KV
	logger  *slog.Logger
	metrics *observability.Metrics
	feed    EventPublisher
	clock   clockwork.Clock

	simulatedDelay time.Duration

	householdSize int
	durationDays  int
	checked       map[string]bool
	contacts      []domain.Contact
	prefs         Preferences
	location      *domain.Geo
	scenario      *domain.Scenario
	assessment    *domain.Assessment

	// generation invalidates stale delayed completions: a newer generate,
	// synthesize, or analyze bumps it, and an older operation that finishes
	// afterwards is discarded instead of overwriting the newer result.
	generation uint64
}

// Options tune session construction. Zero values select real time, no feed,
// no delay, and the catalog defaults for household size and duration.
type Options struct {
	Feed           EventPublisher
	Clock          clockwork.Clock
	SimulatedDelay time.Duration
	HouseholdSize  int
	DurationDays   int
}

// NewSession builds a session around a store. Call Load before serving.
func NewSession(kv store.KV, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Session {
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	householdSize := opts.HouseholdSize
	if householdSize <= 0 {
		householdSize = domain.DefaultHouseholdSize
	}
	durationDays := opts.DurationDays
	if durationDays <= 0 {
		durationDays = domain.DefaultDurationDays
	}

	return &Session{
		kv:             kv,
		logger:         logger,
		metrics:        metrics,
		feed:           opts.Feed,
		clock:          clk,
		simulatedDelay: opts.SimulatedDelay,
		householdSize:  householdSize,
		durationDays:   durationDays,
		checked:        make(map[string]bool),
		prefs:          Preferences{SoundEnabled: true},
	}
}

// Load restores persisted state. Each key is read independently: a missing
// key keeps defaults, and malformed JSON is logged and treated as absent.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := make(map[string]bool)
	if s.loadKey(ctx, KeySupplies, &checked) {
		s.checked = checked
	}

	var contacts []domain.Contact
	if s.loadKey(ctx, KeyContacts, &contacts) {
		s.contacts = contacts
	}

	prefs := Preferences{SoundEnabled: true}
	if s.loadKey(ctx, KeyPreferences, &prefs) {
		s.prefs = prefs
	}

	var location domain.Geo
	if s.loadKey(ctx, KeyLocation, &location) {
		s.location = &location
	}
}

// loadKey reads and unmarshals one key, reporting whether v was populated.
func (s *Session) loadKey(ctx context.Context, key string, v any) bool {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("loading saved state failed", "key", key, "error", err)
		s.metrics.StoreErrors.WithLabelValues("read", key).Inc()
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("malformed saved state, using defaults", "key", key, "error", err)
		s.metrics.StoreErrors.WithLabelValues("read", key).Inc()
		return false
	}
	return true
}

// persist writes one key. On failure it returns a user-facing warning; the
// in-memory state has already been updated and stays authoritative.
func (s *Session) persist(ctx context.Context, key string, v any) string {
	data, err := json.Marshal(v)
	if err == nil {
		err = s.kv.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.Warn("saving state failed", "key", key, "error", err)
		s.metrics.StoreErrors.WithLabelValues("write", key).Inc()
		return "saving " + key + " failed; changes are kept for this session only"
	}
	return ""
}

// publish sends an event to the feed, if one is configured. Feed failures
// never fail the operation.
func (s *Session) publish(ctx context.Context, eventType string, payload any) {
	if s.feed == nil {
		return
	}
	event := Event{Type: eventType, OccurredAt: s.clock.Now().UTC(), Payload: payload}
	if err := s.feed.Publish(ctx, event); err != nil {
		s.logger.Warn("event feed publish failed", "type", eventType, "error", err)
		s.metrics.FeedErrors.Inc()
	}
}

// CheckReadiness reports whether the backing store is reachable. Exposed to
// the HTTP readiness endpoint.
func (s *Session) CheckReadiness(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// --- supplies ---

// SupplySnapshot is the computed supply list plus per-category progress.
type SupplySnapshot struct {
	HouseholdSize int                       `json:"householdSize"`
	DurationDays  int                       `json:"durationDays"`
	Items         []domain.SupplyItem       `json:"items"`
	Progress      []domain.CategoryProgress `json:"progress"`
}

// Supplies recomputes the supply list. Non-zero inputs update the session's
// planning inputs first; zero leaves them unchanged; negatives fall back to
// the defaults.
func (s *Session) Supplies(householdSize, durationDays int) SupplySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if householdSize != 0 {
		if householdSize < 0 {
			householdSize = domain.DefaultHouseholdSize
		}
		s.householdSize = householdSize
	}
	if durationDays != 0 {
		if durationDays < 0 {
			durationDays = domain.DefaultDurationDays
		}
		s.durationDays = durationDays
	}

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SupplySnapshot {
	items := domain.ComputeSupplies(s.householdSize, s.durationDays, s.checked)
	return SupplySnapshot{
		HouseholdSize: s.householdSize,
		DurationDays:  s.durationDays,
		Items:         items,
		Progress:      domain.Progress(items),
	}
}

// ToggleSupply flips one item's checked flag and persists the checked-state
// map. Unknown items are rejected with a ValidationError.
func (s *Session) ToggleSupply(ctx context.Context, category domain.Category, name string) (SupplySnapshot, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.HasSupplyItem(category, name) {
		return SupplySnapshot{}, "", &domain.ValidationError{Field: "item", Reason: "no such supply item"}
	}

	key := domain.CheckedKey(category, name)
	if s.checked[key] {
		delete(s.checked, key)
	} else {
		s.checked[key] = true
	}
	s.metrics.SupplyToggles.Inc()

	warning := s.persist(ctx, KeySupplies, s.checked)
	return s.snapshotLocked(), warning, nil
}

// ResetSupplies clears all checked flags.
func (s *Session) ResetSupplies(ctx context.Context) (SupplySnapshot, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checked = make(map[string]bool)
	warning := s.persist(ctx, KeySupplies, s.checked)
	return s.snapshotLocked(), warning
}

// ExportSupplies renders the current supply list as plain text.
func (s *Session) ExportSupplies() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ExportSupplyList(domain.ComputeSupplies(s.householdSize, s.durationDays, s.checked))
}

// --- contacts ---

// AddContact validates and appends a contact, keeping IDs unique even when
// two adds land on the same clock millisecond.
func (s *Session) AddContact(ctx context.Context, name, phone, relation string, isPrimary bool) (domain.Contact, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact, err := domain.NewContact(name, phone, relation, isPrimary)
	if err != nil {
		return domain.Contact{}, "", err
	}
	if n := len(s.contacts); n > 0 && contact.ID <= s.contacts[n-1].ID {
		contact.ID = s.contacts[n-1].ID + 1
	}

	s.contacts = append(s.contacts, contact)
	s.metrics.ContactsAdded.Inc()

	warning := s.persist(ctx, KeyContacts, s.contacts)
	s.publish(ctx, "contact.added", map[string]any{"id": contact.ID, "name": contact.Name})
	return contact, warning, nil
}

// RemoveContact deletes a contact by id, reporting whether anything was
// removed. A missing id is a no-op, not an error.
func (s *Session) RemoveContact(ctx context.Context, id int64) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, contact := range s.contacts {
		if contact.ID != id {
			continue
		}
		s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
		s.metrics.ContactsRemoved.Inc()
		warning := s.persist(ctx, KeyContacts, s.contacts)
		s.publish(ctx, "contact.removed", map[string]any{"id": id})
		return true, warning
	}
	return false, ""
}

// Contacts returns the contact list in insertion order.
func (s *Session) Contacts() []domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// --- scenario lifecycle ---

// ScenarioResult pairs the active scenario with its assessment.
type ScenarioResult struct {
	Scenario   domain.Scenario   `json:"scenario"`
	Assessment domain.Assessment `json:"assessment"`
}

// EscalationResult is the outcome of one escalation step.
type EscalationResult struct {
	Assessment domain.Assessment `json:"assessment"`
	Bulletin   string            `json:"bulletin"`
}

// GenerateScenario picks a canned scenario for the difficulty and assesses
// it. The simulated delay is applied first; a newer request during the delay
// supersedes this one.
func (s *Session) GenerateScenario(ctx context.Context, difficulty string) (ScenarioResult, error) {
	gen := s.nextGeneration()
	if err := s.waitSimulated(ctx); err != nil {
		return ScenarioResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.metrics.StaleCompletions.Inc()
		return ScenarioResult{}, ErrSuperseded
	}

	scenario := domain.PickScenario(domain.NormalizeDifficulty(difficulty))
	return s.activateLocked(ctx, scenario, "canned"), nil
}

// CustomScenario synthesizes a scenario from free text, rejecting blank
// input. Delay and supersession behave as in GenerateScenario.
func (s *Session) CustomScenario(ctx context.Context, description string) (ScenarioResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ScenarioResult{}, &domain.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	gen := s.nextGeneration()
	if err := s.waitSimulated(ctx); err != nil {
		return ScenarioResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.metrics.StaleCompletions.Inc()
		return ScenarioResult{}, ErrSuperseded
	}

	return s.activateLocked(ctx, domain.Synthesize(description), "custom"), nil
}

// activateLocked installs a fresh scenario and assessment, discarding any
// prior one.
func (s *Session) activateLocked(ctx context.Context, scenario domain.Scenario, source string) ScenarioResult {
	items := domain.ComputeSupplies(s.householdSize, s.durationDays, s.checked)
	checked, total := domain.CountChecked(items)
	assessment := domain.Assess(checked, total, s.householdSize, s.durationDays)

	s.scenario = &scenario
	s.assessment = &assessment
	s.metrics.ScenariosGenerated.WithLabelValues(source).Inc()
	s.publish(ctx, "scenario.generated", map[string]any{
		"title":   scenario.Title,
		"threat":  scenario.Threat,
		"overall": assessment.OverallScore,
		"source":  source,
	})

	return ScenarioResult{Scenario: scenario, Assessment: assessment}
}

// Escalate applies one escalation step to the active scenario's assessment.
func (s *Session) Escalate(ctx context.Context) (EscalationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil || s.assessment == nil {
		return EscalationResult{}, ErrNoScenario
	}

	escalated := s.assessment.Escalate()
	s.assessment = &escalated
	bulletin := domain.EscalationBulletin()
	s.metrics.Escalations.Inc()
	s.publish(ctx, "scenario.escalated", map[string]any{
		"title":    s.scenario.Title,
		"overall":  escalated.OverallScore,
		"bulletin": bulletin,
	})

	return EscalationResult{Assessment: escalated, Bulletin: bulletin}, nil
}

// Current returns the active scenario and assessment.
func (s *Session) Current() (ScenarioResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil || s.assessment == nil {
		return ScenarioResult{}, ErrNoScenario
	}
	return ScenarioResult{Scenario: *s.scenario, Assessment: *s.assessment}, nil
}

// --- location ---

// RiskResult is the outcome of a mock location analysis.
type RiskResult struct {
	Report    domain.RiskReport `json:"report"`
	SafeZones []domain.SafeZone `json:"safeZones"`
}

// AnalyzeLocation runs the mock risk analysis for a location query. Input of
// the form "lat, lon" is stored as the session location. Delay and
// supersession behave as in GenerateScenario.
func (s *Session) AnalyzeLocation(ctx context.Context, query string) (RiskResult, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return RiskResult{}, "", &domain.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	gen := s.nextGeneration()
	if err := s.waitSimulated(ctx); err != nil {
		return RiskResult{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.metrics.StaleCompletions.Inc()
		return RiskResult{}, "", ErrSuperseded
	}

	var warning string
	if geo, ok := parseCoordinates(query); ok {
		s.location = &geo
		warning = s.persist(ctx, KeyLocation, geo)
	}

	s.metrics.RiskAnalyses.Inc()
	return RiskResult{
		Report:    domain.AnalyzeRisk(query),
		SafeZones: domain.SafeZones(),
	}, warning, nil
}

// Location returns the stored coordinates, if any.
func (s *Session) Location() (domain.Geo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return domain.Geo{}, false
	}
	return *s.location, true
}

// parseCoordinates accepts "latitude, longitude" decimal input.
func parseCoordinates(query string) (domain.Geo, bool) {
	parts := strings.SplitN(query, ",", 2)
	if len(parts) != 2 {
		return domain.Geo{}, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return domain.Geo{}, false
	}
	return domain.Geo{Latitude: lat, Longitude: lon}, true
}

// --- preferences ---

// Preferences returns the current preference blob.
func (s *Session) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetPreferences replaces and persists the preference blob.
func (s *Session) SetPreferences(ctx context.Context, prefs Preferences) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = prefs
	return s.persist(ctx, KeyPreferences, prefs)
}

// --- helpers ---

func (s *Session) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Session) waitSimulated(ctx context.Context) error {
	if s.simulatedDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.simulatedDelay):
		return nil
	}
}
