// Package session implements the adventure encounter state machine:
// combatant roster, derived turn order, round counting, HP deltas with
// transient effects, loot transfer and location history. It owns all state
// transitions; callers mutate only through the named operations here.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/dice"
)

const (
	// EffectTTL is how long a damage/heal effect stays visible.
	EffectTTL = 1500 * time.Millisecond

	// ChronicleLimit caps the adventure log.
	ChronicleLimit = 50
)

// Location is a named place with a map image and a short description of
// its current environment.
type Location struct {
	Name             string `json:"name"`
	MapURL           string `json:"map_url,omitempty"`
	EnvironmentState string `json:"environment_state,omitempty"`
}

// DamageEffect is a transient, presentation-only record of an HP change.
// The HP mutation itself is applied synchronously; effects carry no
// authority and expire after EffectTTL.
type DamageEffect struct {
	ID          string    `json:"id"`
	CombatantID string    `json:"combatant_id"`
	Delta       int       `json:"delta"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is the in-memory state of one adventure encounter.
type Session struct {
	ID          uuid.UUID
	WorldID     string
	CharacterID string

	Combatants []*actor.Combatant

	// Round is 0 before combat starts, 1 from the first StartCombat on.
	Round int

	// CurrentTurnID references the acting combatant by id, never by
	// index. It may dangle after a death; TurnOrder is re-derived on
	// every read to resolve it.
	CurrentTurnID string

	CurrentLocation *Location
	LocationHistory []Location

	// Chronicle is the adventure log, newest first.
	Chronicle []string

	effects []DamageEffect

	roller dice.Roller
	now    func() time.Time

	// locationSeq guards async location manifests against stale results.
	locationSeq uint64
}

// New creates an empty session rolling with r.
func New(r dice.Roller) *Session {
	if r == nil {
		r = dice.Default
	}
	return &Session{
		ID:     uuid.New(),
		roller: r,
		now:    time.Now,
	}
}

// SetClock overrides the session clock. Tests use this to control effect
// expiry.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// StartAdventure seeds the roster with the hero and enters the starting
// location.
func (s *Session) StartAdventure(hero *actor.Combatant, start Location) {
	s.Combatants = []*actor.Combatant{hero}
	s.Round = 0
	s.CurrentTurnID = ""
	s.LocationHistory = []Location{start}
	s.CurrentLocation = &s.LocationHistory[0]
	s.Chronicle = nil
	s.Log("Narrative Thread: %s enters the tale.", hero.Name)
}

// Spawn creates a combatant from a stat template and appends it to the
// roster. Malformed templates are rejected and the roster is unchanged.
// Non-hero spawns land at a random spot within the central band of the
// map; gold defaults to a d20 hoard roll when the template leaves it
// unset.
func (s *Session) Spawn(t *actor.Template, disp actor.Disposition) (*actor.Combatant, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot spawn: %w", err)
	}
	if !disp.Valid() {
		disp = actor.DispositionEnemy
	}

	x, err := dice.Roll(s.roller, 40)
	if err != nil {
		return nil, err
	}
	y, err := dice.Roll(s.roller, 40)
	if err != nil {
		return nil, err
	}

	gold := 0
	if t.Gold != nil {
		gold = *t.Gold
	} else {
		hoard, err := dice.Roll(s.roller, 20)
		if err != nil {
			return nil, err
		}
		gold = hoard * 10
	}

	c := &actor.Combatant{
		ID:          uuid.NewString(),
		Name:        t.Name,
		HP:          t.HP,
		MaxHP:       t.HP,
		AC:          t.AC,
		Disposition: disp,
		X:           30 + float64(x),
		Y:           20 + float64(y),
		Stats:       t.Stats,
		Size:        t.Size,
		Speed:       t.Speed,
		Actions:     t.Actions,
		Inventory:   append([]string(nil), t.Inventory...),
		Gold:        gold,
	}
	s.Combatants = append(s.Combatants, c)
	s.Log("[SUMMON] A %s manifested as %s.", t.Name, disp)
	return c, nil
}

// Combatant returns the roster member with the given id, or nil.
func (s *Session) Combatant(id string) *actor.Combatant {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RollInitiative re-rolls d20 + dexterity modifier for every roster
// member, including defeated ones; the hp>0 filter happens at derivation,
// not here.
func (s *Session) RollInitiative() error {
	for _, c := range s.Combatants {
		d20Roll, err := dice.Roll(s.roller, 20)
		if err != nil {
			return err
		}
		init := d20Roll + c.Stats.DexModifier()
		c.Initiative = &init
	}
	s.Log("[SYSTEM] Battle sequence initialized! Roll call complete.")
	return nil
}

// TurnOrder derives the current turn order: living combatants with an
// initiative, sorted descending, stable on ties. Always recomputed from
// the roster; never cached.
func (s *Session) TurnOrder() []*actor.Combatant {
	var order []*actor.Combatant
	for _, c := range s.Combatants {
		if c.HP > 0 && c.Initiative != nil {
			order = append(order, c)
		}
	}
	// Insertion sort keeps ties in roster order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && *order[j].Initiative > *order[j-1].Initiative; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// CurrentActor resolves CurrentTurnID against the freshly derived order.
// Returns nil when combat has not started or the reference dangles.
func (s *Session) CurrentActor() *actor.Combatant {
	if s.CurrentTurnID == "" {
		return nil
	}
	for _, c := range s.TurnOrder() {
		if c.ID == s.CurrentTurnID {
			return c
		}
	}
	return nil
}

// StartCombat begins round 1 with the top of the derived order. With an
// empty order it behaves as RollInitiative instead; the next call starts
// combat proper.
func (s *Session) StartCombat() error {
	order := s.TurnOrder()
	if len(order) == 0 {
		return s.RollInitiative()
	}
	s.Round = 1
	s.CurrentTurnID = order[0].ID
	s.Log("[TURN] %s initiates action!", order[0].Name)
	s.Log("[COMBAT] ROUND 1 BEGINS")
	return nil
}

// AdvanceTurn hands the turn to the next entry of the freshly derived
// order, wrapping to the top and incrementing the round. A dangling
// current actor (died or lost initiative since last turn) wraps the same
// way. No-op when the order is empty.
func (s *Session) AdvanceTurn() error {
	if s.CurrentTurnID == "" {
		return s.StartCombat()
	}
	order := s.TurnOrder()
	if len(order) == 0 {
		return nil
	}

	idx := -1
	for i, c := range order {
		if c.ID == s.CurrentTurnID {
			idx = i
			break
		}
	}
	next := (idx + 1) % len(order)
	if next == 0 {
		s.Round++
		s.Log("[COMBAT] ROUND %d", s.Round)
	}
	s.CurrentTurnID = order[next].ID
	s.Log("[TURN] %s's turn has arrived.", order[next].Name)
	return nil
}

// ToggleDisposition cycles a combatant through HERO→ALLY→NPC→ENEMY.
// Unknown ids are a no-op.
func (s *Session) ToggleDisposition(id string) {
	c := s.Combatant(id)
	if c == nil {
		return
	}
	prev := c.Disposition
	c.Disposition = prev.Next()
	s.Log("[SYSTEM] %s shift: %s -> %s", c.Name, prev, c.Disposition)
}

// AdjustHP applies a clamped HP delta and records its transient effect in
// the same step, so no read can observe one without the other.
func (s *Session) AdjustHP(id string, delta int) {
	c := s.Combatant(id)
	if c == nil {
		return
	}
	c.AdjustHP(delta)
	s.effects = append(s.effects, DamageEffect{
		ID:          uuid.NewString(),
		CombatantID: id,
		Delta:       delta,
		CreatedAt:   s.now(),
	})
	if c.IsDefeated() {
		s.Log("[SYSTEM] %s has fallen!", c.Name)
	}
}

// Effects prunes expired entries and returns the live ones.
func (s *Session) Effects() []DamageEffect {
	now := s.now()
	live := s.effects[:0]
	for _, e := range s.effects {
		if now.Sub(e.CreatedAt) < EffectTTL {
			live = append(live, e)
		}
	}
	s.effects = live
	return append([]DamageEffect(nil), live...)
}

// MoveToken drags a token to map coordinates, clamped to the map bounds.
func (s *Session) MoveToken(id string, x, y float64) {
	if c := s.Combatant(id); c != nil {
		c.MoveTo(x, y)
	}
}

// ReleaseToken snaps a dragged token to the map grid.
func (s *Session) ReleaseToken(id string) {
	if c := s.Combatant(id); c != nil {
		c.SnapToGrid()
	}
}

// Log prepends a chronicle entry, trimming to ChronicleLimit.
func (s *Session) Log(format string, args ...interface{}) {
	entry := fmt.Sprintf(format, args...)
	if len(s.Chronicle) >= ChronicleLimit {
		s.Chronicle = s.Chronicle[:ChronicleLimit-1]
	}
	s.Chronicle = append([]string{entry}, s.Chronicle...)
}

// RollDie rolls a die for the player and records it in the chronicle.
func (s *Session) RollDie(sides int) (int, error) {
	v, err := dice.Roll(s.roller, sides)
	if err != nil {
		return 0, err
	}
	s.Log("[ROLL] %s: %d", dice.DieName(sides), v)
	return v, nil
}
