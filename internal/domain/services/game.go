package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// DefaultSeedCentury is the era the opening event is drawn from when the
// config does not say otherwise.
const DefaultSeedCentury = 12

// GameService owns the authoritative game states and the legal-transition
// rules. All mutations of a given game are serialized through a per-game
// mutex: a concurrent submit and challenge against the same game queue up
// rather than corrupting state. Every operation either fully applies or
// fully no-ops.
type GameService struct {
	mu    sync.RWMutex
	games map[string]*gameSlot

	policy      *BufferPolicy
	seeder      *Seeder
	seedCentury int
}

// gameSlot pairs one game's state with its mutation lock.
type gameSlot struct {
	mu    sync.Mutex
	state entities.GameState
}

// NewGameService creates a game service.
func NewGameService(policy *BufferPolicy, seeder *Seeder, seedCentury int) *GameService {
	if seedCentury <= 0 {
		seedCentury = DefaultSeedCentury
	}
	return &GameService{
		games:       make(map[string]*gameSlot),
		policy:      policy,
		seeder:      seeder,
		seedCentury: seedCentury,
	}
}

// Policy returns the buffer policy games are played under.
func (s *GameService) Policy() *BufferPolicy {
	return s.policy
}

// slot finds a game's slot.
func (s *GameService) slot(gameID string) (*gameSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.games[gameID]
	if !ok {
		return nil, entities.Preconditionf("unknown game %s", gameID)
	}
	return slot, nil
}

// CreateGame creates a game in the Lobby phase with the host as its first
// player. It returns the new state.
func (s *GameService) CreateGame(hostName string) (entities.GameState, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return entities.GameState{}, entities.Preconditionf("host name is required")
	}

	state := entities.NewGameState(uuid.New().String(), s.policy.Rules())
	state.Players = append(state.Players, entities.Player{
		ID:      uuid.New().String(),
		Name:    hostName,
		IsAlive: true,
		IsHost:  true,
	})

	s.mu.Lock()
	s.games[state.ID] = &gameSlot{state: state}
	s.mu.Unlock()

	return state.Clone(), nil
}

// AddPlayer joins a player to a game still in the Lobby phase. Player names
// are unique within a game.
func (s *GameService) AddPlayer(gameID, name string) (entities.GameState, error) {
	slot, err := s.slot(gameID)
	if err != nil {
		return entities.GameState{}, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return entities.GameState{}, entities.Preconditionf("player name is required")
	}
	if slot.state.Phase != entities.PhaseLobby {
		return entities.GameState{}, entities.Preconditionf("players can only join in the lobby")
	}
	for i := range slot.state.Players {
		if strings.EqualFold(slot.state.Players[i].Name, name) {
			return entities.GameState{}, entities.Preconditionf("player name %q is taken", name)
		}
	}

	next := slot.state.Clone()
	next.Players = append(next.Players, entities.Player{
		ID:      uuid.New().String(),
		Name:    name,
		IsAlive: true,
	})
	slot.state = next
	return next.Clone(), nil
}

// StartGame seeds the chain with an event from the configured era and
// transitions Lobby -> Playing. A failed seed fails the whole operation and
// leaves the game in the lobby so the caller can retry.
func (s *GameService) StartGame(ctx context.Context, gameID string) (entities.GameState, error) {
	slot, err := s.slot(gameID)
	if err != nil {
		return entities.GameState{}, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.state.Phase != entities.PhaseLobby {
		return entities.GameState{}, entities.Preconditionf("game has already started")
	}
	if len(slot.state.Players) < 2 {
		return entities.GameState{}, entities.Preconditionf("at least 2 players are required")
	}

	seed, err := s.seeder.Seed(ctx, s.seedCentury)
	if err != nil {
		return entities.GameState{}, err
	}

	next := slot.state.Clone()
	next.Chain = append(next.Chain, entities.NewSeedEntry(seed))
	next.AnchorIndex = 0
	next.CurrentTolerance = s.policy.ToleranceFor(seed.Year())
	next.CurrentPlayerIndex = 0
	next.Phase = entities.PhasePlaying

	slot.state = next
	return next.Clone(), nil
}

// SubmitFact appends the current player's fact to the chain, recomputes the
// tolerance from the new fact's year, and passes the turn to the next alive
// player.
func (s *GameService) SubmitFact(gameID, playerID string, fact entities.Fact) (entities.GameState, error) {
	slot, err := s.slot(gameID)
	if err != nil {
		return entities.GameState{}, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	state := &slot.state
	if state.Phase != entities.PhasePlaying {
		return entities.GameState{}, entities.Preconditionf("facts can only be submitted while playing")
	}
	player := state.PlayerByID(playerID)
	if player == nil {
		return entities.GameState{}, entities.Preconditionf("unknown player %s", playerID)
	}
	if !player.IsAlive {
		return entities.GameState{}, entities.Preconditionf("%s has been eliminated", player.Name)
	}
	if current := state.CurrentPlayer(); current == nil || current.ID != playerID {
		return entities.GameState{}, entities.Preconditionf("it is not %s's turn", player.Name)
	}
	if err := fact.CalendarDate.Validate(); err != nil {
		return entities.GameState{}, err
	}

	// A superseding turn implicitly accepts the pending submission: it
	// resolves valid and becomes the new anchor. Only the most recent
	// submission is ever open to a call-out.
	working := *state
	if last := working.LastEntry(); last != nil && !last.IsResolved {
		working, err = ResolveLast(working, true)
		if err != nil {
			return entities.GameState{}, err
		}
	}

	next, err := AppendSubmission(working, player.ID, player.Name, fact)
	if err != nil {
		return entities.GameState{}, err
	}
	next.CurrentTolerance = s.policy.ToleranceFor(fact.Year())
	next.CurrentPlayerIndex = next.NextAliveIndex(next.CurrentPlayerIndex)

	slot.state = next
	return next.Clone(), nil
}

// Challenge resolves a call-out against the most recent submission. It
// applies the elimination, resolves the chain entry, recomputes the
// tolerance from the (possibly new) anchor, and transitions to Finished when
// at most one player remains alive.
func (s *GameService) Challenge(gameID, challengerID string) (entities.GameState, ChallengeOutcome, error) {
	slot, err := s.slot(gameID)
	if err != nil {
		return entities.GameState{}, ChallengeOutcome{}, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()

	state := &slot.state
	if state.Phase != entities.PhasePlaying {
		return entities.GameState{}, ChallengeOutcome{}, entities.Preconditionf("call-outs are only allowed while playing")
	}
	challenger := state.PlayerByID(challengerID)
	if challenger == nil {
		return entities.GameState{}, ChallengeOutcome{}, entities.Preconditionf("unknown player %s", challengerID)
	}
	if !challenger.IsAlive {
		return entities.GameState{}, ChallengeOutcome{}, entities.Preconditionf("%s has been eliminated", challenger.Name)
	}
	if last := state.LastEntry(); last == nil || last.IsResolved {
		return entities.GameState{}, ChallengeOutcome{}, entities.Preconditionf("there is no unresolved event to call out")
	}

	outcome := ResolveChallenge(state, s.policy, challengerID)
	if outcome.NothingToCheck {
		return state.Clone(), outcome, nil
	}

	next, err := ResolveLast(*state, outcome.WasEventCorrect)
	if err != nil {
		return entities.GameState{}, ChallengeOutcome{}, err
	}

	eliminated := next.PlayerByID(outcome.EliminatedPlayerID)
	if eliminated == nil {
		return entities.GameState{}, ChallengeOutcome{}, entities.Preconditionf("eliminated player %s not in game", outcome.EliminatedPlayerID)
	}
	eliminated.Eliminate()

	if anchor := next.Anchor(); anchor != nil {
		next.CurrentTolerance = s.policy.ToleranceFor(anchor.Fact.Year())
	}

	if next.AliveCount() <= 1 {
		next.Phase = entities.PhaseFinished
	} else if current := next.CurrentPlayer(); current == nil || !current.IsAlive {
		// The eliminated player was up next; the turn moves past them.
		next.CurrentPlayerIndex = next.NextAliveIndex(next.CurrentPlayerIndex)
	}

	slot.state = next
	return next.Clone(), outcome, nil
}

// Snapshot returns a copy of the game's current state for rendering.
func (s *GameService) Snapshot(gameID string) (entities.GameState, error) {
	slot, err := s.slot(gameID)
	if err != nil {
		return entities.GameState{}, err
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.state.Clone(), nil
}

// Winner returns the sole surviving player of a finished game, or nil.
func Winner(state *entities.GameState) *entities.Player {
	if state.Phase != entities.PhaseFinished {
		return nil
	}
	var winner *entities.Player
	for i := range state.Players {
		if state.Players[i].IsAlive {
			if winner != nil {
				return nil
			}
			winner = &state.Players[i]
		}
	}
	return winner
}
