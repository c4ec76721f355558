package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/chrono-core/internal/application/handlers"
	"github.com/ersonp/chrono-core/internal/domain/entities"
)

func newPlayCmd() *cobra.Command {
	var transcriptPath string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a local game on this terminal",
		Long:  "Runs a full game: lobby, seeded start, turns, call-outs, elimination.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				return runPlay(cmd.Context(), d, transcriptPath)
			})
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Write the game transcript to this file when the game ends")

	return cmd
}

// playSession drives one interactive game.
type playSession struct {
	deps    *Deps
	scanner *bufio.Scanner
	gameID  string
}

func runPlay(ctx context.Context, deps *Deps, transcriptPath string) error {
	session := &playSession{
		deps:    deps,
		scanner: bufio.NewScanner(os.Stdin),
	}

	host := session.prompt("Host name: ")
	if host == "" {
		return fmt.Errorf("a host is required to create a game")
	}

	state, err := deps.Game.Create(host)
	if err != nil {
		return err
	}
	session.gameID = state.ID

	state, err = session.runLobby(ctx)
	if err != nil {
		return err
	}

	state, err = session.runTurns(ctx, state)
	if err != nil {
		return err
	}

	if winner := winnerName(state); winner != "" {
		fmt.Printf("\n%s wins!\n", winner)
	}

	if transcriptPath != "" {
		if err := writeTranscriptFile(deps, session.gameID, transcriptPath); err != nil {
			return err
		}
		fmt.Printf("Transcript written to %s\n", transcriptPath)
	}
	return nil
}

// runLobby gathers players and starts the game, retrying the seed on demand.
func (s *playSession) runLobby(ctx context.Context) (entities.GameState, error) {
	fmt.Println("Lobby. Commands: 'add <name>', 'start', 'quit'")
	for {
		line := s.prompt("lobby> ")
		switch {
		case line == "quit":
			return entities.GameState{}, fmt.Errorf("game abandoned in the lobby")
		case strings.HasPrefix(line, "add "):
			result, _, err := s.deps.Game.Join(s.gameID, strings.TrimSpace(strings.TrimPrefix(line, "add ")))
			if err != nil {
				return entities.GameState{}, err
			}
			fmt.Println(result.Message)
		case line == "start":
			result, state, err := s.deps.Game.Start(ctx, s.gameID)
			if err != nil {
				return entities.GameState{}, err
			}
			if !result.Success {
				fmt.Println(result.Message)
				continue
			}
			fmt.Println(result.Message)
			return state, nil
		default:
			fmt.Println("Commands: 'add <name>', 'start', 'quit'")
		}
	}
}

// runTurns drives submissions and call-outs until the game finishes.
func (s *playSession) runTurns(ctx context.Context, state entities.GameState) (entities.GameState, error) {
	fmt.Println("\nCommands: enter an event description, or 'call', 'board', 'quit'")
	for state.Phase == entities.PhasePlaying {
		renderBoard(&state)

		current := state.CurrentPlayer()
		line := s.prompt(fmt.Sprintf("%s> ", current.Name))
		switch line {
		case "":
			continue
		case "quit":
			return state, nil
		case "board":
			renderChain(&state)
		case "call":
			next, done, err := s.handleCallOut(state)
			if err != nil {
				return state, err
			}
			if done {
				state = next
			}
		default:
			next, done, err := s.handleSubmission(ctx, state, current.ID, line)
			if err != nil {
				return state, err
			}
			if done {
				state = next
			}
		}
	}
	return state, nil
}

// handleSubmission classifies the text, lets the player disambiguate, and
// plays the chosen fact.
func (s *playSession) handleSubmission(ctx context.Context, state entities.GameState, playerID, query string) (entities.GameState, bool, error) {
	classified, err := s.deps.Submit.Classify(ctx, query)
	if err != nil {
		return state, false, err
	}
	if len(classified.Candidates) == 0 {
		fmt.Println(classified.Message)
		return state, false, nil
	}

	fact, ok := s.pickCandidate(classified.Candidates)
	if !ok {
		return state, false, nil
	}

	result, next, err := s.deps.Submit.Submit(s.gameID, playerID, fact)
	if err != nil {
		return state, false, err
	}
	fmt.Println(result.Message)
	if !result.Success {
		return state, false, nil
	}
	return next, true, nil
}

// handleCallOut asks who is calling and resolves the challenge.
func (s *playSession) handleCallOut(state entities.GameState) (entities.GameState, bool, error) {
	name := s.prompt("Who calls it out? ")
	challenger := playerByName(&state, name)
	if challenger == nil {
		fmt.Printf("no player named %q\n", name)
		return state, false, nil
	}

	result, next, err := s.deps.Challenge.Handle(s.gameID, challenger.ID)
	if err != nil {
		return state, false, err
	}
	fmt.Println(result.Message)
	if !result.Success {
		return state, false, nil
	}
	if result.EliminatedPlayer != "" {
		fmt.Printf("%s is eliminated.\n", result.EliminatedPlayer)
	}
	return next, true, nil
}

// pickCandidate lets the player choose among classified facts. 0 cancels.
func (s *playSession) pickCandidate(candidates []entities.Fact) (entities.Fact, bool) {
	if len(candidates) == 1 {
		fmt.Printf("Playing %s — %s\n", candidates[0].Title, candidates[0].CalendarDate)
		return candidates[0], true
	}

	for i, fact := range candidates {
		fmt.Printf("%d. %s — %s\n", i+1, fact.Title, fact.CalendarDate)
	}
	line := s.prompt("Pick a candidate (0 to cancel): ")
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(candidates) {
		return entities.Fact{}, false
	}
	return candidates[n-1], true
}

// prompt reads one trimmed line from stdin.
func (s *playSession) prompt(label string) string {
	fmt.Print(label)
	if !s.scanner.Scan() {
		return "quit"
	}
	return strings.TrimSpace(s.scanner.Text())
}

// renderBoard prints the one-line game status.
func renderBoard(state *entities.GameState) {
	last := state.LastEntry()
	fmt.Printf("\n[%d alive] last event: %s (%s), tolerance ±%d years\n",
		state.AliveCount(), last.Fact.Title, last.Fact.CalendarDate, state.CurrentTolerance)
}

// renderChain prints the full event chain with resolutions.
func renderChain(state *entities.GameState) {
	for i, entry := range state.Chain {
		marker := " "
		if i == state.AnchorIndex {
			marker = "*"
		}
		status := "pending"
		if entry.IsResolved {
			status = "valid"
			if entry.WasValid != nil && !*entry.WasValid {
				status = "invalid"
			}
		}
		fmt.Printf("%s %2d. %s — %s (%s, by %s)\n", marker, i+1, entry.Fact.Title, entry.Fact.CalendarDate, status, entry.PlayerName)
	}
}

// playerByName finds a player case-insensitively.
func playerByName(state *entities.GameState, name string) *entities.Player {
	for i := range state.Players {
		if strings.EqualFold(state.Players[i].Name, name) {
			return &state.Players[i]
		}
	}
	return nil
}

// winnerName returns the sole survivor's name for a finished game.
func winnerName(state entities.GameState) string {
	if state.Phase != entities.PhaseFinished {
		return ""
	}
	for _, p := range state.Players {
		if p.IsAlive {
			return p.Name
		}
	}
	return ""
}

// writeTranscriptFile exports the game transcript as JSON.
func writeTranscriptFile(deps *Deps, gameID, path string) error {
	state, err := deps.Game.Snapshot(gameID)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transcript file: %w", err)
	}
	defer f.Close()

	return handlers.WriteTranscript(f, state)
}
