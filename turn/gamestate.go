package turn

// GameState names one of the outer screen-state machine's states (§6).
// The core never owns or transitions this state — menus, the death
// screen, and the wizard console live in the external state manager — but
// movement and pickup gate on it, so the core needs a closed type for the
// two predicates below.
type GameState string

const (
	StatePlayersTurn       GameState = "players_turn"
	StateEnemyTurn         GameState = "enemy_turn"
	StatePlayerDead        GameState = "player_dead"
	StateShowInventory     GameState = "show_inventory"
	StateDropInventory     GameState = "drop_inventory"
	StateTargeting         GameState = "targeting"
	StateThrowSelectItem   GameState = "throw_select_item"
	StateThrowTargeting    GameState = "throw_targeting"
	StateLevelUp           GameState = "level_up"
	StateCharacterScreen   GameState = "character_screen"
	StateWizardMenu        GameState = "wizard_menu"
	StateNPCDialogue       GameState = "npc_dialogue"
	StateConfrontation     GameState = "confrontation"
	StateRubyHeartObtained GameState = "ruby_heart_obtained"
	StateVictory           GameState = "victory"
)

// AllowsMovement reports whether the given outer screen state permits the
// player to move or attack. §6: "The core checks only the predicates
// allows_movement(state) and allows_pickup(state)." Grounded on
// original_source/game_actions.py's StateManager.allows_movement call
// sites (the gate before _handle_player_movement and before mouse-click
// movement dispatch) — the state_manager module defining the predicate's
// body was filtered out of the retrieval pack, so the truth table is
// reconstructed from spec.md §6's state enumeration: every one of the
// fourteen non-PLAYERS_TURN states is a menu, dialogue, targeting
// overlay, or terminal screen that the original's call sites treat as
// movement-denying, so only PLAYERS_TURN allows it.
func AllowsMovement(state GameState) bool {
	return state == StatePlayersTurn
}

// AllowsPickup mirrors AllowsMovement — pickup is gated identically in the
// original (game_actions.py's StateManager.allows_pickup call site sits
// right next to allows_movement's, same PLAYERS_TURN-only behavior).
func AllowsPickup(state GameState) bool {
	return state == StatePlayersTurn
}
