package mcpserver

import (
	"errors"
	"fmt"

	"twentyone/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

func mapGameError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return toolError("internal_error", "unknown error")
	case errors.Is(err, session.ErrMissingOrInvalidBet):
		return toolError("missing_or_invalid_bet", "bet must be a positive whole number")
	case errors.Is(err, session.ErrInsufficientFunds):
		return toolError("insufficient_funds", "balance is lower than the bet")
	case errors.Is(err, session.ErrGameAlreadyActive):
		return toolError("game_already_active", "finish the current game first")
	case errors.Is(err, session.ErrNoActiveGame):
		return toolError("no_active_game", "start a game with play")
	case errors.Is(err, session.ErrNotYourTurn):
		return toolError("not_your_turn", "the game belongs to another user")
	default:
		return toolError("internal_error", "internal error")
	}
}
