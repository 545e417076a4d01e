package mcpserver

import (
	"context"
	"errors"
	"math"
	"strings"

	"twentyone/internal/game"
	"twentyone/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) registerAccountTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"greet",
			mcp.WithDescription("Open the user's account if needed and return the balance"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
		),
		s.handleGreet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"balance",
			mcp.WithDescription("Current coin balance"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
		),
		s.handleBalance,
	)
}

func (s *Server) registerGameTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"play",
			mcp.WithDescription("Place a bet and deal a new game in the chat"),
			mcp.WithString("chat_id", mcp.Required(), mcp.Description("Chat id")),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
			mcp.WithNumber("bet", mcp.Required(), mcp.Description("Positive whole number of coins")),
		),
		s.handlePlay,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"hit",
			mcp.WithDescription("Draw one card"),
			mcp.WithString("chat_id", mcp.Required(), mcp.Description("Chat id")),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
		),
		s.handleHit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"stand",
			mcp.WithDescription("Stop drawing; the dealer plays and the game is settled"),
			mcp.WithString("chat_id", mcp.Required(), mcp.Description("Chat id")),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
		),
		s.handleStand,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_session",
			mcp.WithDescription("Snapshot of the chat's game; the dealer hole card stays hidden until the player stands"),
			mcp.WithString("chat_id", mcp.Required(), mcp.Description("Chat id")),
		),
		s.handleGetSession,
	)
}

func requireID(request mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	v, err := request.RequireString(name)
	if err != nil {
		return "", toolError("invalid_request", err.Error())
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", toolError("invalid_request", name+" is required")
	}
	return v, nil
}

func (s *Server) handleGreet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResp := requireID(request, "user_id")
	if errResp != nil {
		return errResp, nil
	}
	bal, err := s.sessions.Greet(ctx, userID)
	if err != nil {
		return s.fail("greet", err), nil
	}
	return toolResult(map[string]any{"user_id": userID, "balance": bal}), nil
}

func (s *Server) handleBalance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResp := requireID(request, "user_id")
	if errResp != nil {
		return errResp, nil
	}
	bal, err := s.sessions.Balance(ctx, userID)
	if err != nil {
		return s.fail("balance", err), nil
	}
	return toolResult(map[string]any{"user_id": userID, "balance": bal}), nil
}

func (s *Server) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chatID, errResp := requireID(request, "chat_id")
	if errResp != nil {
		return errResp, nil
	}
	userID, errResp := requireID(request, "user_id")
	if errResp != nil {
		return errResp, nil
	}
	raw, err := request.RequireFloat("bet")
	if err != nil {
		return toolError("missing_or_invalid_bet", err.Error()), nil
	}
	if raw != math.Trunc(raw) || raw <= 0 || raw > float64(game.MaxBet) {
		return toolError("missing_or_invalid_bet", "bet must be a positive whole number"), nil
	}
	res, err := s.sessions.Start(ctx, chatID, userID, int64(raw))
	if err != nil {
		return s.fail("play", err), nil
	}
	return toolResult(res), nil
}

func (s *Server) handleHit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chatID, errResp := requireID(request, "chat_id")
	if errResp != nil {
		return errResp, nil
	}
	userID, errResp := requireID(request, "user_id")
	if errResp != nil {
		return errResp, nil
	}
	res, err := s.sessions.Hit(ctx, chatID, userID)
	if err != nil {
		return s.fail("hit", err), nil
	}
	return toolResult(res), nil
}

func (s *Server) handleStand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chatID, errResp := requireID(request, "chat_id")
	if errResp != nil {
		return errResp, nil
	}
	userID, errResp := requireID(request, "user_id")
	if errResp != nil {
		return errResp, nil
	}
	res, err := s.sessions.Stand(ctx, chatID, userID)
	if err != nil {
		return s.fail("stand", err), nil
	}
	return toolResult(res), nil
}

func (s *Server) handleGetSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chatID, errResp := requireID(request, "chat_id")
	if errResp != nil {
		return errResp, nil
	}
	view, ok := s.sessions.Get(chatID)
	if !ok {
		return toolError("no_active_game", "no game in this chat"), nil
	}
	return toolResult(view), nil
}

func (s *Server) fail(tool string, err error) *mcp.CallToolResult {
	res := mapGameError(err)
	if errors.Is(err, session.ErrInternal) {
		log.Error().Err(err).Str("tool", tool).Msg("mcp tool failed")
	}
	return res
}
