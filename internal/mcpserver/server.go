package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"twentyone/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	sessions *session.Store

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(sessions *session.Store) *Server {
	mcpSrv := server.NewMCPServer(
		"twentyone",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		sessions:   sessions,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerAccountTools()
	s.registerGameTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"chat://{chat_id}/session",
			"chat_session",
			mcp.WithTemplateDescription("Current or last finished game in a chat"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := request.Params.URI
			if !strings.HasPrefix(raw, "chat://") || !strings.HasSuffix(raw, "/session") {
				return nil, nil
			}
			chatID := strings.TrimSuffix(strings.TrimPrefix(raw, "chat://"), "/session")
			if chatID == "" {
				return nil, nil
			}
			payload := map[string]any{"chat_id": chatID, "session": nil}
			if view, ok := s.sessions.Get(chatID); ok {
				payload["session"] = view
			}
			b, err := json.Marshal(payload)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(b),
				},
			}, nil
		},
	)
}
