// ABOUTME: Resource subscriptions for the weather URIs.
// ABOUTME: Forwards cache change notifications to subscribed MCP clients.
package mcp

import (
	"context"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleSubscribe(ctx context.Context, req *mcp.SubscribeRequest) error {
	uri := req.Params.URI
	if !contract.Parse(uri).IsMatch() {
		return mcp.ResourceNotFoundError(uri)
	}

	s.mu.Lock()
	s.watched[uri]++
	s.mu.Unlock()

	s.logger.Debug("resource subscribed", "uri", uri)
	return nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, req *mcp.UnsubscribeRequest) error {
	uri := req.Params.URI

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watched[uri] <= 1 {
		delete(s.watched, uri)
	} else {
		s.watched[uri]--
	}
	return nil
}

// watchedCovering returns the subscribed URIs a change to changed reaches.
func (s *Server) watchedCovering(changed contract.Resource) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var uris []string
	for uri := range s.watched {
		if contract.Parse(uri).Covers(changed) {
			uris = append(uris, uri)
		}
	}
	return uris
}

// publishChange runs on every cache mutation.
func (s *Server) publishChange(changed contract.Resource) {
	for _, uri := range s.watchedCovering(changed) {
		err := s.mcpServer.ResourceUpdated(context.Background(), &mcp.ResourceUpdatedNotificationParams{URI: uri})
		if err != nil {
			s.logger.Warn("resource update not sent", "uri", uri, "err", err)
		}
	}
}
