// ABOUTME: MCP server setup for the sunshine forecast cache.
// ABOUTME: Wraps MCP server with the data access facade, preferences, and syncer.
package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/prefs"
	"github.com/harperreed/sunshine/internal/storage"
	forecastsync "github.com/harperreed/sunshine/internal/sync"
	"github.com/harperreed/sunshine/internal/weatherutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
)

// Options configures presentation and sync for a Server.
type Options struct {
	UseTodayLayout bool
	Language       language.Tag
	SyncDays       int
	Source         forecastsync.Source
	Logger         *log.Logger
	Now            func() time.Time
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	provider  *storage.Provider
	prefs     prefs.Store
	syncer    *forecastsync.Syncer
	opts      Options
	logger    *log.Logger
	view      *forecastView
	changes   *storage.Subscription

	mu      sync.Mutex
	watched map[string]int
}

// NewServer creates a new MCP server over the given provider and preferences.
func NewServer(provider *storage.Provider, store prefs.Store, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Source == nil {
		opts.Source = forecastsync.NewFakeSource(uint64(opts.Now().UnixNano()))
	}

	s := &Server{
		provider: provider,
		prefs:    store,
		opts:     opts,
		logger:   opts.Logger.WithPrefix("mcp"),
		watched:  make(map[string]int),
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "sunshine",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			SubscribeHandler:   s.handleSubscribe,
			UnsubscribeHandler: s.handleUnsubscribe,
		},
	)

	syncer := forecastsync.NewSyncer(provider, store, opts.Source, opts.Logger)
	if opts.SyncDays > 0 {
		syncer.Days = opts.SyncDays
	}

	s.syncer = syncer

	s.registerTools()
	s.registerResources()

	s.view = newForecastView(provider, opts.Now, opts.Logger)
	if err := s.view.start(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}
	s.changes = provider.Subscribe(contract.AllWeather(), s.publishChange)

	return s, nil
}

// Close stops following cache changes.
func (s *Server) Close() {
	s.changes.Cancel()
	s.view.close()
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// formatter builds a formatter for the current unit preference.
func (s *Server) formatter() (*weatherutil.Formatter, error) {
	metric, err := s.prefs.IsMetric()
	if err != nil {
		return nil, err
	}
	f := weatherutil.NewFormatter(metric, s.opts.Language)
	f.Now = s.opts.Now
	return f, nil
}
