package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/horizon/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions is sent to clients on initialise.
const instructions = `Horizon is a foresight research library of documents and the drivers,
trends, signals and evidence derived from them. Pass the viewer's user id to
every tool; without one only public material is returned. Read
horizon://catalog for the facet terms accepted by query_library.`

// shutdownTimeout bounds how long RunHTTP waits for open sessions.
const shutdownTimeout = 5 * time.Second

// Server exposes the library to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the library tools and catalog resources.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating ports")
	}

	impl := &mcp.Implementation{Name: "horizon", Version: Version}
	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithHint(errors.Wrapf(err, "serving MCP on %s", addr),
			"choose a free port with --port")
	}
	return nil
}
