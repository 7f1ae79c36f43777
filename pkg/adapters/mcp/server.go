package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cfrac"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	aboutURI = "cfrac://about"
	cacheURI = "cfrac://cache"
)

// RationalArgs identifies a rational either as "value" ("p/q" or "p") or as p and q.
type RationalArgs struct {
	Value string `json:"value,omitempty"`
	P     int64  `json:"p,omitempty"`
	Q     *int64 `json:"q,omitempty"`
}

func (a RationalArgs) rational() (domain.Rational, error) {
	if a.Value != "" {
		return domain.ParseRational(a.Value)
	}
	q := int64(1)
	if a.Q != nil {
		q = *a.Q
	}
	return domain.Rational{Num: a.P, Den: q}, nil
}

// ApproximateArgs adds the denominator bound.
type ApproximateArgs struct {
	RationalArgs
	MaxDenominator int64 `json:"max_denominator"`
}

// ReconstructArgs carries the coefficients in canonical or list notation.
type ReconstructArgs struct {
	Coefficients string `json:"coefficients"`
}

// ExpandResult aligns with the OpenAPI schema and provides a unified structure across adapters.
type ExpandResult struct {
	Rational     domain.Rational `json:"rational" jsonschema_description:"The reduced input"`
	Coefficients []int64         `json:"coefficients" jsonschema_description:"Partial quotients a0, a1, ..."`
	Notation     string          `json:"notation" jsonschema_description:"Canonical notation [a0; a1, ...]"`
	Terms        int             `json:"terms"`
}

type ReconstructResult struct {
	Rational domain.Rational `json:"rational" jsonschema_description:"Rational produced by folding the coefficients"`
	Reduced  domain.Rational `json:"reduced" jsonschema_description:"The same value in lowest terms"`
}

type ConvergentsResult struct {
	Rational    domain.Rational     `json:"rational"`
	Convergents []domain.Convergent `json:"convergents" jsonschema_description:"One convergent h/k per coefficient"`
}

type ApproximateResult struct {
	Rational       domain.Rational `json:"rational"`
	Approximation  domain.Rational `json:"approximation" jsonschema_description:"Closest fraction whose denominator fits the bound"`
	MaxDenominator int64           `json:"max_denominator"`
}

// Server wraps the cfrac Engine and exposes it as an MCP Server.
type Server struct {
	calc      ports.Calculator
	cache     ports.ExpansionCache
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCache exposes the cached keys as the cfrac://cache resource.
func WithCache(cache ports.ExpansionCache) Option {
	return func(s *Server) {
		s.cache = cache
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(calc ports.Calculator, opts ...Option) *Server {
	s := &Server{
		calc:      calc,
		mcpServer: server.NewMCPServer("cfrac-mcp", strings.TrimSpace(cfrac.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func rationalOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("value", mcp.Description(`Rational written as "p/q" or "p". Takes precedence over p and q.`)),
		mcp.WithNumber("p", mcp.Description("Numerator")),
		mcp.WithNumber("q", mcp.Description("Denominator (defaults to 1)")),
	}
}

func (s *Server) registerTools() {
	// TOOL: expand
	expandOpts := append(rationalOptions(),
		mcp.WithDescription("Expand a rational number p/q into its simple continued fraction."),
		mcp.WithOutputSchema[ExpandResult](),
	)
	s.mcpServer.AddTool(mcp.NewTool("expand", expandOpts...), mcp.NewStructuredToolHandler(s.handleExpand))

	// TOOL: reconstruct
	s.mcpServer.AddTool(mcp.NewTool("reconstruct",
		mcp.WithDescription("Fold continued-fraction coefficients back into the rational they encode."),
		mcp.WithString("coefficients", mcp.Required(), mcp.Description(`Coefficients such as "[3; 7, 16]" or "3 7 16"`)),
		mcp.WithOutputSchema[ReconstructResult](),
	), mcp.NewStructuredToolHandler(s.handleReconstruct))

	// TOOL: convergents
	convOpts := append(rationalOptions(),
		mcp.WithDescription("List the convergents h/k of the continued fraction of p/q."),
		mcp.WithOutputSchema[ConvergentsResult](),
	)
	s.mcpServer.AddTool(mcp.NewTool("convergents", convOpts...), mcp.NewStructuredToolHandler(s.handleConvergents))

	// TOOL: approximate
	approxOpts := append(rationalOptions(),
		mcp.WithDescription("Find the closest fraction to p/q whose denominator does not exceed max_denominator."),
		mcp.WithNumber("max_denominator", mcp.Required(), mcp.Description("Largest allowed denominator (>= 1)")),
		mcp.WithOutputSchema[ApproximateResult](),
	)
	s.mcpServer.AddTool(mcp.NewTool("approximate", approxOpts...), mcp.NewStructuredToolHandler(s.handleApproximate))
}

// Handler methods for structured tools

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args RationalArgs) (ExpandResult, error) {
	r, err := args.rational()
	if err != nil {
		return ExpandResult{}, err
	}

	cf, err := s.calc.Expand(ctx, r.Num, r.Den)
	if err != nil {
		return ExpandResult{}, fmt.Errorf("expand failed: %w", err)
	}

	return ExpandResult{
		Rational:     domain.Reduce(r.Num, r.Den),
		Coefficients: cf.Coefficients(),
		Notation:     cf.String(),
		Terms:        cf.Len(),
	}, nil
}

func (s *Server) handleReconstruct(ctx context.Context, request mcp.CallToolRequest, args ReconstructArgs) (ReconstructResult, error) {
	cf, err := domain.ParseContinuedFraction(args.Coefficients)
	if err != nil {
		return ReconstructResult{}, err
	}

	r, err := s.calc.Reconstruct(ctx, cf.Coefficients())
	if err != nil {
		return ReconstructResult{}, fmt.Errorf("reconstruct failed: %w", err)
	}

	return ReconstructResult{Rational: r, Reduced: r.Reduced()}, nil
}

func (s *Server) handleConvergents(ctx context.Context, request mcp.CallToolRequest, args RationalArgs) (ConvergentsResult, error) {
	r, err := args.rational()
	if err != nil {
		return ConvergentsResult{}, err
	}

	conv, err := s.calc.Convergents(ctx, r.Num, r.Den)
	if err != nil {
		return ConvergentsResult{}, fmt.Errorf("convergents failed: %w", err)
	}

	return ConvergentsResult{
		Rational:    domain.Reduce(r.Num, r.Den),
		Convergents: conv,
	}, nil
}

func (s *Server) handleApproximate(ctx context.Context, request mcp.CallToolRequest, args ApproximateArgs) (ApproximateResult, error) {
	r, err := args.rational()
	if err != nil {
		return ApproximateResult{}, err
	}

	approx, err := s.calc.Approximate(ctx, r.Num, r.Den, args.MaxDenominator)
	if err != nil {
		return ApproximateResult{}, fmt.Errorf("approximate failed: %w", err)
	}

	return ApproximateResult{
		Rational:       domain.Reduce(r.Num, r.Den),
		Approximation:  approx,
		MaxDenominator: args.MaxDenominator,
	}, nil
}

type about struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Operations []string `json:"operations"`
	Cache      bool     `json:"cache"`
}

func (s *Server) registerResources() {
	// EXPOSE: cfrac://about
	s.mcpServer.AddResource(mcp.NewResource(aboutURI, "Engine Information",
		mcp.WithMIMEType("application/json"),
	), s.readAbout)

	if s.cache == nil {
		return
	}

	// EXPOSE: cfrac://cache
	s.mcpServer.AddResource(mcp.NewResource(cacheURI, "Cached Expansions",
		mcp.WithMIMEType("application/json"),
	), s.readCache)
}

func (s *Server) readAbout(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(about{
		Name:    "cfrac",
		Version: strings.TrimSpace(cfrac.Version),
		Operations: []string{
			string(domain.OperationExpand),
			string(domain.OperationReconstruct),
			string(domain.OperationConvergents),
			string(domain.OperationApproximate),
		},
		Cache: s.cache != nil,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      aboutURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readCache(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	keys, err := s.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}
	jsonBytes, err := json.Marshal(keys)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      cacheURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
