package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/pagecap/pagecap/internal/assemble"
	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/output"
	"github.com/pagecap/pagecap/internal/platform"
	"github.com/pagecap/pagecap/internal/version"
)

// logTailCap bounds how many recent run log lines capture_status returns.
const logTailCap = 50

// mcpServer wraps the MCP server with the platform provider and the
// per-process capture state. The calibrated offset lives here so it
// survives across runs for the life of the server process.
type mcpServer struct {
	provider *platform.Provider
	mcp      *mcpserver.MCPServer

	mu         sync.Mutex
	offset     *capture.Offset
	runner     *capture.Runner
	cancelRun  context.CancelFunc
	runDone    chan struct{}
	lastResult *capture.Result
	lastErr    error
	logTail    []string
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all pagecap tools.
func newMCPServer() (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &mcpServer{provider: provider}
	s.mcp = mcpserver.NewMCPServer(
		"pagecap",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List titled windows on screen with app, PID, title, and bounds"),
			mcp.WithString("title", mcp.Description("Filter by title substring")),
		),
		s.handleWindows,
	)

	// calibrate_set
	s.mcp.AddTool(
		mcp.NewTool("calibrate_set",
			mcp.WithDescription("Set the advance control offset (dx,dy relative to the viewer window top-left). Persists for the life of the server."),
			mcp.WithNumber("dx", mcp.Description("Horizontal offset in pixels"), mcp.Required()),
			mcp.WithNumber("dy", mcp.Description("Vertical offset in pixels"), mcp.Required()),
		),
		s.handleCalibrateSet,
	)

	// capture_start
	s.mcp.AddTool(
		mcp.NewTool("capture_start",
			mcp.WithDescription("Start a capture run in the background. Requires a prior calibrate_set. Only one run may be active at a time."),
			mcp.WithNumber("pages", mcp.Description("Number of pages to capture (0 = until stopped)")),
			mcp.WithNumber("delay_ms", mcp.Description("Delay between pages in milliseconds (min 100)")),
			mcp.WithString("window", mcp.Description("Viewer window title substring")),
			mcp.WithString("workdir", mcp.Description("Directory for frame files")),
			mcp.WithString("output", mcp.Description("Output PDF path")),
			mcp.WithBoolean("no_crop", mcp.Description("Keep the full window in each frame")),
			mcp.WithBoolean("keep_frames", mcp.Description("Keep frame files after a completed run")),
		),
		s.handleCaptureStart,
	)

	// capture_stop
	s.mcp.AddTool(
		mcp.NewTool("capture_stop",
			mcp.WithDescription("Request a cooperative stop of the active capture run"),
		),
		s.handleCaptureStop,
	)

	// capture_pause
	s.mcp.AddTool(
		mcp.NewTool("capture_pause",
			mcp.WithDescription("Toggle pause on the active capture run"),
		),
		s.handleCapturePause,
	)

	// capture_status
	s.mcp.AddTool(
		mcp.NewTool("capture_status",
			mcp.WithDescription("Report the state of the active or last capture run, with recent log lines"),
		),
		s.handleCaptureStatus,
	)

	// assemble
	s.mcp.AddTool(
		mcp.NewTool("assemble",
			mcp.WithDescription("Assemble the frames in a working directory into a PDF without capturing"),
			mcp.WithString("workdir", mcp.Description("Directory holding frame files")),
			mcp.WithString("output", mcp.Description("Output PDF path")),
		),
		s.handleAssemble,
	)
}

func (s *mcpServer) handleWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windows, err := s.provider.Finder.ListWindows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if filter := stringParam(request, "title"); filter != "" {
		filtered := windows[:0]
		for _, w := range windows {
			if containsFold(w.Title, filter) {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}
	return yamlResult(output.WindowsResult{TS: time.Now().Unix(), Windows: windows})
}

func (s *mcpServer) handleCalibrateSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dx, okX := intParamOK(request, "dx")
	dy, okY := intParamOK(request, "dy")
	if !okX || !okY {
		return mcp.NewToolResultError("dx and dy are required"), nil
	}

	off := capture.Offset{DX: dx, DY: dy}
	s.mu.Lock()
	s.offset = &off
	s.mu.Unlock()

	return mcp.NewToolResultText(fmt.Sprintf("offset set to %s", off)), nil
}

func (s *mcpServer) handleCaptureStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runner != nil && s.runDone != nil {
		select {
		case <-s.runDone:
			// previous run finished
		default:
			return mcp.NewToolResultError("a capture run is already active"), nil
		}
	}
	if s.offset == nil {
		return mcp.NewToolResultError("advance control not calibrated: call calibrate_set first"), nil
	}

	cfg := capture.NewConfig()
	off := *s.offset
	cfg.Offset = &off
	cfg.PageTarget = intParam(request, "pages")
	if ms := intParam(request, "delay_ms"); ms > 0 {
		cfg.Delay = time.Duration(ms) * time.Millisecond
		if cfg.Delay < capture.MinDelay {
			cfg.Delay = capture.MinDelay
		}
	}
	if w := stringParam(request, "window"); w != "" {
		cfg.Titles = []string{w}
	}
	if dir := stringParam(request, "workdir"); dir != "" {
		cfg.WorkDir = dir
	}
	if out := stringParam(request, "output"); out != "" {
		cfg.OutputPath = out
	}
	if boolParam(request, "no_crop") {
		cfg.Crop = nil
	}
	cfg.KeepFrames = boolParam(request, "keep_frames")

	runner := capture.NewRunner(cfg, capture.Deps{
		Finder:  s.provider.Finder,
		Windows: s.provider.WindowManager,
		Screens: s.provider.Screenshotter,
		Input:   s.provider.Inputter,
		Assemble: func(frames []string, out string) (int, error) {
			return assemble.Document(frames, out, cfg.MinBytes)
		},
	})

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.runner = runner
	s.cancelRun = cancel
	s.runDone = done
	s.lastResult = nil
	s.lastErr = nil
	s.logTail = nil

	go s.drainEvents(runner.Events())
	go func() {
		defer close(done)
		defer cancel()
		res, err := runner.Run(runCtx)
		s.mu.Lock()
		s.lastResult = res
		s.lastErr = err
		s.mu.Unlock()
	}()

	return mcp.NewToolResultText("capture started"), nil
}

// drainEvents keeps the tail of the run's log for capture_status.
func (s *mcpServer) drainEvents(events <-chan capture.Event) {
	for ev := range events {
		if ev.Kind != capture.EventLog {
			continue
		}
		s.mu.Lock()
		s.logTail = append(s.logTail, ev.Message)
		if len(s.logTail) > logTailCap {
			s.logTail = s.logTail[len(s.logTail)-logTailCap:]
		}
		s.mu.Unlock()
	}
}

func (s *mcpServer) handleCaptureStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	runner := s.runner
	cancel := s.cancelRun
	s.mu.Unlock()
	if runner == nil {
		return mcp.NewToolResultError("no capture run"), nil
	}
	runner.Stop()
	if cancel != nil {
		cancel()
	}
	return mcp.NewToolResultText("stop requested"), nil
}

func (s *mcpServer) handleCapturePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	runner := s.runner
	s.mu.Unlock()
	if runner == nil {
		return mcp.NewToolResultError("no capture run"), nil
	}
	if runner.TogglePause() {
		return mcp.NewToolResultText("paused"), nil
	}
	return mcp.NewToolResultText("resumed"), nil
}

// captureStatus is the capture_status tool's YAML payload.
type captureStatus struct {
	Status capture.Status  `yaml:"status"`
	Result *capture.Result `yaml:"result,omitempty"`
	Error  string          `yaml:"error,omitempty"`
	Log    []string        `yaml:"log,omitempty"`
}

func (s *mcpServer) handleCaptureStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	runner := s.runner
	result := s.lastResult
	runErr := s.lastErr
	tail := append([]string(nil), s.logTail...)
	s.mu.Unlock()

	if runner == nil {
		return mcp.NewToolResultText("no capture run"), nil
	}

	st := captureStatus{
		Status: runner.Status(),
		Result: result,
		Log:    tail,
	}
	if runErr != nil {
		st.Error = runErr.Error()
	}
	return yamlResult(st)
}

func (s *mcpServer) handleAssemble(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workdir := stringParam(request, "workdir")
	if workdir == "" {
		workdir = capture.DefaultWorkDir
	}
	out := stringParam(request, "output")
	if out == "" {
		out = capture.DefaultOutput
	}

	store := capture.NewStore(workdir, capture.DefaultMinFrameBytes)
	valid, invalid, err := store.Scan()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pages, err := assemble.Document(valid, out, capture.DefaultMinFrameBytes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(output.AssembleResult{Output: out, Pages: pages, Skipped: len(invalid)})
}

// yamlResult marshals v to YAML and wraps it as a text tool result.
func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
