package broker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// rpcRequest is a JSON-RPC 2.0 request frame, the two methods this
// server answers being "tools/list" and "tools/call" (§2). No example
// in the pack ships an MCP SDK, so this framing is hand-rolled directly
// on encoding/json and bufio, the way the teacher hand-rolls its own
// wire protocols rather than reaching for a generated client.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	rpcParseError     = -32700
	rpcInvalidRequest = -32600
	rpcMethodNotFound = -32601
	rpcInvalidParams  = -32602
	rpcInternalError  = -32603
)

type toolsListParams struct{}

type toolsCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// toolDescriptor is the `tools/list` wire shape for one registered tool.
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// contentBlock is one entry in a `tools/call` result's content array —
// the MCP convention of returning a list of typed blocks rather than a
// single opaque string.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolsCallResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// Server reads JSON-RPC requests from in, line by line, and writes
// responses to out. One request per line keeps framing trivial and
// matches how stdio MCP servers are actually driven.
type Server struct {
	Kernel *Kernel
	Logger Logger
	in     *bufio.Reader
	out    io.Writer
}

func NewServer(kernel *Kernel, logger Logger, in io.Reader, out io.Writer) *Server {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Server{Kernel: kernel, Logger: logger, in: bufio.NewReader(in), out: out}
}

// Serve runs the read-dispatch-write loop until in is exhausted or ctx is
// canceled. Requests are handled one at a time: a line is read, dispatched
// (which may block on a provider call), and answered before the next line
// is read, so pipelined requests wait in the input buffer.
func (s *Server) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.in.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}

		if isBlank(line) {
			if err == io.EOF {
				return nil
			}
			continue
		}

		resp := s.handleLine(ctx, line)
		if writeErr := s.writeResponse(resp); writeErr != nil {
			return fmt.Errorf("writing response: %w", writeErr)
		}
		if err == io.EOF {
			return nil
		}
	}
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

func (s *Server) handleLine(ctx context.Context, line []byte) rpcResponse {
	var req rpcRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: rpcParseError, Message: "invalid JSON: " + err.Error()}}
	}

	switch req.Method {
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: rpcMethodNotFound, Message: "unknown method: " + req.Method}}
	}
}

func (s *Server) handleToolsList(req rpcRequest) rpcResponse {
	var descriptors []toolDescriptor
	for _, t := range s.Kernel.ListTools() {
		var schema map[string]interface{}
		if t.Schema != nil {
			schema = t.Schema.Raw()
		}
		descriptors = append(descriptors, toolDescriptor{Name: t.Name, Description: t.Description, InputSchema: schema})
	}
	return rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{"tools": descriptors}}
}

func (s *Server) handleToolsCall(ctx context.Context, req rpcRequest) rpcResponse {
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: rpcInvalidParams, Message: "invalid params: " + err.Error()}}
	}

	result, err := s.Kernel.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		s.Logger.Error(ctx, "tool call failed", F("tool", params.Name), F("error", err.Error()))
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: errorDisplayText(err)}},
			IsError: true,
		}}
	}

	blocks := []contentBlock{{Type: string(result.ContentType), Text: result.Content}}
	if result.ContinuationOffer != nil {
		blocks = append(blocks, contentBlock{Type: "text", Text: continuationSummaryText(result.ContinuationOffer)})
	}
	return rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: toolsCallResult{Content: blocks, IsError: result.Status == StatusError}}
}

// continuationSummaryText renders a ContinuationOffer as the
// human-readable second text block the wire protocol expects (§6):
// thread id, turn stats, and any suggestions, not raw JSON.
func continuationSummaryText(offer *ContinuationOffer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Conversation thread %s: %d turn(s) remaining, %d token(s) used so far.", offer.ThreadID, offer.RemainingTurns, offer.TotalTokens)
	for _, s := range offer.Suggestions {
		sb.WriteString("\n- ")
		sb.WriteString(s)
	}
	return sb.String()
}

// errorDisplayText renders a *ToolError (or any error) into the text the
// client sees. ToolError already guarantees no secrets leak into Message
// or Hint (§9).
func errorDisplayText(err error) string {
	if te, ok := err.(*ToolError); ok {
		return te.Error()
	}
	return err.Error()
}

func (s *Server) writeResponse(resp rpcResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = s.out.Write(data)
	return err
}
