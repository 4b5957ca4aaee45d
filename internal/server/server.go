// Package server exposes the calculator as a Model Context Protocol server.
//
// Each operation is registered as a typed tool; the SDK derives the input and
// output schemas from the Go structs below. Tool failures, such as the mean of
// an empty list, are reported as tool errors (IsError) rather than protocol
// errors, so the session stays usable.
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/logger"
	"github.com/githubnext/calcg/internal/output"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var logServer = logger.New("server:mcp")

// BinaryInput is the argument of the add and subtract tools
type BinaryInput struct {
	A float64 `json:"a" jsonschema:"the first operand"`
	B float64 `json:"b" jsonschema:"the second operand"`
}

// MeanInput is the argument of the mean tool
type MeanInput struct {
	Numbers []float64 `json:"numbers" jsonschema:"the values to average; must not be empty"`
}

// GreetInput is the argument of the greet tool
type GreetInput struct {
	Username string `json:"username" jsonschema:"the name to welcome"`
}

// GreetOutput is the structured result of the greet tool
type GreetOutput struct {
	Greeting string `json:"greeting"`
}

// numberOrSymbol matches a calculator.JSONFloat: a JSON number, or "+Inf", "-Inf" or "NaN"
var numberOrSymbol = map[string]any{
	"type": []string{"number", "string"},
}

// resultSchema describes the structured output of add, subtract and mean.
// It is spelled out because the schema inferred from calculator.Result would
// reject the string forms of non-finite values.
var resultSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"operation": map[string]any{"type": "string"},
		"operands": map[string]any{
			"type":  []string{"array", "null"},
			"items": numberOrSymbol,
		},
		"value": numberOrSymbol,
	},
	"required": []string{"operation", "operands", "value"},
}

// Server wraps an SDK server bound to one calculator
type Server struct {
	calc      *calculator.Calculator
	precision int
	server    *sdk.Server
}

// New creates a server for calc. precision controls the text rendering of results.
func New(calc *calculator.Calculator, version string, precision int) *Server {
	s := &Server{
		calc:      calc,
		precision: precision,
		server: sdk.NewServer(&sdk.Implementation{
			Name:    "calcg",
			Version: version,
		}, nil),
	}
	s.registerTools()

	logServer.Printf("MCP server created for calculator %q", calc.Name())
	return s
}

// SDKServer returns the underlying SDK server for transport attachment
func (s *Server) SDKServer() *sdk.Server {
	return s.server
}

// Run serves a single session on transport until the client disconnects or ctx is cancelled
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	log.Printf("Serving calculator %q over MCP", s.calc.Name())
	return s.server.Run(ctx, transport)
}

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:         calculator.OpAdd,
		Description:  "Add two numbers and return a + b",
		OutputSchema: resultSchema,
	}, func(ctx context.Context, req *sdk.CallToolRequest, in BinaryInput) (*sdk.CallToolResult, calculator.Result, error) {
		return s.apply(calculator.OpAdd, []float64{in.A, in.B})
	})

	sdk.AddTool(s.server, &sdk.Tool{
		Name:         calculator.OpSubtract,
		Description:  "Subtract two numbers and return a - b",
		OutputSchema: resultSchema,
	}, func(ctx context.Context, req *sdk.CallToolRequest, in BinaryInput) (*sdk.CallToolResult, calculator.Result, error) {
		return s.apply(calculator.OpSubtract, []float64{in.A, in.B})
	})

	sdk.AddTool(s.server, &sdk.Tool{
		Name:         calculator.OpMean,
		Description:  "Return the arithmetic mean of a non-empty list of numbers",
		OutputSchema: resultSchema,
	}, func(ctx context.Context, req *sdk.CallToolRequest, in MeanInput) (*sdk.CallToolResult, calculator.Result, error) {
		return s.apply(calculator.OpMean, in.Numbers)
	})

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "greet",
		Description: "Return the calculator's welcome message for a user",
	}, func(ctx context.Context, req *sdk.CallToolRequest, in GreetInput) (*sdk.CallToolResult, GreetOutput, error) {
		greeting := calculator.Greet(in.Username)
		logServer.Printf("greet: username=%q", in.Username)
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: greeting}},
		}, GreetOutput{Greeting: greeting}, nil
	})
}

// apply runs op and converts the outcome into a tool result
func (s *Server) apply(op string, operands []float64) (*sdk.CallToolResult, calculator.Result, error) {
	logServer.Printf("%s: operands=%v", op, operands)

	res, err := s.calc.Apply(op, operands)
	if err != nil {
		logger.LogOperation(s.calc.Name(), "mcp", op, operands, 0, err)
		logger.LogWarn("server", "%s failed: %v", op, err)
		return nil, calculator.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	logger.LogOperation(s.calc.Name(), "mcp", op, operands, res.Value, nil)
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: output.ResultLine(res, s.precision)}},
	}, *res, nil
}
