package intent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-schemadesign-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantValid   bool
		wantMessage string
	}{
		{
			name:      "in scope",
			response:  `{"is_valid": true}`,
			wantValid: true,
		},
		{
			name:        "rejected with message",
			response:    `{"is_valid": false, "message": "Solo diseño bases de datos."}`,
			wantValid:   false,
			wantMessage: "Solo diseño bases de datos.",
		},
		{
			name:      "fenced json",
			response:  "```json\n{\"is_valid\": true}\n```",
			wantValid: true,
		},
		{
			name:      "unparseable output accepts the turn",
			response:  "I think this is fine",
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(testLogger())
			result, err := v.Validate(context.Background(), &stubProvider{response: tt.response}, "crea una tabla usuarios")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", result.IsValid, tt.wantValid)
			}
			if tt.wantMessage != "" && result.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateTransportFailureIsAnError(t *testing.T) {
	v := NewValidator(testLogger())
	transportErr := errors.New("connection refused")

	result, err := v.Validate(context.Background(), &stubProvider{err: transportErr}, "hola")

	if err == nil {
		t.Fatal("want transport error, got nil")
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("error chain does not include the transport error: %v", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on transport failure", result)
	}
}
