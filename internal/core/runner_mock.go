package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockRunner implements Runner for tests. Expectations are keyed by the
// full command line ("name arg1 arg2 ..."); lookup falls back to a
// substring match so tests can register short fragments.
type MockRunner struct {
	mu           sync.Mutex
	Expectations map[string]MockResponse
	Binaries     map[string]bool
	Calls        []string
	Inputs       map[string][]byte
}

type MockResponse struct {
	Output string
	Error  error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Expectations: make(map[string]MockResponse),
		Binaries:     make(map[string]bool),
		Inputs:       make(map[string][]byte),
	}
}

// On registers an expected command and its response.
func (m *MockRunner) On(cmd string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expectations[cmd] = MockResponse{Output: output, Error: err}
}

// Binary marks a command name as available for LookPath.
func (m *MockRunner) Binary(name string, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Binaries[name] = available
}

func (m *MockRunner) Execute(ctx context.Context, name string, args ...string) (string, error) {
	full := strings.Join(append([]string{name}, args...), " ")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, full)

	if resp, ok := m.Expectations[full]; ok {
		return resp.Output, resp.Error
	}
	for k, v := range m.Expectations {
		if strings.Contains(full, k) {
			return v.Output, v.Error
		}
	}
	return "", fmt.Errorf("unexpected command: %s", full)
}

func (m *MockRunner) ExecuteInput(ctx context.Context, stdin []byte, name string, args ...string) (string, error) {
	full := strings.Join(append([]string{name}, args...), " ")
	m.mu.Lock()
	m.Inputs[full] = stdin
	m.mu.Unlock()
	return m.Execute(ctx, name, args...)
}

func (m *MockRunner) LookPath(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Binaries[name]
}

// AssertCalled reports whether any executed command contains fragment.
func (m *MockRunner) AssertCalled(fragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if strings.Contains(call, fragment) {
			return true
		}
	}
	return false
}

// CallCount returns how many executed commands contain fragment.
func (m *MockRunner) CallCount(fragment string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.Calls {
		if strings.Contains(call, fragment) {
			n++
		}
	}
	return n
}
