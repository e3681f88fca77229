package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mathprose/mathprose/core/agent"
	"github.com/mathprose/mathprose/core/store"
	"github.com/mathprose/mathprose/providers/ai"
)

type stubProvider struct {
	reply string
}

func (s *stubProvider) SendMessage(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	return &ai.ChatResponse{Content: s.reply, Model: "stub"}, nil
}

func (s *stubProvider) WithAPIKey(string) ai.Provider           { return s }
func (s *stubProvider) WithBaseURL(string) ai.Provider          { return s }
func (s *stubProvider) WithModel(string) ai.Provider            { return s }
func (s *stubProvider) WithHttpClient(*http.Client) ai.Provider { return s }

func newTestRepl(t *testing.T, reply string) (*repl, *bytes.Buffer) {
	t.Helper()

	a, err := agent.New(&stubProvider{reply: reply})
	if err != nil {
		t.Fatalf("agent.New() error = %v", err)
	}

	var out bytes.Buffer
	return &repl{
		agent:   a,
		store:   store.New(t.TempDir()),
		session: &agent.Session{},
		out:     &out,
	}, &out
}

func TestDispatch_Help(t *testing.T) {
	r, out := newTestRepl(t, "")

	handled, err := r.dispatch("help")
	if err != nil {
		t.Fatalf("dispatch(help) error = %v", err)
	}
	if !handled {
		t.Fatal("dispatch(help) handled = false, want true")
	}
	for _, want := range []string{"save", "load", "list", "debug", "raw", "exit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestDispatch_ExitAndQuit(t *testing.T) {
	for _, cmd := range []string{"exit", "quit", "EXIT"} {
		t.Run(cmd, func(t *testing.T) {
			r, _ := newTestRepl(t, "")
			handled, err := r.dispatch(cmd)
			if !handled || err != errExit {
				t.Errorf("dispatch(%q) = (%v, %v), want (true, errExit)", cmd, handled, err)
			}
		})
	}
}

func TestDispatch_SaveWithoutRecord(t *testing.T) {
	r, out := newTestRepl(t, "")

	if _, err := r.dispatch("save"); err != nil {
		t.Fatalf("dispatch(save) error = %v", err)
	}
	if !strings.Contains(out.String(), "No expression to save") {
		t.Errorf("output = %q, want save refusal", out.String())
	}
}

func TestDispatch_LoadWithoutName(t *testing.T) {
	r, out := newTestRepl(t, "")

	if _, err := r.dispatch("load"); err != nil {
		t.Fatalf("dispatch(load) error = %v", err)
	}
	if !strings.Contains(out.String(), "specify a filename") {
		t.Errorf("output = %q, want filename prompt", out.String())
	}
}

func TestDispatch_ListEmpty(t *testing.T) {
	r, out := newTestRepl(t, "")

	if _, err := r.dispatch("list"); err != nil {
		t.Fatalf("dispatch(list) error = %v", err)
	}
	if !strings.Contains(out.String(), "No saved expressions") {
		t.Errorf("output = %q, want empty-list notice", out.String())
	}
}

func TestDispatch_DebugToggles(t *testing.T) {
	r, out := newTestRepl(t, "")

	r.dispatch("debug")
	if !r.session.Debug || !strings.Contains(out.String(), "enabled") {
		t.Fatalf("first toggle: Debug = %v, output = %q", r.session.Debug, out.String())
	}

	out.Reset()
	r.dispatch("debug")
	if r.session.Debug || !strings.Contains(out.String(), "disabled") {
		t.Fatalf("second toggle: Debug = %v, output = %q", r.session.Debug, out.String())
	}
}

func TestDispatch_RawWithoutReply(t *testing.T) {
	r, out := newTestRepl(t, "")

	if _, err := r.dispatch("raw"); err != nil {
		t.Fatalf("dispatch(raw) error = %v", err)
	}
	if !strings.Contains(out.String(), "No previous response") {
		t.Errorf("output = %q, want no-response notice", out.String())
	}
}

func TestDispatch_QueryIsNotACommand(t *testing.T) {
	r, _ := newTestRepl(t, "")

	handled, err := r.dispatch("integrate x squared")
	if handled || err != nil {
		t.Errorf("dispatch(query) = (%v, %v), want (false, nil)", handled, err)
	}
}

func TestRun_FullSession(t *testing.T) {
	r, out := newTestRepl(t, `{"mathjs": "x + y", "latex": "x + y"}`)

	input := strings.Join([]string{
		"sum of x and y",
		"save result",
		"list",
		"load result",
		"raw",
		"exit",
	}, "\n")

	if err := r.run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Mathematical Expression",
		"x + y",
		"Expression saved to",
		"result.txt",
		"Loaded expression",
		"Raw Response",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("session output missing %q", want)
		}
	}
}

func TestRun_NoPayloadPrintsRawReply(t *testing.T) {
	r, out := newTestRepl(t, "I cannot parse that, sorry.")

	input := "gibberish query\nexit\n"
	if err := r.run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Could not extract") {
		t.Errorf("output missing extraction failure notice: %q", got)
	}
	if !strings.Contains(got, "I cannot parse that, sorry.") {
		t.Errorf("output missing verbatim raw reply: %q", got)
	}
}

func TestBuildProvider(t *testing.T) {
	if _, err := buildProvider("groq"); err != nil {
		t.Errorf("buildProvider(groq) error = %v", err)
	}
	if _, err := buildProvider("Ollama"); err != nil {
		t.Errorf("buildProvider(Ollama) error = %v", err)
	}
	if _, err := buildProvider("openai"); err == nil {
		t.Error("buildProvider(openai) error = nil, want error")
	}
}
