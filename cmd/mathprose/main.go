package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/mathprose/mathprose/core/agent"
	"github.com/mathprose/mathprose/core/store"
	"github.com/mathprose/mathprose/internal/logging"
	"github.com/mathprose/mathprose/providers/ai"
	"github.com/mathprose/mathprose/providers/ai/groq"
	"github.com/mathprose/mathprose/providers/ai/ollama"
	"github.com/mathprose/mathprose/providers/render"
)

var (
	providerName string
	modelName    string
	storeDir     string
	debugMode    bool
	logLevel     string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mathprose",
		Short:        "Convert natural language into mathjs and LaTeX expressions",
		Long:         "mathprose runs an interactive session that sends natural language\nmath descriptions to an LLM and recovers structured expressions from\nthe reply, however mangled the reply is.",
		SilenceUsage: true,
		RunE:         runRoot,
	}

	cmd.Flags().StringVar(&providerName, "provider", "groq", "model provider (groq or ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "override the provider's default model")
	cmd.Flags().StringVar(&storeDir, "dir", "expressions", "directory for saved expressions")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "start with debug mode on")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	opts := logging.FromEnv()
	if logLevel != "" {
		lvl, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		opts.Level = lvl
	}
	logger := logging.New(opts)

	provider, err := buildProvider(providerName)
	if err != nil {
		return err
	}

	agentOpts := []agent.Option{
		agent.WithRenderer(render.NewExprRenderer()),
		agent.WithLogger(logger),
	}
	if modelName != "" {
		agentOpts = append(agentOpts, agent.WithModel(modelName))
	}

	a, err := agent.New(provider, agentOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &repl{
		agent:   a,
		store:   store.New(storeDir),
		session: &agent.Session{Debug: debugMode},
		out:     cmd.OutOrStdout(),
	}
	return r.run(ctx, cmd.InOrStdin())
}

func buildProvider(name string) (ai.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "groq":
		return groq.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected groq or ollama)", name)
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
