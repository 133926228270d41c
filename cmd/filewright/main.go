package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"filewright/internal/config"
	"filewright/internal/engine"
	"filewright/internal/llm"
	"filewright/internal/logging"
	"filewright/internal/session"
	"filewright/internal/workspace"
)

var (
	// Global flags
	verbose       bool
	apiKey        string
	workspaceDir  string
	model         string
	maxIterations int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "filewright",
	Short: "filewright - sandboxed file-editing agent",
	Long: `filewright is a conversational file-editing agent.

It connects a chat model to three sandboxed file tools (read_file,
create_file, replace_content) confined to a workspace directory, and runs
the tool-call loop until the model answers in plain text.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

var runCmd = &cobra.Command{
	Use:   "run [instruction]",
	Short: "Run a single instruction and print the final answer",
	Long: `Runs one instruction through the conversation loop and exits.

Example:
  filewright run "rename the greet function in hello.py to main"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstruction,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace directory (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "model identifier (default: z-ai/glm-4.5)")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 0, "cap on model round-trips per turn (default: 10)")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves configuration and wires the engine.
func setup() (*engine.Engine, *config.Config, error) {
	dir := workspaceDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	if apiKey != "" {
		cfg.API.Key = apiKey
	}
	if model != "" {
		cfg.API.Model = model
	}
	if maxIterations > 0 {
		cfg.Engine.MaxIterations = maxIterations
	}
	if verbose {
		cfg.Logging.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	root, err := workspace.NewRoot(dir)
	if err != nil {
		return nil, nil, err
	}

	if err := logging.Initialize(root.Dir(), cfg.Logging.Debug, cfg.Logging.Level); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("workspace: %s, model: %s", root.Dir(), cfg.API.Model)
	logger.Info("filewright configured",
		zap.String("workspace", root.Dir()),
		zap.String("model", cfg.API.Model),
		zap.Int("max_iterations", cfg.Engine.MaxIterations),
		zap.Bool("save_transcript", cfg.Engine.SaveTranscript))

	client := llm.NewOpenRouterClientWithConfig(llm.OpenRouterConfig{
		APIKey:   cfg.API.Key,
		BaseURL:  cfg.API.BaseURL,
		Model:    cfg.API.Model,
		Timeout:  cfg.APITimeout(),
		SiteURL:  cfg.API.SiteURL,
		SiteName: cfg.API.SiteName,
	})

	eng := engine.New(root, client, engine.Config{MaxIterations: cfg.Engine.MaxIterations})
	if cfg.Engine.SaveTranscript {
		store, err := session.NewStore(root.Dir(), eng.SessionID())
		if err != nil {
			logger.Warn("transcript disabled", zap.Error(err))
			logging.SessionWarn("transcript disabled: %v", err)
		} else {
			eng.AttachTranscript(store)
			logger.Debug("transcript enabled", zap.String("path", store.Path()))
		}
	}
	return eng, cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runInstruction(cmd *cobra.Command, args []string) error {
	eng, _, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	instruction := strings.Join(args, " ")
	logger.Info("processing instruction",
		zap.String("session_id", eng.SessionID()),
		zap.Int("length", len(instruction)))

	result, err := eng.Chat(ctx, instruction)
	if err != nil {
		logger.Error("instruction failed", zap.Error(err))
		return err
	}

	logger.Info("instruction complete",
		zap.Int("iterations", result.Iterations),
		zap.Int("tool_calls", result.ToolCalls),
		zap.Bool("limit_reached", result.LimitReached))
	fmt.Println(result.FinalAnswer)
	return nil
}

func runInteractiveChat() error {
	eng, cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("filewright interactive chat (model: %s)\n", cfg.API.Model)
	fmt.Println("Type 'quit' or 'exit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		result, err := eng.Chat(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("turn failed", zap.String("session_id", eng.SessionID()), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		logger.Info("turn complete",
			zap.String("session_id", eng.SessionID()),
			zap.Int("iterations", result.Iterations),
			zap.Int("tool_calls", result.ToolCalls),
			zap.Bool("limit_reached", result.LimitReached))
		fmt.Println(result.FinalAnswer)
		if result.LimitReached {
			fmt.Println("(the conversation can continue; ask a follow-up to resume)")
		}
	}
	return scanner.Err()
}
