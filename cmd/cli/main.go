package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ntdung/chitieu/internal/config"
	"github.com/ntdung/chitieu/internal/llm"
	"github.com/ntdung/chitieu/internal/logger"
	"github.com/ntdung/chitieu/internal/parser"
	memorystore "github.com/ntdung/chitieu/internal/store/memory"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("chitieu CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a Vietnamese expense message and print the intent")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// runParse parses one message against the default categories. Handy for
// tuning the keyword tables without running the server. With a Gemini key
// configured the AI path runs first, exactly as in the service.
func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	message := fs.String("message", "", "Message to parse, e.g. 'ăn trưa 50k'")
	rulesOnly := fs.Bool("rules-only", false, "Skip the AI parser even when a key is configured")
	fs.Parse(os.Args[2:])

	if *message == "" {
		fmt.Fprintln(os.Stderr, "Error: -message is required")
		fs.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := config.Load()

	var parsers []parser.Parser
	if cfg.AIEnabled() && !*rulesOnly {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		parsers = append(parsers, parser.NewAIParser(gemini))
	}
	parsers = append(parsers, &parser.RuleParser{})

	categories := memorystore.DefaultCategories()
	orchestrator := parser.NewOrchestrator(log, parsers...)

	intent, outcome, err := orchestrator.Parse(ctx, *message, categories)
	if err != nil {
		log.Fatal().Err(err).Str("message", *message).Msg("Message could not be parsed")
	}

	category, err := parser.ResolveCategory(intent, categories)
	if err != nil {
		log.Fatal().Err(err).Msg("No matching category")
	}

	out := map[string]interface{}{
		"outcome":  outcome,
		"intent":   intent,
		"category": category,
	}
	encoded, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(encoded))
}
