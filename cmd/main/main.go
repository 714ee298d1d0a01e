// Package main provides the charchain command: train a character-level
// Markov chain on a corpus and print generated text.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/CTAG07/charchain/pkg/corpus"
	"github.com/CTAG07/charchain/pkg/markov"
	"github.com/CTAG07/charchain/pkg/runlog"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// cliOptions holds the flag values shared by all commands.
type cliOptions struct {
	configPath  string
	randomSeed  int64
	temperature float64
	topK        int
	dump        bool
	limit       int
	addr        string
}

// generateArgs are the four positional values of the root command.
type generateArgs struct {
	windowLength int
	source       string
	seed         string
	length       int
}

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "charchain: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "charchain <window-length> <corpus> <seed> <length>",
		Short:         "Generate text from a character-level Markov chain",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(), "path to the JSON config file")
	rootCmd.Flags().Int64Var(&opts.randomSeed, "random-seed", 0, "seed for the random source; output is reproducible when set")
	rootCmd.Flags().Float64Var(&opts.temperature, "temperature", 1.0, "sampling temperature (<= 0 picks the most frequent character)")
	rootCmd.Flags().IntVar(&opts.topK, "top-k", 0, "sample only among the k most frequent characters (0 disables)")
	rootCmd.Flags().BoolVar(&opts.dump, "dump", false, "write the trained model to stderr")
	// Flags end at the first positional value, so seeds like "-a" are taken as is.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(newStatsCmd(opts, stdout))
	rootCmd.AddCommand(newHistoryCmd(opts, stdout))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

// parseGenerateArgs reports false for anything but a positive window length
// followed by a corpus, a seed and an integer length.
func parseGenerateArgs(args []string) (generateArgs, bool) {
	if len(args) < 4 {
		return generateArgs{}, false
	}
	windowLength, err := strconv.Atoi(args[0])
	if err != nil || windowLength <= 0 {
		return generateArgs{}, false
	}
	length, err := strconv.Atoi(args[3])
	if err != nil {
		return generateArgs{}, false
	}
	return generateArgs{
		windowLength: windowLength,
		source:       args[1],
		seed:         args[2],
		length:       length,
	}, true
}

// runGenerate trains on the corpus and prints the generated continuation of
// the seed. Malformed arguments make it do nothing at all.
func runGenerate(cmd *cobra.Command, opts *cliOptions, args []string, stdout, stderr io.Writer) error {
	params, ok := parseGenerateArgs(args)
	if !ok {
		return nil
	}

	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger := newLogger(config)

	text, err := corpus.Load(params.source)
	if err != nil {
		return err
	}

	var modelOpts []markov.ModelOption
	var randomSeed *int64
	if cmd.Flags().Changed("random-seed") {
		modelOpts = append(modelOpts, markov.WithSeed(opts.randomSeed))
		seed := opts.randomSeed
		randomSeed = &seed
	}
	model, err := markov.NewLanguageModel(params.windowLength, modelOpts...)
	if err != nil {
		return err
	}
	model.SetLogger(logger)
	model.Train(text)

	if opts.dump {
		if err = model.Dump(stderr); err != nil {
			return fmt.Errorf("failed to dump model: %w", err)
		}
	}

	output := model.Generate(params.seed, params.length, generationOptions(cmd, opts, config.Generation)...)
	if _, err = io.WriteString(stdout, output); err != nil {
		return err
	}

	if !config.RecordRuns {
		return nil
	}
	rl, err := openRunLog(config.DatabasePath, logger)
	if err != nil {
		logger.Warn("Run log unavailable, run not recorded", "error", err)
		return nil
	}
	defer func() {
		if cerr := rl.Close(); cerr != nil {
			logger.Warn("Failed to close run log", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	_, err = rl.store.Record(ctx, runlog.Run{
		WindowLength: params.windowLength,
		CorpusSource: params.source,
		Seed:         params.seed,
		TargetLength: params.length,
		RandomSeed:   randomSeed,
		Output:       output,
	})
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
	}
	return nil
}

// generationOptions applies config defaults, letting explicitly set flags win.
func generationOptions(cmd *cobra.Command, opts *cliOptions, defaults *GenerationConfig) []markov.GenerateOption {
	temperature, topK := 1.0, 0
	if defaults != nil {
		temperature, topK = defaults.Temperature, defaults.TopK
	}
	if cmd.Flags().Changed("temperature") {
		temperature = opts.temperature
	}
	if cmd.Flags().Changed("top-k") {
		topK = opts.topK
	}
	return []markov.GenerateOption{
		markov.WithTemperature(temperature),
		markov.WithTopK(topK),
	}
}

// loadModel builds and trains a model from a window length argument and a
// corpus source, for the subcommands.
func loadModel(windowArg, source string, config *Config) (*markov.LanguageModel, error) {
	windowLength, err := strconv.Atoi(windowArg)
	if err != nil {
		return nil, fmt.Errorf("invalid window length %q: %w", windowArg, err)
	}
	text, err := corpus.Load(source)
	if err != nil {
		return nil, err
	}
	model, err := markov.NewLanguageModel(windowLength)
	if err != nil {
		return nil, err
	}
	model.SetLogger(newLogger(config))
	model.Train(text)
	return model, nil
}
