package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/markov"
)

var (
	trainLegitPath string
	trainFraudPath string
	trainOutDir    string
	trainEval      []string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train Markov models from labelled local-part corpora",
	Long: `Trains the bigram and trigram legit/fraud model pairs from
newline-delimited corpus files (one local part per line, # comments)
and writes them as JSON model files.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainLegitPath, "legit", "", "Path to legitimate corpus file")
	trainCmd.Flags().StringVar(&trainFraudPath, "fraud", "", "Path to fraud corpus file")
	trainCmd.Flags().StringVar(&trainOutDir, "out", "models", "Output directory for model files")
	trainCmd.Flags().StringSliceVar(&trainEval, "eval", nil, "Sample local parts to classify after training")
	_ = trainCmd.MarkFlagRequired("legit")
	_ = trainCmd.MarkFlagRequired("fraud")
}

func runTrain(cmd *cobra.Command, args []string) error {
	legit, err := readCorpus(trainLegitPath)
	if err != nil {
		return err
	}
	fraud, err := readCorpus(trainFraudPath)
	if err != nil {
		return err
	}
	if len(legit) == 0 || len(fraud) == 0 {
		return fmt.Errorf("both corpora must be non-empty (legit=%d fraud=%d)", len(legit), len(fraud))
	}

	ensemble := markov.TrainFromCorpora(legit, fraud)

	if err := os.MkdirAll(trainOutDir, 0755); err != nil {
		return err
	}
	models := map[string]*markov.Model{
		"legit_2gram.json": ensemble.Bigram.Legit,
		"fraud_2gram.json": ensemble.Bigram.Fraud,
		"legit_3gram.json": ensemble.Trigram.Legit,
		"fraud_3gram.json": ensemble.Trigram.Fraud,
	}
	for name, m := range models {
		path := filepath.Join(trainOutDir, name)
		if err := m.Save(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d sequences, %d contexts)\n", path, m.Seen, len(m.Counts))
	}

	for _, sample := range trainEval {
		res := ensemble.Classify(sample)
		label := "legit"
		if res.IsFraud {
			label = "fraud"
		}
		fmt.Printf("%-30s %s confidence=%.3f rule=%s\n", sample, label, res.Confidence, res.Rule)
	}
	return nil
}

// readCorpus loads a newline-delimited corpus; # starts a comment
func readCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return out, nil
}
