package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ronesego-ui/captop/internal/domain"
	"github.com/ronesego-ui/captop/internal/engine"
)

var (
	ledgerPath    string
	decisionsPath string
	macroPath     string
	outLedgerPath string
	seedDir       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "captop",
		Short: "CapTop period simulation CLI",
		Long:  `Runs the period simulation engine offline against JSON fixtures, without a server or database.`,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance one period from JSON inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate()
		},
	}
	simulateCmd.Flags().StringVar(&ledgerPath, "ledger", "opening.json", "Opening ledger JSON file")
	simulateCmd.Flags().StringVar(&decisionsPath, "decisions", "decisions.json", "Decision set JSON file")
	simulateCmd.Flags().StringVar(&macroPath, "macro", "macro.json", "Macro snapshot JSON file")
	simulateCmd.Flags().StringVar(&outLedgerPath, "save-ledger", "", "Write the closing ledger to this file")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write example fixture files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed()
		},
	}
	seedCmd.Flags().StringVar(&seedDir, "dir", ".", "Directory to write fixtures into")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func simulate() error {
	var opening domain.CompanyLedger
	if err := readJSON(ledgerPath, &opening); err != nil {
		return err
	}

	var dec domain.DecisionSet
	if err := readJSON(decisionsPath, &dec); err != nil {
		return err
	}

	var macro domain.MacroSnapshot
	if err := readJSON(macroPath, &macro); err != nil {
		return err
	}

	composer := engine.NewComposer(engine.DefaultParams())
	bundle, closing, err := composer.AdvancePeriod(opening, dec, macro)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if outLedgerPath != "" {
		if err := writeJSON(outLedgerPath, closing); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "closing ledger written to %s\n", outLedgerPath)
	}

	return nil
}

// seed writes a balanced opening ledger, a five-market decision set and a
// macro snapshot that simulate can run as-is.
func seed() error {
	opening := domain.CompanyLedger{
		Cash:                 decimal.NewFromInt(120_000_000),
		RawMaterialInventory: decimal.NewFromInt(10_000_000),
		RawMaterialQty:       decimal.NewFromInt(2000),
		FinishedGoods:        decimal.NewFromInt(14_000_000),
		FinishedGoodsQty:     decimal.NewFromInt(2000),
		Land:                 decimal.NewFromInt(30_000_000),
		Plant:                decimal.NewFromInt(50_000_000),
		AdminBuilding:        decimal.NewFromInt(20_000_000),
		Equipment:            decimal.NewFromInt(10_000_000),
		LongTermLoan:         decimal.NewFromInt(40_000_000),
		PaidInCapital:        decimal.NewFromInt(200_000_000),
		RetainedEarnings:     decimal.NewFromInt(14_000_000),
	}

	dec := domain.DecisionSet{
		RawMaterialPrice: decimal.NewFromInt(5200),
		RawMaterialQty:   decimal.NewFromInt(10000),
		ProductionQty:    decimal.NewFromInt(10000),
		Markets: []domain.MarketDecision{
			{Market: "Argentina", UnitPrice: decimal.NewFromInt(11000), ProjectedUnits: decimal.NewFromInt(2000)},
			{Market: "Brasil", UnitPrice: decimal.NewFromInt(10500), ProjectedUnits: decimal.NewFromInt(3000)},
			{Market: "Chile", UnitPrice: decimal.NewFromInt(12000), ProjectedUnits: decimal.NewFromInt(4000)},
			{Market: "Colombia", UnitPrice: decimal.NewFromInt(10800), ProjectedUnits: decimal.NewFromInt(1500)},
			{Market: "Mexico", UnitPrice: decimal.NewFromInt(11500), ProjectedUnits: decimal.NewFromInt(2500)},
		},
		AdvertisingBudget: decimal.NewFromInt(2_000_000),
		ResearchBudget:    decimal.NewFromInt(1_000_000),
		Loans: []domain.LoanDecision{
			{Class: domain.LoanLongTerm, Repay: decimal.NewFromInt(5_000_000)},
		},
		PayoutRatio: decimal.NewFromFloat(0.2),
	}

	macro := domain.MacroSnapshot{
		UFStart:       decimal.NewFromInt(36000),
		UFEnd:         decimal.NewFromInt(36360),
		UTM:           decimal.NewFromInt(68000),
		VATRate:       decimal.NewFromFloat(0.19),
		IncomeTaxRate: decimal.NewFromFloat(0.27),
	}

	files := map[string]any{
		"opening.json":   opening,
		"decisions.json": dec,
		"macro.json":     macro,
	}
	for name, v := range files {
		path := filepath.Join(seedDir, name)
		if err := writeJSON(path, v); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}

	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
