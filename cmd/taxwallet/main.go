// Command taxwallet executes a single tax wallet operation against a local
// state database. It is a maintenance/demo tool, not a network service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/taxwallet/storage"
	"github.com/nspcc-dev/taxwallet/wallet"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "taxwallet.toml", "Path to the wallet TOML config")
	op := flag.String("op", "", "Operation: deposit|withdraw|withdraw-all|transfer|sweep|set-rate|balance|stats")
	caller := flag.String("caller", "", "Account performing the operation")
	to := flag.String("to", "", "Transfer recipient")
	amount := flag.String("amount", "", "Decimal amount")
	rate := flag.Uint64("rate", 0, "New tax rate for set-rate")

	flag.Parse()

	if *op == "" {
		log.Fatal("missing operation")
	}

	err := run(*configPath, *op, *caller, *to, *amount, *rate)
	if err != nil {
		log.Fatal(err)
	}
}

func run(configPath, op, callerStr, toStr, amountStr string, rate uint64) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is not actionable

	store, err := storage.OpenBoltStore(cfg.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	w, err := wallet.New(cfg.Owner, store, wallet.WithLogger(logger))
	if err != nil {
		return err
	}
	if cfg.HasTaxRate && w.TaxRate() != cfg.TaxRate {
		if err := w.SetTaxRate(cfg.Owner, cfg.TaxRate); err != nil {
			return fmt.Errorf("apply configured tax rate: %w", err)
		}
	}

	ctx := context.Background()

	parseCaller := func() (wallet.Account, error) {
		if callerStr == "" {
			return wallet.Account{}, fmt.Errorf("operation %q needs -caller", op)
		}
		return wallet.ParseAccount(callerStr)
	}
	parseAmount := func() (*uint256.Int, error) {
		if amountStr == "" {
			return nil, fmt.Errorf("operation %q needs -amount", op)
		}
		v, err := uint256.FromDecimal(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amountStr, err)
		}
		return v, nil
	}

	switch op {
	case "deposit":
		acc, err := parseCaller()
		if err != nil {
			return err
		}
		v, err := parseAmount()
		if err != nil {
			return err
		}
		return w.Deposit(acc, v)

	case "withdraw":
		acc, err := parseCaller()
		if err != nil {
			return err
		}
		v, err := parseAmount()
		if err != nil {
			return err
		}
		return w.Withdraw(ctx, acc, v)

	case "withdraw-all":
		acc, err := parseCaller()
		if err != nil {
			return err
		}
		return w.WithdrawAll(ctx, acc)

	case "transfer":
		acc, err := parseCaller()
		if err != nil {
			return err
		}
		if toStr == "" {
			return fmt.Errorf("operation %q needs -to", op)
		}
		recipient, err := wallet.ParseAccount(toStr)
		if err != nil {
			return err
		}
		v, err := parseAmount()
		if err != nil {
			return err
		}
		return w.Transfer(acc, recipient, v)

	case "sweep":
		swept, err := w.SweepProfit(ctx, cfg.Owner)
		if err != nil {
			return err
		}
		fmt.Println(swept.Dec())
		return nil

	case "set-rate":
		return w.SetTaxRate(cfg.Owner, rate)

	case "balance":
		acc, err := parseCaller()
		if err != nil {
			return err
		}
		fmt.Println(w.BalanceOf(acc).Dec())
		return nil

	case "stats":
		fmt.Printf("tax rate:           %d\n", w.TaxRate())
		fmt.Printf("outstanding profit: %s\n", w.OutstandingProfit().Dec())
		fmt.Printf("total profit:       %s\n", w.TotalProfit().Dec())
		fmt.Printf("total held:         %s\n", w.TotalHeld().Dec())
		return nil

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}
