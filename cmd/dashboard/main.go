package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/geocoder89/fintrack/internal/client"
	"github.com/geocoder89/fintrack/internal/view"
)

// Terminal counterpart of the web dashboard: log in, fetch the caller's
// transactions and print the list plus the income/expense split.
func main() {
	apiURL := flag.String("api", envOr("FINTRACK_API_URL", "http://localhost:5000"), "base URL of the fintrack API")
	email := flag.String("email", os.Getenv("FINTRACK_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("FINTRACK_PASSWORD"), "account password")
	register := flag.Bool("register", false, "register instead of logging in")

	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or FINTRACK_EMAIL / FINTRACK_PASSWORD)")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	c := client.New(*apiURL)

	var err error

	if *register {
		_, err = c.Register(ctx, *email, *password)
	} else {
		_, err = c.Login(ctx, *email, *password)
	}

	if err != nil {
		log.Fatalf("auth failed: %v", err)
	}

	model := view.New()

	list, err := c.Transactions(ctx)

	if err != nil {
		model.SetError("Failed to fetch transactions")
		fmt.Println(model.Error)
		os.Exit(1)
	}

	model.SetTransactions(list)

	render(model)
}

func render(m *view.Model) {
	if len(m.Transactions) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	fmt.Println("Transactions")
	fmt.Println(strings.Repeat("-", 40))

	for _, t := range m.Transactions {
		fmt.Printf("%10.2f  %-16s (%s)\n", t.Amount, t.Category, t.Type)
	}

	income, expense := m.Totals()
	total := income + expense

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Income:  %10.2f\n", income)
	fmt.Printf("Expenses: %9.2f\n", expense)

	if total > 0 {
		pie := m.PieData()

		for i, label := range pie.Labels {
			share := pie.Values[i] / total * 100
			fmt.Printf("%-8s %5.1f%% %s\n", label, share, bar(share))
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func bar(percent float64) string {
	n := int(percent / 5)

	if n < 0 {
		n = 0
	}

	return strings.Repeat("#", n)
}
