package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"financas/internal/cli"
	"financas/internal/core"
	"financas/internal/storage"
)

const usage = `Uso: financas-cli <comando> [argumentos]

Comandos:
  adicionar <tipo> <valor> <descrição> [--category C] [--card X] [--date AAAA-MM-DD]
      Registra um lançamento. Tipo: income ou expense.
  listar [--kind K] [--category C] [--card X]
      Lista os lançamentos registrados.
  resumo [--year A] [--month M]
      Mostra receitas, despesas e saldo do mês.
`

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)
	backend := cli.OpenBackend(cfg, logger)
	defer backend.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "adicionar":
		err = runAdicionar(ctx, backend.Store, os.Args[2:])
	case "listar":
		err = runListar(ctx, backend.Store, os.Args[2:])
	case "resumo":
		err = runResumo(ctx, backend.Store, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "comando desconhecido: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func runAdicionar(ctx context.Context, store storage.TransactionStore, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("uso: adicionar <tipo> <valor> <descrição> [--category C] [--card X] [--date AAAA-MM-DD]")
	}

	kind, err := core.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("tipo inválido %q: use income ou expense", args[0])
	}
	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("valor inválido %q", args[1])
	}
	description := args[2]

	fs := flag.NewFlagSet("adicionar", flag.ContinueOnError)
	category := fs.String("category", "", "categoria do lançamento")
	card := fs.String("card", "", "cartão usado")
	dateStr := fs.String("date", "", "data no formato AAAA-MM-DD (padrão: hoje)")
	if err := fs.Parse(args[3:]); err != nil {
		return err
	}

	date := core.Today()
	if *dateStr != "" {
		date, err = core.ParseDate(*dateStr)
		if err != nil {
			return fmt.Errorf("data inválida %q: use AAAA-MM-DD", *dateStr)
		}
	}

	t := core.Transaction{
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Category:    *category,
		Card:        *card,
		Date:        date,
	}.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}

	id, err := store.Add(ctx, "", t)
	if err != nil {
		return err
	}

	fmt.Printf("Registrado #%d: %s %s (%s) em %s\n",
		id, t.Description, core.FormatAmount(t.Amount), t.Category, t.Date.String())
	return nil
}

func runListar(ctx context.Context, store storage.TransactionStore, args []string) error {
	fs := flag.NewFlagSet("listar", flag.ContinueOnError)
	kindStr := fs.String("kind", "", "filtrar por tipo (income ou expense)")
	category := fs.String("category", "", "filtrar por categoria")
	card := fs.String("card", "", "filtrar por cartão")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var f storage.Filter
	if *kindStr != "" {
		kind, err := core.ParseKind(*kindStr)
		if err != nil {
			return fmt.Errorf("tipo inválido %q: use income ou expense", *kindStr)
		}
		f.Kind = kind
	}
	f.Category = *category
	f.Card = *card

	txs, err := store.List(ctx, "", f)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("Nenhum lançamento encontrado.")
		return nil
	}

	// Present by calendar date regardless of insertion order.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date.Time)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATA\tTIPO\tDESCRIÇÃO\tVALOR\tCATEGORIA\tCARTÃO")
	for _, t := range txs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date.String(), t.Kind, t.Description,
			core.FormatAmount(t.Amount), t.Category, t.Card)
	}
	return w.Flush()
}

func runResumo(ctx context.Context, store storage.TransactionStore, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("resumo", flag.ContinueOnError)
	year := fs.Int("year", now.Year(), "ano do resumo")
	month := fs.Int("month", int(now.Month()), "mês do resumo (1-12)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *month < 1 || *month > 12 {
		return fmt.Errorf("mês inválido %d: use 1-12", *month)
	}

	txs, err := store.List(ctx, "", storage.Filter{})
	if err != nil {
		return err
	}

	summary := core.Summarize(txs, *year, *month)
	fmt.Printf("Resumo %02d/%d\n", summary.Month, summary.Year)
	fmt.Printf("  Receitas: %s\n", core.FormatAmount(summary.Income))
	fmt.Printf("  Despesas: %s\n", core.FormatAmount(summary.Expenses))
	fmt.Printf("  Saldo:    %s\n", core.FormatAmount(summary.Balance))

	byCategory := core.ExpensesByCategory(txs, *year, *month)
	if len(byCategory) == 0 {
		return nil
	}
	categories := make([]core.CategoryAmount, 0, len(byCategory))
	for name, amount := range byCategory {
		categories = append(categories, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	fmt.Println("Despesas por categoria:")
	for _, c := range categories {
		fmt.Printf("  %-16s %s\n", c.Name, core.FormatAmount(c.Amount))
	}
	return nil
}
