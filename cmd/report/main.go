// Command report prints a user's account balances and the receitas and
// despesas of one month.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"

	"confeitaria/internal/config"
	"confeitaria/internal/database"
	"confeitaria/internal/dates"
	"confeitaria/internal/logger"
	"confeitaria/internal/models"
	"confeitaria/internal/money"
	"confeitaria/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Report error: %v", err)
	}
}

func run() error {
	email := flag.String("email", "", "email of the account owner")
	month := flag.String("month", "", "month to summarize as YYYY-MM (default: current month)")
	flag.Parse()

	if *email == "" {
		return fmt.Errorf("usage: report -email <email> [-month YYYY-MM]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	clock := dates.NewClock(cfg.Timezone)

	from, to, err := monthBounds(clock, *month)
	if err != nil {
		return err
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()
	db := dbManager.DB()

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(*email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no user with email %s", *email)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	accountService := services.NewAccountService(db)
	accounts, err := accountService.ListAccounts(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	summary, err := services.NewTransactionService(db, accountService).Summarize(user.ID, from, to)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}

	fmt.Printf("Contas de %s\n", user.Email)
	printAccounts(accounts)
	fmt.Printf("\nResumo de %s a %s (transações pagas)\n", from, to)
	printSummary(summary)
	return nil
}

// monthBounds returns the first and last day of the month named by ym, or of
// the clock's current month when ym is empty.
func monthBounds(clock *dates.Clock, ym string) (models.Date, models.Date, error) {
	start := dates.StartOfMonth(clock.Now())
	if ym != "" {
		t, err := time.ParseInLocation("2006-01", ym, clock.Location())
		if err != nil {
			return models.Date{}, models.Date{}, fmt.Errorf("invalid -month %q, expected YYYY-MM", ym)
		}
		start = t
	}
	end := start.AddDate(0, 1, -1)
	return models.NewDate(start), models.NewDate(end), nil
}

func printAccounts(accounts []models.FinancialAccount) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Conta", "Tipo", "Ativa", "Saldo"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})

	var total int64
	for _, a := range accounts {
		active := "não"
		if a.IsActive {
			active = "sim"
		}
		table.Append([]string{a.Name, string(a.Type), active, money.FormatBRL(a.Balance)})
		total += a.Balance
	}
	table.SetFooter([]string{"", "", "Total", money.FormatBRL(total)})
	table.Render()
}

func printSummary(s *services.PeriodSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Receitas", "Despesas", "Saldo"})
	table.Append([]string{money.FormatBRL(s.Receitas), money.FormatBRL(s.Despesas), money.FormatBRL(s.Saldo)})
	table.Render()
}
