package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestMigrationsCoverCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		all.Write(b)
	}

	tables := []string{
		"projects",
		"order_groups",
		"unit_types",
		"unit_floor_types",
		"sales_prices",
		"project_inc_budgets",
		"down_payments",
		"installment_payment_orders",
		"over_due_rules",
		"contracts",
		"key_units",
		"house_units",
		"contract_prices",
		"contractors",
		"contractor_releases",
		"project_cash_books",
		"successions",
	}
	for _, table := range tables {
		if !strings.Contains(all.String(), "CREATE TABLE "+table) {
			t.Errorf("no CREATE TABLE for %s", table)
		}
	}
}
