package memory

import "debtrecon/internal/money"

// Demo returns a small ledger with one account per tier and a cache that lags on
// representative 4.
func Demo() *Ledger {
	m := money.MustParse
	remaining := func(s string) *money.Money {
		v := m(s)
		return &v
	}
	return New(
		Account{ID: 1, Active: true, LegacyDebt: m("0.00"),
			Invoices: []Invoice{{Amount: m("1200.00"), Allocated: m("1200.00"), Remaining: remaining("0.00")}},
			Payments: []Payment{{Amount: m("1200.00"), Allocated: true}}},
		Account{ID: 2, Active: true, LegacyDebt: m("85000.00"),
			Invoices: []Invoice{
				{Amount: m("60000.00"), Remaining: remaining("60000.00")},
				{Amount: m("25000.00"), Remaining: remaining("25000.00")},
			}},
		Account{ID: 3, Active: true, LegacyDebt: m("320000.00"),
			Invoices: []Invoice{{Amount: m("400000.00"), Allocated: m("80000.00"), Remaining: remaining("320000.00")}},
			Payments: []Payment{{Amount: m("80000.00"), Allocated: true}, {Amount: m("15000.00")}}},
		Account{ID: 4, Active: true, LegacyDebt: m("750000.00"),
			Invoices: []Invoice{{Amount: m("750000.00"), Remaining: remaining("745000.00")}}},
		Account{ID: 5, Active: false, LegacyDebt: m("500.00"),
			Invoices: []Invoice{{Amount: m("500.00"), Remaining: remaining("500.00")}}},
	)
}
