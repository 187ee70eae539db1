package app

import (
	"context"
	"database/sql"
	"fmt"
)

// Seed inserts a small demo data set: two customers, two technicians, one
// principal per role, plus contracts, work orders, notes, and invoices.
// Inserts are idempotent so the command can run against a seeded database.
func Seed(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`INSERT INTO customers (id, name, email, phone, address)
		 VALUES
		   (1, 'Acme Industrial', 'facilities@acme.example', '555-0101', '12 Plant Rd'),
		   (2, 'Harbor Foods', 'ops@harborfoods.example', '555-0102', '8 Dock St')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO technicians (id, name, email, skills, active)
		 VALUES
		   (1, 'Tess Nguyen', 'tess@fieldops.example', 'hvac,electrical', true),
		   (2, 'Marco Ruiz', 'marco@fieldops.example', 'plumbing', true)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO principals (id, external_id, name, email, role, customer_profile_id, technician_profile_id)
		 VALUES
		   (1, 'auth0|admin',  'root', 'admin@fieldops.example', 'admin', NULL, NULL),
		   (2, 'auth0|dana',   'dana', 'dana@fieldops.example', 'dispatcher', NULL, NULL),
		   (3, 'auth0|tess',   'tess', 'tess@fieldops.example', 'technician', NULL, 1),
		   (4, 'auth0|acme',   'acme', 'facilities@acme.example', 'customer', 1, NULL)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO contracts (id, customer_id, name, starts_at, active)
		 VALUES
		   (1, 1, 'Acme annual maintenance', now() - interval '90 days', true)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO work_orders (id, number, customer_id, assigned_technician_id, contract_id, status, priority, summary, description)
		 VALUES
		   (1, 'WO-SEED0001', 1, 1, 1, 'open', 'high', 'Rooftop unit not cooling', 'Compressor short-cycles.'),
		   (2, 'WO-SEED0002', 1, NULL, 1, 'open', 'normal', 'Quarterly filter swap', ''),
		   (3, 'WO-SEED0003', 2, 2, NULL, 'scheduled', 'normal', 'Walk-in freezer drain clog', '')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO work_order_notes (id, work_order_id, author_id, body)
		 VALUES
		   (1, 1, 2, 'Customer reports unit icing over by noon.'),
		   (2, 1, 3, 'Checked refrigerant pressure, ordering a TXV.')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO invoices (id, number, work_order_id, customer_id, amount_cents, status, issued_at)
		 VALUES
		   (1, 'INV-SEED0001', 3, 2, 42000, 'issued', now() - interval '7 days')
		 ON CONFLICT (id) DO NOTHING`,

		// Bump the sequences past the seeded IDs.
		`SELECT setval('customers_id_seq', (SELECT MAX(id) FROM customers))`,
		`SELECT setval('technicians_id_seq', (SELECT MAX(id) FROM technicians))`,
		`SELECT setval('principals_id_seq', (SELECT MAX(id) FROM principals))`,
		`SELECT setval('contracts_id_seq', (SELECT MAX(id) FROM contracts))`,
		`SELECT setval('work_orders_id_seq', (SELECT MAX(id) FROM work_orders))`,
		`SELECT setval('work_order_notes_id_seq', (SELECT MAX(id) FROM work_order_notes))`,
		`SELECT setval('invoices_id_seq', (SELECT MAX(id) FROM invoices))`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
