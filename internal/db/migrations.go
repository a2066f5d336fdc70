package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "btree_gist";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'assignment_status') THEN
			CREATE TYPE assignment_status AS ENUM ('SCHEDULED', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'generator_status') THEN
			CREATE TYPE generator_status AS ENUM ('AVAILABLE', 'RENTED', 'MAINTENANCE', 'RETIRED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'checklist_direction') THEN
			CREATE TYPE checklist_direction AS ENUM ('DELIVERY', 'RETURN');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		document_number VARCHAR(32) NOT NULL,
		phone VARCHAR(32),
		email VARCHAR(255),
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_document_number ON customers (document_number) WHERE deleted_at IS NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_customers_deleted_at ON customers (deleted_at);`,
	`CREATE TABLE IF NOT EXISTS generators (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		serial_number VARCHAR(64) NOT NULL,
		brand VARCHAR(128) NOT NULL,
		model VARCHAR(128) NOT NULL,
		power_kva DOUBLE PRECISION NOT NULL,
		status generator_status NOT NULL DEFAULT 'AVAILABLE',
		current_customer_id UUID REFERENCES customers(id),
		hours_meter DOUBLE PRECISION NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_generators_serial_number ON generators (serial_number) WHERE deleted_at IS NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_generators_status ON generators (status);`,
	`CREATE INDEX IF NOT EXISTS idx_generators_deleted_at ON generators (deleted_at);`,
	`CREATE TABLE IF NOT EXISTS technicians (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32),
		email VARCHAR(255),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_technicians_deleted_at ON technicians (deleted_at);`,
	`CREATE TABLE IF NOT EXISTS maintenance_assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		technician_id UUID NOT NULL REFERENCES technicians(id),
		generator_id UUID NOT NULL REFERENCES generators(id),
		visit_date DATE NOT NULL,
		start_minute SMALLINT NOT NULL,
		end_minute SMALLINT NOT NULL,
		status assignment_status NOT NULL DEFAULT 'SCHEDULED',
		description TEXT,
		started_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		cancelled_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ,
		CONSTRAINT chk_assignment_time_range CHECK (start_minute >= 0 AND end_minute <= 1440 AND start_minute < end_minute)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_technician_id ON maintenance_assignments (technician_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_generator_id ON maintenance_assignments (generator_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_visit_date ON maintenance_assignments (visit_date);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_status ON maintenance_assignments (status);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_deleted_at ON maintenance_assignments (deleted_at);`,
	// The real double-booking guarantee. The in-process conflict check is
	// only fast feedback; two stale snapshots can both pass it, and this
	// constraint is what rejects the second write. Half-open ranges, so
	// back-to-back visits are allowed.
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'excl_active_technician_slot') THEN
			ALTER TABLE maintenance_assignments
				ADD CONSTRAINT excl_active_technician_slot
				EXCLUDE USING gist (
					technician_id WITH =,
					visit_date WITH =,
					int4range(start_minute::int, end_minute::int) WITH &&
				)
				WHERE (status IN ('SCHEDULED', 'IN_PROGRESS') AND deleted_at IS NULL);
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS maintenance_reports (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		assignment_id UUID NOT NULL UNIQUE REFERENCES maintenance_assignments(id) ON DELETE CASCADE,
		technician_id UUID NOT NULL,
		summary TEXT NOT NULL,
		hours_meter DOUBLE PRECISION,
		parts_used TEXT,
		photo_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_technician_id ON maintenance_reports (technician_id);`,
	`CREATE TABLE IF NOT EXISTS rental_checklists (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		generator_id UUID NOT NULL REFERENCES generators(id),
		customer_id UUID NOT NULL REFERENCES customers(id),
		direction checklist_direction NOT NULL,
		fuel_level_ok BOOLEAN NOT NULL,
		hours_meter DOUBLE PRECISION NOT NULL,
		visual_damage BOOLEAN NOT NULL,
		cables_included BOOLEAN NOT NULL,
		grounding_tested BOOLEAN NOT NULL,
		notes TEXT,
		filled_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_checklists_generator_id ON rental_checklists (generator_id);`,
	`CREATE INDEX IF NOT EXISTS idx_checklists_customer_id ON rental_checklists (customer_id);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_customers_updated_at') THEN
			CREATE TRIGGER trg_customers_updated_at
				BEFORE UPDATE ON customers
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_generators_updated_at') THEN
			CREATE TRIGGER trg_generators_updated_at
				BEFORE UPDATE ON generators
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_technicians_updated_at') THEN
			CREATE TRIGGER trg_technicians_updated_at
				BEFORE UPDATE ON technicians
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_assignments_updated_at') THEN
			CREATE TRIGGER trg_assignments_updated_at
				BEFORE UPDATE ON maintenance_assignments
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_reports_updated_at') THEN
			CREATE TRIGGER trg_reports_updated_at
				BEFORE UPDATE ON maintenance_reports
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
