package database

import (
	"log"
)

// Initialize creates the Postgres objects AutoMigrate cannot express: the
// status enum types consumed by the model column tags, and the non-negative
// guard on the denormalized plan counter. Runs before GORM migration.
func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgresSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgresSQL Database.", "Initializing Constraints")
	if err := s.InitConstraints(); err != nil {
		return err
	}
	return nil
}

func (s *PostgreSQLStore) InitEnums() error {
	// Init all the enums
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'institute_status') THEN
				CREATE TYPE institute_status AS ENUM ('pending', 'approved', 'rejected');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'subscription_status') THEN
				CREATE TYPE subscription_status AS ENUM ('pending', 'active', 'rejected');
			END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

// InitConstraints adds the counter floor on subscription plans. The table may
// not exist on first boot; the constraint is applied after AutoMigrate too,
// so a missing table here is not an error.
func (s *PostgreSQLStore) InitConstraints() error {
	query := `
		DO $$
		BEGIN
			IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'subscription_plans')
			AND NOT EXISTS (
				SELECT 1 FROM information_schema.constraint_column_usage
				WHERE table_name = 'subscription_plans' AND constraint_name = 'subscription_plans_institutes_nonnegative'
			) THEN
				ALTER TABLE subscription_plans
					ADD CONSTRAINT subscription_plans_institutes_nonnegative CHECK (institutes >= 0);
			END IF;
		END $$;
	`
	_, err := s.db.Exec(query)
	return err
}
