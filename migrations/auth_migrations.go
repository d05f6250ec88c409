package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_profiles_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS profiles (
						id VARCHAR(64) PRIMARY KEY,
						email VARCHAR(255),
						display_name VARCHAR(255),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS profiles CASCADE").Error
			},
		},
		{
			Name: "2025_01_01_000001_create_teams_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) NOT NULL,
						created_by VARCHAR(64) NOT NULL REFERENCES profiles(id),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_slug ON teams(slug);

					CREATE TABLE IF NOT EXISTS team_members (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						profile_id VARCHAR(64) NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
						role VARCHAR(20) NOT NULL DEFAULT 'coach',
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						reviewed_by VARCHAR(64),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT chk_team_members_role CHECK (role IN ('admin', 'coach')),
						CONSTRAINT chk_team_members_status CHECK (status IN ('pending', 'approved', 'rejected'))
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_team_profile ON team_members(team_id, profile_id);
					CREATE INDEX IF NOT EXISTS idx_team_members_profile_status ON team_members(profile_id, status);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS team_members CASCADE;
					DROP TABLE IF EXISTS teams CASCADE;
				`).Error
			},
		},
	}
}
