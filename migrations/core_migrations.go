package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_players_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						first_name VARCHAR(100) NOT NULL,
						last_name VARCHAR(100) NOT NULL,
						birth_date VARCHAR(10),
						gender VARCHAR(20),
						dominant_hand VARCHAR(10),
						skill_level VARCHAR(30),
						avatar_url VARCHAR(500),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_players_team_id ON players(team_id);
					CREATE INDEX IF NOT EXISTS idx_players_team_last_name ON players(team_id, last_name);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000001_create_matches_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						date VARCHAR(10) NOT NULL,
						surface VARCHAR(30),
						format VARCHAR(10) NOT NULL DEFAULT 'singles',
						status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
						notes TEXT,
						final_result VARCHAR(20),
						score VARCHAR(100),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT chk_matches_format CHECK (format IN ('singles', 'doubles')),
						CONSTRAINT chk_matches_status CHECK (status IN ('scheduled', 'in_progress', 'completed')),
						CONSTRAINT chk_matches_final_result CHECK (final_result IS NULL OR final_result IN ('win', 'loss', 'retired'))
					);
					CREATE INDEX IF NOT EXISTS idx_matches_team_date ON matches(team_id, date DESC);

					CREATE TABLE IF NOT EXISTS match_players (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id BIGINT REFERENCES players(id) ON DELETE SET NULL,
						display_name VARCHAR(255) NOT NULL,
						side CHAR(1) NOT NULL,
						role VARCHAR(20) NOT NULL,
						is_tracked BOOLEAN NOT NULL DEFAULT false,
						CONSTRAINT chk_match_players_side CHECK (side IN ('A', 'B')),
						CONSTRAINT chk_match_players_role CHECK (role IN ('player', 'partner', 'opponent_1', 'opponent_2'))
					);
					CREATE INDEX IF NOT EXISTS idx_match_players_match_id ON match_players(match_id);
					CREATE INDEX IF NOT EXISTS idx_match_players_player_id ON match_players(player_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS match_players CASCADE;
					DROP TABLE IF EXISTS matches CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000002_create_sets_table",
			Up: func(db *gorm.DB) error {
				// set_number is assigned as max + 1 by the application and is
				// deliberately not unique.
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS sets (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						set_number INT NOT NULL,
						side_a_games INT NOT NULL DEFAULT 0,
						side_b_games INT NOT NULL DEFAULT 0,
						tiebreak_a INT,
						tiebreak_b INT,
						started_at TIMESTAMP NULL,
						completed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_sets_match_number ON sets(match_id, set_number);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS sets CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000003_create_set_stats_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS set_player_tech_stats (
						id BIGSERIAL PRIMARY KEY,
						set_id BIGINT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
						match_player_id BIGINT NOT NULL REFERENCES match_players(id) ON DELETE CASCADE,
						aces INT, double_faults INT,
						first_serve_in INT, first_serve_total INT, first_serve_points_won INT,
						second_serve_in INT, second_serve_total INT, second_serve_points_won INT,
						first_return_in INT, first_return_total INT,
						second_return_in INT, second_return_total INT,
						return_points_won INT, return_points_total INT,
						short_rallies_won INT, short_rallies_lost INT,
						long_rallies_won INT, long_rallies_lost INT,
						forced_errors INT, unforced_errors INT,
						fh_winners INT, fh_unforced_errors INT,
						bh_winners INT, bh_unforced_errors INT,
						net_approaches INT, net_points_won INT, net_errors INT,
						volley_winners INT, volley_errors INT,
						smash_winners INT, smash_errors INT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_tech_set_player ON set_player_tech_stats(set_id, match_player_id);

					CREATE TABLE IF NOT EXISTS set_player_tactical_stats (
						id BIGSERIAL PRIMARY KEY,
						set_id BIGINT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
						match_player_id BIGINT NOT NULL REFERENCES match_players(id) ON DELETE CASCADE,
						deuce_games_played INT, deuce_games_won INT,
						break_points_faced INT, break_points_saved INT,
						break_points_created INT, break_points_converted INT,
						cross_court INT, down_the_line INT,
						drop_shots INT, lobs INT, approach_shots INT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_tactical_set_player ON set_player_tactical_stats(set_id, match_player_id);

					CREATE TABLE IF NOT EXISTS set_player_physical_mental_stats (
						id BIGSERIAL PRIMARY KEY,
						set_id BIGINT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
						match_player_id BIGINT NOT NULL REFERENCES match_players(id) ON DELETE CASCADE,
						energy INT DEFAULT 5, focus INT DEFAULT 5, composure INT DEFAULT 5,
						confidence INT DEFAULT 5, movement INT DEFAULT 5, resilience INT DEFAULT 5,
						coach_notes TEXT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_physical_set_player ON set_player_physical_mental_stats(set_id, match_player_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS set_player_physical_mental_stats CASCADE;
					DROP TABLE IF EXISTS set_player_tactical_stats CASCADE;
					DROP TABLE IF EXISTS set_player_tech_stats CASCADE;
				`).Error
			},
		},
	}
}
