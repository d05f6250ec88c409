package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DemoProfileID is the token subject owning the demo team. Point a dev token
// at it to browse the fixtures.
const DemoProfileID = "00000000-0000-4000-8000-000000000001"

type Fixtures struct {
	db   *gorm.DB
	log  *logrus.Entry
	rand *rand.Rand
	now  time.Time
}

// NewFixtures generates the same data for the same seed and reference time.
func NewFixtures(db *gorm.DB, log *logrus.Entry, seed int64, now time.Time) *Fixtures {
	return &Fixtures{
		db:   db,
		log:  log,
		rand: rand.New(rand.NewSource(seed)), // #nosec G404
		now:  now,
	}
}

type Summary struct {
	Players int
	Matches int
	Sets    int
}

// GenerateTestData creates a demo team with a roster, six months of matches,
// their sets and per-set statistics of the tracked players.
func (f *Fixtures) GenerateTestData() (*Summary, error) {
	f.log.Info("Starting fixtures generation")

	var summary Summary
	err := f.db.Transaction(func(tx *gorm.DB) error {
		team, err := f.generateTeam(tx)
		if err != nil {
			return fmt.Errorf("failed to generate team: %w", err)
		}

		players, err := f.generatePlayers(tx, team.ID)
		if err != nil {
			return fmt.Errorf("failed to generate players: %w", err)
		}
		summary.Players = len(players)

		matches, sets, err := f.generateMatches(tx, team.ID, players)
		if err != nil {
			return fmt.Errorf("failed to generate matches: %w", err)
		}
		summary.Matches, summary.Sets = matches, sets
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.log.WithFields(logrus.Fields{
		"players": summary.Players,
		"matches": summary.Matches,
		"sets":    summary.Sets,
	}).Info("Fixtures generated")
	return &summary, nil
}

func (f *Fixtures) generateTeam(tx *gorm.DB) (*authModels.Team, error) {
	profile := authModels.Profile{ID: DemoProfileID, Email: "coach@example.com", DisplayName: "Demo Coach"}
	if err := tx.Create(&profile).Error; err != nil {
		return nil, err
	}

	team := authModels.Team{Name: "Demo Tennis Club", Slug: "demo-tennis-club", CreatedBy: profile.ID}
	if err := tx.Create(&team).Error; err != nil {
		return nil, err
	}

	member := authModels.TeamMember{
		TeamID:    team.ID,
		ProfileID: profile.ID,
		Role:      authModels.RoleAdmin,
		Status:    authModels.StatusApproved,
	}
	if err := tx.Create(&member).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (f *Fixtures) generatePlayers(tx *gorm.DB, teamID uint) ([]models.Player, error) {
	names := [][2]string{
		{"Lucia", "Moreno"}, {"Hugo", "Lambert"}, {"Amara", "Nwosu"}, {"Felix", "Braun"},
		{"Sofia", "Ricci"}, {"Noah", "Girard"}, {"Ines", "Duarte"}, {"Kenji", "Sato"},
	}
	hands := []string{"right", "right", "left", "right"}
	levels := []string{"beginner", "intermediate", "advanced", "competition"}

	players := make([]models.Player, 0, len(names))
	for i, n := range names {
		hand := hands[i%len(hands)]
		level := levels[f.rand.Intn(len(levels))]
		birth := fmt.Sprintf("%d-%02d-%02d", 2004+f.rand.Intn(8), 1+f.rand.Intn(12), 1+f.rand.Intn(28))
		p := models.Player{
			TeamID:       teamID,
			FirstName:    n[0],
			LastName:     n[1],
			BirthDate:    &birth,
			DominantHand: &hand,
			SkillLevel:   &level,
		}
		if err := tx.Create(&p).Error; err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

var (
	surfaces  = []string{"Clay", "Hard", "Grass", "Indoor"}
	results   = []string{models.ResultWin, models.ResultWin, models.ResultLoss, models.ResultLoss, models.ResultWin, models.ResultRetired}
	opponents = []string{"R. Keller", "M. Dubois", "T. Novak", "A. Silva", "J. Evans", "P. Rossi"}
)

func (f *Fixtures) generateMatches(tx *gorm.DB, teamID uint, players []models.Player) (int, int, error) {
	const count = 30
	setCount := 0

	for i := 0; i < count; i++ {
		date := f.now.AddDate(0, 0, -f.rand.Intn(180)).Format("2006-01-02")
		surface := surfaces[f.rand.Intn(len(surfaces))]
		result := results[f.rand.Intn(len(results))]
		format := models.FormatSingles
		if i%4 == 3 {
			format = models.FormatDoubles
		}

		match := models.Match{
			TeamID:      teamID,
			Date:        date,
			Surface:     &surface,
			Format:      format,
			Status:      models.MatchCompleted,
			FinalResult: &result,
		}
		if err := tx.Create(&match).Error; err != nil {
			return 0, 0, err
		}

		participants := f.participants(match.ID, format, players)
		if err := tx.Create(&participants).Error; err != nil {
			return 0, 0, err
		}

		sets, err := f.generateSets(tx, match, result, participants)
		if err != nil {
			return 0, 0, err
		}
		setCount += sets
	}
	return count, setCount, nil
}

func (f *Fixtures) participants(matchID uint, format string, players []models.Player) []models.MatchPlayer {
	perm := f.rand.Perm(len(players))
	sideA := []string{models.RolePlayer}
	sideB := []string{models.RoleOpponent1}
	if format == models.FormatDoubles {
		sideA = append(sideA, models.RolePartner)
		sideB = append(sideB, models.RoleOpponent2)
	}

	var mps []models.MatchPlayer
	for i, role := range sideA {
		p := players[perm[i]]
		id := p.ID
		mps = append(mps, models.MatchPlayer{
			MatchID:     matchID,
			PlayerID:    &id,
			DisplayName: p.FullName(),
			Side:        models.SideA,
			Role:        role,
			IsTracked:   true,
		})
	}
	for i, role := range sideB {
		mp := models.MatchPlayer{
			MatchID:     matchID,
			DisplayName: opponents[f.rand.Intn(len(opponents))],
			Side:        models.SideB,
			Role:        role,
		}
		// Occasionally a club-mate is on the other side so head-to-head has data.
		if f.rand.Intn(4) == 0 {
			p := players[perm[len(sideA)+i]]
			id := p.ID
			mp.PlayerID = &id
			mp.DisplayName = p.FullName()
		}
		mps = append(mps, mp)
	}
	return mps
}

func (f *Fixtures) generateSets(tx *gorm.DB, match models.Match, result string, participants []models.MatchPlayer) (int, error) {
	n := 2 + f.rand.Intn(2)
	started := f.now.AddDate(0, 0, -1)

	for number := 1; number <= n; number++ {
		a, b := f.setScore(result == models.ResultWin, number == n)
		completed := started.Add(45 * time.Minute)
		set := models.Set{
			MatchID:     match.ID,
			SetNumber:   number,
			SideAGames:  a,
			SideBGames:  b,
			StartedAt:   &started,
			CompletedAt: &completed,
		}
		if err := tx.Create(&set).Error; err != nil {
			return 0, err
		}

		for _, mp := range participants {
			if !mp.IsTracked {
				continue
			}
			bundle := f.statsFor(set.ID, mp.ID)
			if err := tx.Create(&bundle.Tech).Error; err != nil {
				return 0, err
			}
			if err := tx.Create(&bundle.Tactical).Error; err != nil {
				return 0, err
			}
			if err := tx.Create(&bundle.PhysicalMental).Error; err != nil {
				return 0, err
			}
		}
		started = completed.Add(5 * time.Minute)
	}
	return n, nil
}

// setScore favours side A in winning matches. The deciding set always goes
// to the match winner.
func (f *Fixtures) setScore(sideAWins, deciding bool) (int, int) {
	loser := f.rand.Intn(5)
	if deciding || f.rand.Intn(3) > 0 {
		if sideAWins {
			return 6, loser
		}
		return loser, 6
	}
	if sideAWins {
		return loser, 6
	}
	return 6, loser
}

func (f *Fixtures) statsFor(setID, matchPlayerID uint) models.SetStatsBundle {
	counters := utils.EventCounters{
		FhWinners:       f.rand.Intn(8),
		BhWinners:       f.rand.Intn(5),
		ForcedErrors:    f.rand.Intn(6),
		UnforcedErrors:  2 + f.rand.Intn(10),
		Aces:            f.rand.Intn(5),
		DoubleFaults:    f.rand.Intn(4),
		NetErrors:       f.rand.Intn(4),
		LongRalliesWon:  f.rand.Intn(6),
		LongRalliesLost: f.rand.Intn(6),
		VolleyWinners:   f.rand.Intn(4),
		VolleyErrors:    f.rand.Intn(3),
	}

	firstTotal := 20 + f.rand.Intn(15)
	firstIn := firstTotal/2 + f.rand.Intn(firstTotal/2)
	approaches := 3 + f.rand.Intn(8)
	netWon := f.rand.Intn(approaches + 1)
	tech := utils.MergeCounters(counters, models.SetPlayerTechStats{
		FirstServeTotal: &firstTotal,
		FirstServeIn:    &firstIn,
		NetApproaches:   &approaches,
		NetPointsWon:    &netWon,
	})

	bpFaced := f.rand.Intn(6)
	bpSaved := f.rand.Intn(bpFaced + 1)
	energy := 4 + f.rand.Intn(6)
	notes := utils.EmbedQuickKPIs("", models.QuickKPIs{ServeQuality: "good", MentalState: "average"})

	bundle := models.SetStatsBundle{
		Tech: utils.NormalizeTech(&tech),
		Tactical: utils.NormalizeTactical(&models.SetPlayerTacticalStats{
			BreakPointsFaced: &bpFaced,
			BreakPointsSaved: &bpSaved,
		}),
		PhysicalMental: utils.NormalizePhysicalMental(&models.SetPlayerPhysicalMentalStats{
			Energy:     &energy,
			CoachNotes: &notes,
		}),
	}
	bundle.Key(setID, matchPlayerID)
	return bundle
}

// ClearAllData removes every team scoped row and the demo identities.
func (f *Fixtures) ClearAllData() error {
	f.log.Info("Clearing all fixture data")

	// children first
	tables := []interface{}{
		&models.SetPlayerPhysicalMentalStats{},
		&models.SetPlayerTacticalStats{},
		&models.SetPlayerTechStats{},
		&models.Set{},
		&models.MatchPlayer{},
		&models.Match{},
		&models.Player{},
		&authModels.TeamMember{},
		&authModels.Team{},
		&authModels.Profile{},
	}

	for _, table := range tables {
		if err := f.db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	if f.db.Dialector.Name() != "postgres" {
		return nil
	}
	sequences := []string{
		"teams_id_seq", "team_members_id_seq", "players_id_seq", "matches_id_seq",
		"match_players_id_seq", "sets_id_seq", "set_player_tech_stats_id_seq",
		"set_player_tactical_stats_id_seq", "set_player_physical_mental_stats_id_seq",
	}
	for _, seq := range sequences {
		if err := f.db.Exec("ALTER SEQUENCE " + seq + " RESTART WITH 1").Error; err != nil {
			f.log.WithError(err).WithField("sequence", seq).Warn("Failed to reset sequence")
		}
	}
	return nil
}
