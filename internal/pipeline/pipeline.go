// Package pipeline drives the build and update control flow: enumerate the
// entities needing ingestion, call the box score transform per game, and
// persist the results.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/boxscore"
	"nbadb/ingestion/internal/cache"
	"nbadb/ingestion/internal/client"
	"nbadb/ingestion/internal/metrics"
	"nbadb/ingestion/internal/models"
	"nbadb/ingestion/internal/repository"
)

// StatsAPI is the slice of the stats client the pipeline consumes.
type StatsAPI interface {
	BoxScoreAdvanced(ctx context.Context, gameID int) (*client.StatsResponse, error)
	CommonTeamYears(ctx context.Context, leagueID string) ([]client.TeamYear, error)
	TeamGameLog(ctx context.Context, teamID int, season string) ([]client.TeamGameLogEntry, error)
	CommonAllPlayers(ctx context.Context, leagueID, season string) ([]client.CommonAllPlayer, error)
	PlayerCardByCode(ctx context.Context, playerCode string) (*client.PlayerCard, error)
	PlayerAge(ctx context.Context, playerID int) (int, error)
}

// Options configures a Pipeline.
type Options struct {
	LeagueID      string
	Season        string
	FanDuel       boxscore.ScoringWeights
	DraftKings    boxscore.ScoringWeights
	PlayerCardTTL time.Duration
}

// Pipeline orchestrates ingestion against one league and season.
type Pipeline struct {
	api   StatsAPI
	db    *repository.Database
	cache *cache.RedisCache // optional, nil disables caching
	opts  Options
}

// New creates a Pipeline. cache may be nil.
func New(api StatsAPI, db *repository.Database, c *cache.RedisCache, opts Options) *Pipeline {
	return &Pipeline{
		api:   api,
		db:    db,
		cache: c,
		opts:  opts,
	}
}

// Build performs a full historical ingestion for the configured season:
// schema, teams, games, players, then every game's box score.
func (p *Pipeline) Build(ctx context.Context) error {
	start := time.Now()
	log.Info().
		Str("league", p.opts.LeagueID).
		Str("season", p.opts.Season).
		Msg("Starting full build")

	if err := p.db.ApplySchema(ctx); err != nil {
		return err
	}
	if err := p.buildTeams(ctx); err != nil {
		return err
	}
	if err := p.buildGames(ctx, 0); err != nil {
		return err
	}
	if err := p.buildPlayers(ctx); err != nil {
		return err
	}

	gameIDs, err := p.db.Games.ListGameIDs(ctx)
	if err != nil {
		return err
	}
	result := p.ingestGameLogs(ctx, gameIDs)

	metrics.RecordSyncOperation("build", "success", time.Since(start).Seconds())
	metrics.LastSuccessfulSync.WithLabelValues("build").SetToCurrentTime()
	log.Info().
		Int("games_ingested", result.Ingested).
		Int("games_failed", len(result.Failed)).
		Dur("duration", time.Since(start)).
		Msg("Full build complete")

	return nil
}

// Update performs an incremental ingestion of the named tables, any subset
// of {games, game_logs}.
func (p *Pipeline) Update(ctx context.Context, tables []string) error {
	for _, table := range tables {
		switch table {
		case "games":
			if err := p.updateGames(ctx); err != nil {
				return err
			}
		case "game_logs":
			if err := p.updateGameLogs(ctx); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown update table %q (want games or game_logs)", table)
		}
	}
	return nil
}

// buildTeams fetches the franchise list and stores every team that has an
// abbreviation.
func (p *Pipeline) buildTeams(ctx context.Context) error {
	teams, err := p.api.CommonTeamYears(ctx, p.opts.LeagueID)
	if err != nil {
		metrics.RecordError("fetch_teams")
		return fmt.Errorf("failed to build teams: %w", err)
	}

	created := 0
	for _, t := range teams {
		if t.TeamID == nil || t.Abbreviation == nil || *t.Abbreviation == "" {
			continue
		}
		team := &models.Team{
			TeamID:       int(*t.TeamID),
			Abbreviation: *t.Abbreviation,
		}
		if err := p.db.Teams.Create(ctx, team); err != nil {
			return err
		}
		created++
	}

	metrics.TeamsIngested.Set(float64(created))
	log.Info().Int("teams", created).Msg("Teams built")
	return nil
}

// buildGames enumerates the season's games from every stored team's game
// log and stores those with ids above minGameID. Each game appears in two
// logs, so enumeration dedups by id.
func (p *Pipeline) buildGames(ctx context.Context, minGameID int) error {
	teams, err := p.db.Teams.List(ctx)
	if err != nil {
		return err
	}

	seen := make(map[int]bool)
	created := 0
	for _, team := range teams {
		entries, err := p.api.TeamGameLog(ctx, team.TeamID, p.opts.Season)
		if err != nil {
			metrics.RecordError("fetch_game_log")
			return fmt.Errorf("failed to build games: %w", err)
		}

		for _, entry := range entries {
			if entry.GameID == nil || entry.GameDate == nil {
				continue
			}
			gameID, err := strconv.Atoi(*entry.GameID)
			if err != nil {
				return fmt.Errorf("unparseable game id %q for team %d: %w", *entry.GameID, team.TeamID, err)
			}
			if gameID <= minGameID || seen[gameID] {
				continue
			}
			seen[gameID] = true

			gameDate, err := models.ParseGameDate(*entry.GameDate)
			if err != nil {
				return fmt.Errorf("unparseable game date for game %d: %w", gameID, err)
			}

			game := &models.Game{
				GameID:   gameID,
				GameDate: gameDate,
				SeasonID: p.opts.Season,
			}
			if err := p.db.Games.Create(ctx, game); err != nil {
				return err
			}
			created++
		}
	}

	log.Info().Int("games", created).Msg("Games built")
	return nil
}

// buildPlayers fetches the current-season roster and stores each player
// with name, collapsed position, and age. A player whose position cannot be
// collapsed is skipped and logged, not fatal for the batch.
func (p *Pipeline) buildPlayers(ctx context.Context) error {
	players, err := p.api.CommonAllPlayers(ctx, p.opts.LeagueID, p.opts.Season)
	if err != nil {
		metrics.RecordError("fetch_players")
		return fmt.Errorf("failed to build players: %w", err)
	}

	created := 0
	for _, row := range players {
		if row.PersonID == nil || row.PlayerCode == nil || *row.PlayerCode == "" {
			continue
		}
		playerID := int(*row.PersonID)

		card, err := p.playerCard(ctx, fixPlayerCode(*row.PlayerCode))
		if err != nil {
			metrics.RecordError("fetch_player_card")
			return fmt.Errorf("failed to build players: %w", err)
		}
		meta := card.SportsContent.Player.Meta

		position, err := models.CollapsePosition(playerID, meta.PositionGranularFull)
		if err != nil {
			metrics.RecordError("position_collapse")
			log.Error().
				Int("player_id", playerID).
				Str("granular", meta.PositionGranularFull).
				Err(err).
				Msg("Skipping player with unrecognized position")
			continue
		}

		age, err := p.api.PlayerAge(ctx, playerID)
		if err != nil {
			metrics.RecordError("fetch_player_age")
			return fmt.Errorf("failed to build players: %w", err)
		}

		player := &models.Player{
			PlayerID:  playerID,
			FirstName: meta.FirstName,
			LastName:  meta.LastName,
			Position:  position,
			Age:       age,
		}
		if err := p.db.Players.Create(ctx, player); err != nil {
			return err
		}
		created++
	}

	metrics.PlayersIngested.Set(float64(created))
	log.Info().Int("players", created).Msg("Players built")
	return nil
}

// playerCard fetches a player card, going through the cache when one is
// configured.
func (p *Pipeline) playerCard(ctx context.Context, playerCode string) (*client.PlayerCard, error) {
	key := "playercard:" + playerCode

	if p.cache != nil {
		var cached client.PlayerCard
		hit, err := p.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Str("key", key).Err(err).Msg("Cache read failed, fetching from API")
		} else if hit {
			return &cached, nil
		}
	}

	card, err := p.api.PlayerCardByCode(ctx, playerCode)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, card, p.opts.PlayerCardTTL); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("Cache write failed")
		}
	}
	return card, nil
}

// fixPlayerCode corrects roster player codes that do not match the player
// card URL slug.
func fixPlayerCode(code string) string {
	if code == "ish_smith" {
		return "ishmael_smith"
	}
	return code
}

// updateGames stores games newer than the highest stored game id.
func (p *Pipeline) updateGames(ctx context.Context) error {
	start := time.Now()

	maxID, err := p.db.Games.MaxGameID(ctx)
	if err != nil {
		return err
	}
	if err := p.buildGames(ctx, maxID); err != nil {
		metrics.RecordSyncOperation("update_games", "error", time.Since(start).Seconds())
		return err
	}

	metrics.RecordSyncOperation("update_games", "success", time.Since(start).Seconds())
	metrics.LastSuccessfulSync.WithLabelValues("update_games").SetToCurrentTime()
	return nil
}

// updateGameLogs ingests box scores for stored games newer than the
// highest game id present in the team game logs.
func (p *Pipeline) updateGameLogs(ctx context.Context) error {
	start := time.Now()

	maxID, err := p.db.GameLogs.MaxTeamGameID(ctx)
	if err != nil {
		return err
	}
	gameIDs, err := p.db.Games.ListGameIDsAfter(ctx, maxID)
	if err != nil {
		return err
	}

	result := p.ingestGameLogs(ctx, gameIDs)

	metrics.RecordSyncOperation("update_game_logs", "success", time.Since(start).Seconds())
	metrics.LastSuccessfulSync.WithLabelValues("update_game_logs").SetToCurrentTime()
	log.Info().
		Int("games_ingested", result.Ingested).
		Int("games_failed", len(result.Failed)).
		Msg("Game log update complete")

	return nil
}

// ingestGameLogs runs the box score transform for each game and persists
// the resulting records, with the end-of-batch retry policy.
func (p *Pipeline) ingestGameLogs(ctx context.Context, gameIDs []int) *BatchResult {
	result := runBatch(ctx, gameIDs, p.ingestGame)

	metrics.GamesIngested.Set(float64(result.Ingested))
	metrics.GamesFailed.Set(float64(len(result.Failed)))
	return result
}

// ingestGame fetches, transforms, and persists one game's box score. Team
// rows are written before player rows.
func (p *Pipeline) ingestGame(ctx context.Context, gameID int) error {
	resp, err := p.api.BoxScoreAdvanced(ctx, gameID)
	if err != nil {
		return err
	}

	teamRecords, playerRecords, err := boxscore.IngestGame(gameID, resp, p.opts.FanDuel, p.opts.DraftKings)
	if err != nil {
		metrics.RecordError("ingest_game")
		return err
	}

	for i := range teamRecords {
		if err := p.db.GameLogs.InsertTeamGame(ctx, &teamRecords[i]); err != nil {
			return err
		}
	}
	for i := range playerRecords {
		if err := p.db.GameLogs.InsertPlayerGame(ctx, &playerRecords[i]); err != nil {
			return err
		}
	}

	log.Debug().
		Int("game_id", gameID).
		Int("players", len(playerRecords)).
		Msg("Game ingested")

	return nil
}
