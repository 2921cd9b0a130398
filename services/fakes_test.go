package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/repositories"
	"github.com/suzanemu/pubg-point-bot/storage"
	"github.com/suzanemu/pubg-point-bot/vision"
)

// Ин-мемори фейки репозиториев для сервисных тестов.

type fakeTeamRepo struct {
	teams map[int]models.Team
}

func newFakeTeamRepo(teams ...models.Team) *fakeTeamRepo {
	m := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		m[t.ID] = t
	}
	return &fakeTeamRepo{teams: m}
}

func (f *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	team.ID = len(f.teams) + 1
	f.teams[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (f *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	teams := make([]models.Team, 0)
	// Порядок создания == порядок ID.
	for id := 1; id <= len(f.teams); id++ {
		if t, ok := f.teams[id]; ok && t.TournamentID == tournamentID {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int]models.Tournament
}

func newFakeTournamentRepo(tournaments ...models.Tournament) *fakeTournamentRepo {
	m := make(map[int]models.Tournament, len(tournaments))
	for _, t := range tournaments {
		m[t.ID] = t
	}
	return &fakeTournamentRepo{tournaments: m}
}

func (f *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = len(f.tournaments) + 1
	f.tournaments[tournament.ID] = *tournament
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	list := make([]models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		list = append(list, t)
	}
	return list, nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.tournaments, id)
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	results []models.MatchResult
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, result *models.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	result.ID = len(f.results) + 1
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeMatchRepo) ListByTeam(ctx context.Context, teamID int) ([]models.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.MatchResult, 0)
	for _, r := range f.results {
		if r.TeamID == teamID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.MatchResult, len(f.results))
	copy(out, f.results)
	return out, nil
}

func (f *fakeMatchRepo) CountByTeam(ctx context.Context, teamID int) (int, error) {
	results, _ := f.ListByTeam(ctx, teamID)
	return len(results), nil
}

type fakeUploader struct {
	uploads int
	failOn  int // 1-based; 0 = never fail
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	f.uploads++
	if f.failOn != 0 && f.uploads == f.failOn {
		return nil, errors.New("storage write failed")
	}
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

// scriptedAnalyzer отдаёт заранее заданные ответы по порядку вызовов.
type scriptedAnalyzer struct {
	calls       int
	extractions []vision.Extraction
	errs        []error
}

func (f *scriptedAnalyzer) Analyze(ctx context.Context, imageURL string) (vision.Extraction, error) {
	i := f.calls
	f.calls++
	if i >= len(f.extractions) {
		return vision.Extraction{}, fmt.Errorf("unexpected analyzer call %d", i)
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.extractions[i], err
}

type recordingBroadcaster struct {
	calls []int
}

func (f *recordingBroadcaster) BroadcastStandings(tournamentID int, standings interface{}) {
	f.calls = append(f.calls, tournamentID)
}

func intPtr(v int) *int { return &v }
