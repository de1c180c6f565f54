package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/catalog"
	"github.com/dogfinder/dogfinder/internal/config"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/location"
	"github.com/dogfinder/dogfinder/internal/settings"
	"github.com/dogfinder/dogfinder/internal/tui/state"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rex  = domain.Dog{ID: "d1", Name: "Rex", Age: 3, Breed: "Akita", ZipCode: "10001"}
	fido = domain.Dog{ID: "d2", Name: "Fido", Age: 5, Breed: "Beagle", ZipCode: "10002"}
)

func setCredentials(t *testing.T, name, email string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("DOGFINDER_USER_NAME", name)
	t.Setenv("DOGFINDER_USER_EMAIL", email)
	config.Load()
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

type fakeSession struct {
	loginErr  error
	logins    int
	logouts   int
	lastName  string
	lastEmail string
}

func (f *fakeSession) Login(_ context.Context, name, email string) (*domain.Session, error) {
	f.logins++
	f.lastName, f.lastEmail = name, email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.Session{Name: name, Email: email}, nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	return nil
}

type fakeSearch struct {
	fakeSession
	applied  domain.FilterState
	nearMe   bool
	pages    [][]domain.Dog
	page     int
	applyErr error
}

func (f *fakeSearch) ApplyFilters(_ context.Context, filters domain.FilterState) error {
	f.applied = filters
	return f.applyErr
}

func (f *fakeSearch) ToggleNearMe(context.Context) error {
	f.nearMe = !f.nearMe
	return nil
}

func (f *fakeSearch) NextPage(context.Context) error {
	if f.page+1 >= len(f.pages) {
		return domain.ErrPageUnavailable
	}
	f.page++
	return nil
}

func (f *fakeSearch) Catalog() catalog.Snapshot {
	var records []domain.Dog
	if f.page < len(f.pages) {
		records = f.pages[f.page]
	}
	return catalog.Snapshot{PageIndex: f.page, PageCount: len(f.pages), Records: records, Materialized: 2, Total: 2}
}

func openSearch(f *fakeSearch) func() (searchClient, error) {
	return func() (searchClient, error) { return f, nil }
}

func TestNewCommandsPanicOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewSearchCmd(nil) })
	assert.Panics(t, func() { NewBreedsCmd(nil) })
	assert.Panics(t, func() { NewMatchCmd(nil) })
	assert.Panics(t, func() { NewNearbyCmd(nil) })
	assert.Panics(t, func() { NewHistoryCmd(nil) })
	assert.Panics(t, func() { NewSettingsCmd(nil) })
	assert.Panics(t, func() { NewVersionCmd(nil) })
	assert.Panics(t, func() { NewTUICmd(nil, runProgram) })
}

func TestSearchPrintsRequestedPage(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeSearch{pages: [][]domain.Dog{{rex}, {fido}}}

	out, err := execute(t, NewSearchCmd(openSearch(f)),
		"--breed", "Beagle", "--age-max", "6", "--sort", "age:desc", "--page", "2", "--format", "simple")
	require.NoError(t, err)

	assert.Contains(t, out, "Fido")
	assert.NotContains(t, out, "Rex")
	assert.Equal(t, []string{"Beagle"}, f.applied.Breeds)
	assert.Nil(t, f.applied.AgeMin)
	require.NotNil(t, f.applied.AgeMax)
	assert.Equal(t, 6, *f.applied.AgeMax)
	assert.Equal(t, domain.Sort{Field: domain.SortFieldAge, Direction: domain.SortDesc}, f.applied.Sort)
	assert.Equal(t, "Ada", f.lastName)
	assert.Equal(t, 1, f.logouts)
}

func TestSearchNearMeTogglesLocation(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeSearch{pages: [][]domain.Dog{{rex}}}

	_, err := execute(t, NewSearchCmd(openSearch(f)), "--near-me")
	require.NoError(t, err)
	assert.True(t, f.nearMe)
}

func TestSearchPagePastEnd(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeSearch{pages: [][]domain.Dog{{rex}}}

	_, err := execute(t, NewSearchCmd(openSearch(f)), "--page", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past the last page")
	assert.Equal(t, 1, f.logouts)
}

func TestSearchRejectsInvalidOptions(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"inverted age range", []string{"--age-min", "8", "--age-max", "2"}, "exceeds maximum"},
		{"bad sort", []string{"--sort", "weight"}, "invalid sort field"},
		{"bad page", []string{"--page", "0"}, "page must be at least 1"},
		{"bad format", []string{"--format", "xml"}, "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeSearch{}
			_, err := execute(t, NewSearchCmd(openSearch(f)), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Zero(t, f.logins)
		})
	}
}

func TestSearchRequiresCredentials(t *testing.T) {
	setCredentials(t, "", "")
	f := &fakeSearch{}

	_, err := execute(t, NewSearchCmd(openSearch(f)))
	assert.ErrorIs(t, err, errMissingCredentials)
	assert.Zero(t, f.logins)
}

func TestSearchShowsUserMessageOnFailure(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	cause := errors.New("status 500")
	f := &fakeSearch{applyErr: domain.NewFailure(domain.CatalogFetchFailure, "search", cause)}

	_, err := execute(t, NewSearchCmd(openSearch(f)))
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch dogs. Please try again.", err.Error())
	assert.ErrorIs(t, err, cause)
}

type fakeBreeds struct {
	fakeSession
	breeds []string
}

func (f *fakeBreeds) LoadBreeds(context.Context) ([]string, error) { return f.breeds, nil }

func TestBreedsFiltersList(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeBreeds{breeds: []string{"Akita", "Beagle", "Border Collie", "Boxer"}}
	open := func() (breedsClient, error) { return f, nil }

	out, err := execute(t, NewBreedsCmd(open), "--filter", "bo")
	require.NoError(t, err)
	assert.Equal(t, "Border Collie\nBoxer\n", out)
}

func TestBreedsFilterModes(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	breeds := []string{"Akita", "Border Collie", "Collie Border", "Boxer"}
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"words in any order", []string{"--filter", "border collie"}, "Border Collie\nCollie Border\n"},
		{"exact phrase", []string{"--filter", "border collie", "--exact"}, "Border Collie\n"},
		{"regex", []string{"--filter", "^bo.e", "--regex"}, "Boxer\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeBreeds{breeds: breeds}
			open := func() (breedsClient, error) { return f, nil }

			out, err := execute(t, NewBreedsCmd(open), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBreedsRejectsBadFilterFlags(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")

	f := &fakeBreeds{}
	open := func() (breedsClient, error) { return f, nil }
	_, err := execute(t, NewBreedsCmd(open), "--filter", "((", "--regex")
	assert.ErrorContains(t, err, "invalid regex")

	_, err = execute(t, NewBreedsCmd(open), "--regex", "--exact")
	assert.Error(t, err)
	assert.Zero(t, f.logins)
}

func TestBreedsLoginFailure(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeBreeds{}
	f.loginErr = domain.NewFailure(domain.AuthFailure, "login", errors.New("status 401"))
	open := func() (breedsClient, error) { return f, nil }

	_, err := execute(t, NewBreedsCmd(open))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Login failed")
	assert.Zero(t, f.logouts)
}

type fakeMatch struct {
	fakeSession
	ids []string
}

func (f *fakeMatch) RequestMatchFor(_ context.Context, ids []string) (app.MatchResult, error) {
	f.ids = ids
	return app.MatchResult{Dog: fido, Celebration: 1}, nil
}

func TestMatchPrintsMatchedDog(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeMatch{}
	open := func() (matchClient, error) { return f, nil }

	out, err := execute(t, NewMatchCmd(open), "d1", "d2", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, f.ids)
	assert.Contains(t, out, `"id": "d2"`)
}

func TestMatchRequiresIDs(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	f := &fakeMatch{}
	open := func() (matchClient, error) { return f, nil }

	_, err := execute(t, NewMatchCmd(open))
	assert.Error(t, err)
	assert.Zero(t, f.logins)
}

type fakeNearby struct {
	fakeSession
}

func (f *fakeNearby) ResolveNearby(context.Context) (location.Nearby, error) {
	return location.Nearby{
		Geohash:  "dr5ru7",
		Location: domain.Location{City: "New York", State: "NY", ZipCode: "10001"},
		ZipCodes: []string{"10001", "10002"},
	}, nil
}

func TestNearbyPrintsZipCodes(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	open := func() (nearbyClient, error) { return &fakeNearby{}, nil }

	out, err := execute(t, NewNearbyCmd(open))
	require.NoError(t, err)
	assert.Contains(t, out, "New York")
	assert.Contains(t, out, "[dr5ru7]")
	assert.Contains(t, out, "Zip codes: 10001, 10002")
}

type fakeHistory struct {
	records  []domain.MatchRecord
	limit    int
	days     int
	dryRun   bool
	pruneHit int
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]domain.MatchRecord, error) {
	f.limit = limit
	return f.records, nil
}

func (f *fakeHistory) Prune(_ context.Context, days int, dryRun bool) (int, error) {
	f.days, f.dryRun = days, dryRun
	return f.pruneHit, nil
}

func TestHistoryListsRecords(t *testing.T) {
	f := &fakeHistory{records: []domain.MatchRecord{{ID: "m1", DogID: "d2", DogName: "Fido", Breed: "Beagle", ZipCode: "10002", FavoritesCount: 2}}}
	open := func() (historyClient, error) { return f, nil }

	out, err := execute(t, NewHistoryCmd(open), "--limit", "5", "--format", "simple")
	require.NoError(t, err)
	assert.Equal(t, 5, f.limit)
	assert.Contains(t, out, "Fido")
}

func TestHistoryDisabled(t *testing.T) {
	open := func() (historyClient, error) { return nil, app.ErrHistoryDisabled }

	_, err := execute(t, NewHistoryCmd(open))
	assert.ErrorIs(t, err, app.ErrHistoryDisabled)
}

func TestHistoryPrune(t *testing.T) {
	f := &fakeHistory{pruneHit: 3}
	open := func() (historyClient, error) { return f, nil }

	out, err := execute(t, NewHistoryCmd(open), "prune", "--days", "7", "--dryrun")
	require.NoError(t, err)
	assert.Equal(t, 7, f.days)
	assert.True(t, f.dryRun)
	assert.Contains(t, out, "Would remove 3 matches")
}

type fakeSettings struct {
	current *settings.Settings
	resets  int
}

func (f *fakeSettings) ResetSettings() (*settings.Settings, error) {
	f.resets++
	return settings.DefaultSettings(), nil
}

func (f *fakeSettings) LoadSettings() (*settings.Settings, error) { return f.current, nil }
func (f *fakeSettings) SettingsPath() string                     { return "/tmp/tui.toml" }

func TestSettingsShowAndReset(t *testing.T) {
	s := settings.DefaultSettings()
	s.ViewMode = settings.ViewModeDetailed
	f := &fakeSettings{current: s}

	out, err := execute(t, NewSettingsCmd(f), "show")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# /tmp/tui.toml\n"))
	assert.Contains(t, out, "view_mode = 'detailed'")

	_, err = execute(t, NewSettingsCmd(f), "reset")
	require.NoError(t, err)
	assert.Equal(t, 1, f.resets)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(func() string { return "1.2.3" }))
	require.NoError(t, err)
	assert.Equal(t, "dogfinder version 1.2.3\n", out)
}

func TestTUICmdRunsModel(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	a := app.New(new(api.MockService), app.Config{})

	var got tea.Model
	var optCount int
	runner := func(m tea.Model, opts ...tea.ProgramOption) error {
		got, optCount = m, len(opts)
		return nil
	}
	open := func() (state.Finder, error) { return a, nil }

	_, err := execute(t, NewTUICmd(open, runner), "--no-save")
	require.NoError(t, err)
	assert.IsType(t, &state.Model{}, got)
	assert.Equal(t, 2, optCount)
}

func TestTUICmdRejectsConflictingFilterFlags(t *testing.T) {
	setCredentials(t, "Ada", "ada@example.com")
	ran := false
	runner := func(tea.Model, ...tea.ProgramOption) error {
		ran = true
		return nil
	}
	open := func() (state.Finder, error) { return app.New(new(api.MockService), app.Config{}), nil }

	_, err := execute(t, NewTUICmd(open, runner), "--regex", "--exact")
	assert.Error(t, err)
	assert.False(t, ran)
}
