package main

import (
	"fmt"
	"sync"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/config"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/location"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/storage/sqlite"
)

// deps builds the application on first use, after the root command has
// loaded the configuration.
type deps struct {
	once    sync.Once
	app     *app.App
	history *sqlite.HistoryStore
	err     error
}

var appDeps = &deps{}

// App returns the shared application.
func (d *deps) App() (*app.App, error) {
	d.once.Do(d.init)
	return d.app, d.err
}

// History returns the match history store, or app.ErrHistoryDisabled.
func (d *deps) History() (*sqlite.HistoryStore, error) {
	d.once.Do(d.init)
	if d.err != nil {
		return nil, d.err
	}
	if d.history == nil {
		return nil, app.ErrHistoryDisabled
	}
	return d.history, nil
}

// Close releases the history database.
func (d *deps) Close() {
	if d.history == nil {
		return
	}
	if err := d.history.Close(); err != nil {
		logging.Warn("closing history store", "error", err.Error())
	}
}

func (d *deps) init() {
	client, err := api.NewClient(
		config.APIBaseURL(),
		api.WithTimeout(config.GetDuration("request_timeout", api.DefaultTimeout)),
		api.WithLogger(logging.With("component", "api")),
	)
	if err != nil {
		d.err = fmt.Errorf("configure shelter service: %w", err)
		return
	}

	geo, err := location.NewGeolocator(geolocationSource())
	if err != nil {
		colors.Warning("ignoring location settings:", err.Error())
		geo = location.Unavailable{}
	}

	sort, err := domain.ParseSort(config.Get("default_sort", ""))
	if err != nil {
		colors.Warning("ignoring default_sort:", err.Error())
		sort = domain.DefaultSort()
	}

	cfg := app.Config{
		PageSize:           config.GetInt("page_size", 0),
		DefaultSort:        sort,
		Geolocator:         geo,
		GeolocationTimeout: config.GetDuration("geolocation_timeout", location.DefaultTimeout),
	}
	if config.GetBool("history_enabled", true) {
		store, err := sqlite.NewHistoryStore(sqlite.DefaultPath(config.Get("state_dir", "")))
		if err != nil {
			colors.Warning("match history disabled:", err.Error())
		} else {
			d.history = store
			cfg.History = store
		}
	}
	d.app = app.New(client, cfg)
}

func geolocationSource() location.Source {
	var src location.Source
	if lat, ok := config.GetFloat("latitude"); ok {
		src.Lat = &lat
	}
	if lon, ok := config.GetFloat("longitude"); ok {
		src.Lon = &lon
	}
	src.Geohash = config.Get("geohash", "")
	return src
}
