package deps

import (
	"time"

	"github.com/linkdeck/linkdeck/internal/classify"
	"github.com/linkdeck/linkdeck/internal/clicks"
	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/favicon"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/sites"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Sites      *sites.Service     // corpus service (records, icons, search history)
	Clicks     *clicks.Tracker    // rolling click counters
	Favicons   *favicon.Cache     // icon probe cache
	Classifier *classify.Classifier
	DupConfig  dedup.Config // detector toggles for the duplicates endpoints
}

// Now resolves the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
