package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const (
	donkiFlareEndpoint = "https://api.nasa.gov/DONKI/FLR"
	donkiCMEEndpoint   = "https://api.nasa.gov/DONKI/CME"
)

// DONKI collects space weather notifications over a trailing window. Solar
// flares and coronal mass ejections come from two separate endpoints and
// land in one table, distinguished by event type.
type DONKI struct {
	WindowDays int

	// now is overridable in tests.
	now func() time.Time
}

func (DONKI) Kind() types.Kind { return types.KindSpaceWeatherEvent }

func (d *DONKI) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	window := d.WindowDays
	if window <= 0 {
		window = 30
	}
	nowFn := d.now
	if nowFn == nil {
		nowFn = time.Now
	}
	startDate := nowFn().UTC().AddDate(0, 0, -window).Format("2006-01-02")
	params := url.Values{"startDate": {startDate}}

	res := &Result{}
	flares, err := fetchEvents(ctx, f, donkiFlareEndpoint, params)
	if err != nil {
		return nil, fmt.Errorf("donki flares: %w", err)
	}
	collectFlares(flares, res)

	cmes, err := fetchEvents(ctx, f, donkiCMEEndpoint, params)
	if err != nil {
		return nil, fmt.Errorf("donki cme: %w", err)
	}
	collectCMEs(cmes, res)

	return res, nil
}

func fetchEvents(ctx context.Context, f Fetcher, endpoint string, params url.Values) ([]map[string]any, error) {
	payload, err := f.Fetch(ctx, nasa.SourceDONKI, endpoint, params)
	if err != nil {
		return nil, err
	}
	var events []map[string]any
	if err := json.Unmarshal(payload, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func collectFlares(events []map[string]any, res *Result) {
	for _, ev := range events {
		eventID := asString(ev, "flrID")
		if eventID == "" {
			eventID = asString(ev, "eventID")
		}
		if eventID == "" {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.SpaceWeatherEvent{
			EventID:      eventID,
			EventType:    "FLR",
			Link:         asString(ev, "link"),
			StartTime:    timePtr(asString(ev, "beginTime")),
			PeakTime:     timePtr(asString(ev, "peakTime")),
			EndTime:      timePtr(asString(ev, "endTime")),
			Description:  asString(ev, "classType"),
			LinkedEvents: toJSON(ev["linkedEvents"]),
		})
	}
}

func collectCMEs(events []map[string]any, res *Result) {
	for _, ev := range events {
		eventID := asString(ev, "activityID")
		if eventID == "" {
			eventID = asString(ev, "eventID")
		}
		if eventID == "" {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.SpaceWeatherEvent{
			EventID:      eventID,
			EventType:    "CME",
			Link:         asString(ev, "link"),
			StartTime:    timePtr(asString(ev, "startTime")),
			Description:  "Coronal Mass Ejection",
			LinkedEvents: toJSON(ev["linkedEvents"]),
		})
	}
}
