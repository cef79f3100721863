// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ManuGH/sportsguide/internal/config"
	"github.com/ManuGH/sportsguide/internal/epg"
	xglog "github.com/ManuGH/sportsguide/internal/log"
	"github.com/ManuGH/sportsguide/internal/metrics"
	"github.com/ManuGH/sportsguide/internal/playlist"
	"github.com/ManuGH/sportsguide/internal/schedule"
)

// Export reads the schedule and raw canvas files and writes the preview
// (when enabled), the playlist and the guide. now anchors PRE filler.
func Export(ctx context.Context, cfg config.AppConfig, now time.Time) (*Status, error) {
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	start := time.Now()
	paths := PathsFor(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		metrics.IncRefreshFailure("config")
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	records, err := schedule.LoadMatches(paths.Schedule)
	if err != nil {
		metrics.IncRefreshFailure("load")
		return nil, err
	}
	hero := schedule.LoadHeroIndex(paths.RawCanvas)

	summaries, playables := schedule.BuildSummaries(records, hero)
	channels := schedule.AssignChannels(summaries, schedule.Numbering{
		Base:     cfg.BaseChannel,
		IDPrefix: cfg.IDPrefix,
		Group:    cfg.ExportGroup,
	})
	metrics.RecordMatchesQualified(len(summaries))

	if cfg.PreviewEnabled {
		if err := writePreview(ctx, paths.Preview, schedule.Preview{Summary: summaries, Playables: playables}); err != nil {
			metrics.IncRefreshFailure("write_preview")
			return nil, err
		}
		metrics.RecordPlayables(len(playables))
		logger.Info().
			Str(xglog.FieldEvent, "preview.write").
			Str(xglog.FieldPath, paths.Preview).
			Int(xglog.FieldPlayables, len(playables)).
			Msg("deeplink preview written")
	}

	items := PlaylistItems(channels)
	if err := writeM3U(ctx, paths.Playlist, items, cfg.XTVGURL); err != nil {
		metrics.IncRefreshFailure("write_m3u")
		return nil, err
	}
	written := playlist.Count(items)
	metrics.RecordChannels("m3u", written)
	metrics.RecordArtifactValidity("m3u", validatePlaylist(paths.Playlist, written) == nil)
	logger.Info().
		Str(xglog.FieldEvent, "playlist.write").
		Str(xglog.FieldPath, paths.Playlist).
		Int(xglog.FieldChannels, written).
		Msg("playlist written")

	listings := Listings(ctx, channels)
	guide := epg.BuildGuide(cfg.Generator, listings, now, epg.Options{
		FillerBase: cfg.FillerBase,
		Location:   cfg.Location(),
		Categories: cfg.Categories,
	})
	if err := writeXMLTV(ctx, paths.XMLTV, guide.TV); err != nil {
		metrics.IncRefreshFailure("write_xmltv")
		return nil, err
	}
	pre, event, post := countKinds(guide.Blocks)
	metrics.RecordChannels("xmltv", len(guide.TV.Channels))
	metrics.RecordProgrammes(pre, event, post)
	if err := validateGuide(paths.XMLTV, len(guide.TV.Channels), len(guide.TV.Programs)); err != nil {
		metrics.RecordArtifactValidity("xmltv", false)
		logger.Warn().Err(err).
			Str(xglog.FieldEvent, "xmltv.invalid").
			Str(xglog.FieldPath, paths.XMLTV).
			Msg("written guide failed validation")
	} else {
		metrics.RecordArtifactValidity("xmltv", true)
	}
	logger.Info().
		Str(xglog.FieldEvent, "xmltv.write").
		Str(xglog.FieldPath, paths.XMLTV).
		Int(xglog.FieldChannels, len(guide.TV.Channels)).
		Int(xglog.FieldProgrammes, len(guide.TV.Programs)).
		Msg("XMLTV written")

	return &Status{
		LastRun:    now,
		DurationMS: time.Since(start).Milliseconds(),
		Matches:    len(summaries),
		Channels:   len(channels),
		Programmes: len(guide.TV.Programs),
		Playables:  len(playables),
	}, nil
}

// PlaylistItems maps channels to playlist entries. Entries without a URL are
// kept here and skipped by the playlist writer.
func PlaylistItems(channels []schedule.Channel) []playlist.Item {
	items := make([]playlist.Item, 0, len(channels))
	for _, ch := range channels {
		items = append(items, playlist.Item{
			Name:    ch.Name,
			TvgID:   ch.ID,
			TvgChNo: ch.Number,
			Group:   ch.Group,
			URL:     ch.Summary.URL(),
		})
	}
	return items
}

// Listings maps channels to guide listings.
func Listings(ctx context.Context, channels []schedule.Channel) []epg.Listing {
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	out := make([]epg.Listing, 0, len(channels))
	for _, ch := range channels {
		if ch.Summary.StartTime == nil {
			logger.Debug().
				Str(xglog.FieldEvent, "timeline.start_missing").
				Str(xglog.FieldChannelID, ch.ID).
				Msg("event has no start time, anchoring at now")
		}
		out = append(out, epg.Listing{
			Channel: epg.Channel{ID: ch.ID, DisplayName: ch.DisplayNames()},
			Event:   eventFromSummary(ch.Summary),
		})
	}
	return out
}

func eventFromSummary(s schedule.MatchSummary) epg.Event {
	ev := epg.Event{
		Title:      s.Title,
		ShortTitle: s.ShortTitle,
		SportName:  s.SportName,
		Type:       s.Type,
		Hero:       s.HeroDescription,
		Venue:      s.Venue,
		Home:       s.HomeTeam,
		Away:       s.AwayTeam,
		Duration:   time.Duration(s.DurationS) * time.Second,
	}
	if s.StartTime != nil {
		ev.Start = *s.StartTime
	}
	if s.EndTime != nil {
		ev.End = *s.EndTime
	}
	return ev
}

func countKinds(blocks []epg.Block) (pre, event, post int) {
	for _, b := range blocks {
		switch b.Kind {
		case epg.KindPre:
			pre++
		case epg.KindEvent:
			event++
		case epg.KindPost:
			post++
		}
	}
	return pre, event, post
}
