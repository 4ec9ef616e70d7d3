// Package jobconf loads a job configuration document (YAML) into the
// Job and Site entities the frontier expects, applying the seed/job
// deep-merge rules and queuing each seed's first page.
package jobconf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/crawlfrontier/frontier/internal/canon"
	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/frontier"
	"github.com/crawlfrontier/frontier/internal/priority"
	"github.com/crawlfrontier/frontier/internal/robots"
)

// warcproxMetaHeader is the extra header key a seed's warcprox_meta
// setting is serialized into, read by the recording proxy out of band.
const warcproxMetaHeader = "Warcprox-Meta"

// Load decodes a YAML job configuration document.
func Load(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jobconf: decode: %w", err)
	}
	return doc, nil
}

// NewJob creates a Job from conf and, for every seed, a Site plus its
// queued seed Page (unless robots forbids it, or the robots checker
// reports a reached-limit signal, in which case the site is finished
// immediately via reached_limit instead).
func NewJob(ctx context.Context, fr *frontier.Frontier, checker robots.Checker, conf map[string]any) (*domain.Job, error) {
	job := &domain.Job{Conf: domain.JSONMap(conf)}
	if id, ok := conf["id"].(string); ok {
		job.ID = id
	}
	if err := fr.NewJob(ctx, job); err != nil {
		return nil, err
	}

	seeds, _ := conf["seeds"].([]any)
	for _, raw := range seeds {
		seedConf, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		merged, ok := merge(seedConf, conf).(map[string]any)
		if !ok {
			return job, fmt.Errorf("jobconf: merged seed configuration is not a map")
		}

		site, err := buildSite(job.ID, merged)
		if err != nil {
			return job, err
		}
		if err := fr.NewSite(ctx, site); err != nil {
			return job, err
		}

		if err := queueSeedPage(ctx, fr, checker, site); err != nil {
			return job, err
		}
	}

	return job, nil
}

func queueSeedPage(ctx context.Context, fr *frontier.Frontier, checker robots.Checker, site *domain.Site) error {
	permitted, err := checker.IsPermitted(ctx, site, site.Seed)
	if err != nil {
		if errors.Is(err, robots.ErrReachedLimit) {
			return fr.ReachedLimit(ctx, site, domain.JSONMap{"reason": "reached_limit during seed robots check"})
		}
		return fmt.Errorf("jobconf: robots check for seed %s: %w", site.Seed, err)
	}
	if !permitted {
		return nil
	}

	seedPage := domain.NewPage(site.ID, site.JobID, site.Seed, 0, "", priority.SeedPriority)
	return fr.NewPage(ctx, seedPage)
}

func buildSite(jobID string, merged map[string]any) (*domain.Site, error) {
	seedURL, ok := merged["url"].(string)
	if !ok || seedURL == "" {
		return nil, fmt.Errorf("jobconf: seed missing required url")
	}

	site := &domain.Site{JobID: jobID, Seed: seedURL}
	site.SetScope(buildScope(seedURL, merged["scope"]))

	if s, ok := merged["proxy"].(string); ok {
		site.Proxy = s
	}
	if b, ok := merged["ignore_robots"].(bool); ok {
		site.IgnoreRobots = b
	}
	if b, ok := merged["enable_warcprox_features"].(bool); ok {
		site.EnableWarcproxFeatures = b
	}
	if tl := toInt64Ptr(merged["time_limit"]); tl != nil {
		site.TimeLimit = tl
	}

	if headers, err := buildExtraHeaders(merged); err != nil {
		return nil, err
	} else if headers != nil {
		site.ExtraHeaders = headers
	}

	return site, nil
}

func buildScope(seedURL string, raw any) domain.Scope {
	sc := domain.Scope{}

	if scopeMap, ok := raw.(map[string]any); ok {
		if surt, ok := scopeMap["surt"].(string); ok && surt != "" {
			sc.Surt = surt
		}
		if hops := toInt64Ptr(scopeMap["max_hops"]); hops != nil {
			h := int(*hops)
			sc.MaxHops = &h
		}
	}

	if sc.Surt == "" {
		sc.Surt = canon.Canonicalize(seedURL)
	}
	return sc
}

func buildExtraHeaders(merged map[string]any) (domain.JSONMap, error) {
	warcproxMeta, ok := merged["warcprox_meta"]
	if !ok {
		return nil, nil
	}

	encoded, err := json.Marshal(warcproxMeta)
	if err != nil {
		return nil, fmt.Errorf("jobconf: encode warcprox_meta: %w", err)
	}

	return domain.JSONMap{warcproxMetaHeader: string(encoded)}, nil
}

func toInt64Ptr(v any) *int64 {
	switch n := v.(type) {
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	case float64:
		i := int64(n)
		return &i
	default:
		return nil
	}
}
