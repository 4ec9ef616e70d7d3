package domain

// Site status values. ACTIVE is the only non-terminal status; all
// FINISHED* statuses are absorbing.
const (
	SiteStatusActive              = "ACTIVE"
	SiteStatusFinished            = "FINISHED"
	SiteStatusFinishedTimeLimit   = "FINISHED_TIME_LIMIT"
	SiteStatusFinishedReachedLimit = "FINISHED_REACHED_LIMIT"
)

// Site is a crawl unit rooted at a seed URL, with a scope and lifecycle.
//
// Claimed and LastClaimedBy are orthogonal to Status: a site can be
// claimed or not in any non-terminal state, but once Status is terminal it
// is never reopened.
type Site struct {
	ID                     string  `db:"id"                       json:"id"`
	JobID                  string  `db:"job_id"                   json:"job_id"`
	Seed                   string  `db:"seed"                     json:"seed"`
	ScopeMap               JSONMap `db:"scope"                    json:"scope"`
	Proxy                  string  `db:"proxy"                    json:"proxy,omitempty"`
	IgnoreRobots           bool    `db:"ignore_robots"            json:"ignore_robots"`
	EnableWarcproxFeatures bool    `db:"enable_warcprox_features" json:"enable_warcprox_features"`
	ExtraHeaders           JSONMap `db:"extra_headers"            json:"extra_headers,omitempty"`
	TimeLimit              *int64  `db:"time_limit"                json:"time_limit,omitempty"`
	ReachedLimit           JSONMap `db:"reached_limit"            json:"reached_limit,omitempty"`
	Status                 string  `db:"status"                   json:"status"`
	Claimed                bool    `db:"claimed"                  json:"claimed"`
	LastClaimedBy          string  `db:"last_claimed_by"          json:"last_claimed_by,omitempty"`
	StartTime              float64 `db:"start_time"               json:"start_time"`
	LastDisclaimed         float64 `db:"last_disclaimed"          json:"last_disclaimed"`

	// ClaimExpiry is additive to the original data model (see the "no
	// lease expiry" Design Note): the lease deadline set when a worker
	// claims this site, so an abandoned claim can be swept back to the
	// pool without waiting for an external recovery process.
	ClaimExpiry float64 `db:"claim_expiry" json:"claim_expiry,omitempty"`
}

// Scope decodes the persisted scope map into a typed Scope value.
// surt is always present per the Site invariant; max_hops is optional.
func (s *Site) Scope() Scope {
	sc := Scope{}
	if v, ok := s.ScopeMap["surt"].(string); ok {
		sc.Surt = v
	}
	if v, ok := s.ScopeMap["max_hops"]; ok {
		hops := toInt(v)
		sc.MaxHops = &hops
	}
	return sc
}

// SetScope writes a typed Scope back into the persisted scope map,
// preserving any other keys already present (forward compatibility).
func (s *Site) SetScope(sc Scope) {
	if s.ScopeMap == nil {
		s.ScopeMap = JSONMap{}
	}
	s.ScopeMap["surt"] = sc.Surt
	if sc.MaxHops != nil {
		s.ScopeMap["max_hops"] = *sc.MaxHops
	}
}

// IsTerminal reports whether the site has reached any FINISHED* status.
func (s *Site) IsTerminal() bool {
	return hasFinishPrefix(s.Status)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
