package jobconf

import (
	"reflect"
	"testing"
)

func TestMergeScalarSeedWins(t *testing.T) {
	t.Parallel()

	a := map[string]any{"ignore_robots": true}
	b := map[string]any{"ignore_robots": false, "proxy": "http://proxy:8000"}

	got := merge(a, b).(map[string]any)

	if got["ignore_robots"] != true {
		t.Errorf("ignore_robots = %v, want true (seed wins)", got["ignore_robots"])
	}
	if got["proxy"] != "http://proxy:8000" {
		t.Errorf("proxy = %v, want inherited from job", got["proxy"])
	}
}

func TestMergeListsConcatenate(t *testing.T) {
	t.Parallel()

	a := map[string]any{"tags": []any{"seed-tag"}}
	b := map[string]any{"tags": []any{"job-tag"}}

	got := merge(a, b).(map[string]any)
	want := []any{"seed-tag", "job-tag"}

	if !reflect.DeepEqual(got["tags"], want) {
		t.Errorf("tags = %v, want %v", got["tags"], want)
	}
}

func TestMergeNestedDicts(t *testing.T) {
	t.Parallel()

	a := map[string]any{"scope": map[string]any{"max_hops": 2}}
	b := map[string]any{"scope": map[string]any{"surt": "http://(com,example,)/"}}

	got := merge(a, b).(map[string]any)
	scope := got["scope"].(map[string]any)

	if scope["max_hops"] != 2 {
		t.Errorf("scope.max_hops = %v, want 2", scope["max_hops"])
	}
	if scope["surt"] != "http://(com,example,)/" {
		t.Errorf("scope.surt = %v, want inherited from job", scope["surt"])
	}
}

func TestMergeJobOnlyKeyPreserved(t *testing.T) {
	t.Parallel()

	a := map[string]any{"url": "http://example.com/"}
	b := map[string]any{"time_limit": 3600}

	got := merge(a, b).(map[string]any)

	if got["url"] != "http://example.com/" {
		t.Errorf("url = %v, want preserved", got["url"])
	}
	if got["time_limit"] != 3600 {
		t.Errorf("time_limit = %v, want inherited from job", got["time_limit"])
	}
}
