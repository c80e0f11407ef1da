// Package rules holds the static jurisdiction rule table. The table is
// reference data: loaded once at startup, read-only during evaluation.
package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

//go:embed jurisdictions.json
var embeddedTable []byte

// entry mirrors one row of the reference table. Unknown JSON fields are
// tolerated by design; the kind string is validated lazily so one bad row
// cannot take down jurisdictions that are fine.
type entry struct {
	Jurisdiction      string `json:"jurisdictionId"`
	Name              string `json:"name"`
	Kind              string `json:"kind"`
	DayLimit          int    `json:"dayLimit"`
	SafeHarborDays    int    `json:"safeHarborDays"`
	RollingWindowDays int    `json:"rollingWindowDays"`
	Zone              string `json:"zone"`
}

// Registry is the read-only rule lookup keyed by jurisdiction code.
type Registry struct {
	byID          map[string]entry
	membersByZone map[string][]string
}

// Load parses the embedded reference table.
func Load() (*Registry, error) {
	return NewFromJSON(embeddedTable)
}

// NewFromJSON builds a registry from a JSON rule table.
func NewFromJSON(data []byte) (*Registry, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse rule table: %w", err)
	}

	r := &Registry{
		byID:          make(map[string]entry, len(entries)),
		membersByZone: make(map[string][]string),
	}
	for _, e := range entries {
		if e.Jurisdiction == "" {
			return nil, fmt.Errorf("rule table entry missing jurisdictionId")
		}
		if _, dup := r.byID[e.Jurisdiction]; dup {
			return nil, fmt.Errorf("duplicate rule table entry for %s", e.Jurisdiction)
		}
		r.byID[e.Jurisdiction] = e
		if e.Zone != "" {
			r.membersByZone[e.Zone] = append(r.membersByZone[e.Zone], e.Jurisdiction)
		}
	}
	for _, members := range r.membersByZone {
		sort.Strings(members)
	}
	return r, nil
}

// Lookup returns the rule shape for a jurisdiction. Fails closed: unknown
// jurisdictions return presence.ErrNotFound, and a rule whose kind the
// engine cannot interpret returns presence.ErrUnsupportedRuleKind rather
// than guessing a default.
func (r *Registry) Lookup(id string) (presence.Rule, error) {
	e, ok := r.byID[id]
	if !ok {
		return presence.Rule{}, fmt.Errorf("%w: %s", presence.ErrNotFound, id)
	}

	kind := presence.RuleKind(e.Kind)
	switch kind {
	case presence.RuleNone, presence.RuleDomicile, presence.RuleDayCount, presence.RuleHybrid:
	default:
		return presence.Rule{}, fmt.Errorf("%w: %s has kind %q", presence.ErrUnsupportedRuleKind, id, e.Kind)
	}

	return presence.Rule{
		Jurisdiction:      e.Jurisdiction,
		Kind:              kind,
		DayLimit:          e.DayLimit,
		SafeHarborDays:    e.SafeHarborDays,
		RollingWindowDays: e.RollingWindowDays,
	}, nil
}

// Name returns the display name for a jurisdiction, or the code itself when
// unknown.
func (r *Registry) Name(id string) string {
	if e, ok := r.byID[id]; ok && e.Name != "" {
		return e.Name
	}
	return id
}

// ZoneOf returns the zone a jurisdiction belongs to, if any. Stays in a
// member jurisdiction also consume the zone's shared allowance.
func (r *Registry) ZoneOf(id string) (string, bool) {
	e, ok := r.byID[id]
	if !ok || e.Zone == "" {
		return "", false
	}
	return e.Zone, true
}

// ZoneMembers lists the member jurisdictions of a zone, sorted.
func (r *Registry) ZoneMembers(zone string) []string {
	return r.membersByZone[zone]
}

// IDs lists every jurisdiction code in the table, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
