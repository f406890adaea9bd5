package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LocalScope is the storage scope used when no trip id was assigned.
const LocalScope = "local"

// ScopeKey returns the completion storage scope for a trip id.
func ScopeKey(tripID string) string {
	if tripID == "" {
		return LocalScope
	}
	return tripID
}

// ActivityKey addresses one activity within a plan. Both indexes are zero-based.
type ActivityKey struct {
	Day      int
	Activity int
}

// String returns the wire form "<day>-<activity>".
func (k ActivityKey) String() string {
	return strconv.Itoa(k.Day) + "-" + strconv.Itoa(k.Activity)
}

// ParseActivityKey parses the "<day>-<activity>" wire form.
func ParseActivityKey(s string) (ActivityKey, error) {
	dayStr, actStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return ActivityKey{}, fmt.Errorf("activity key %q: expected <day>-<activity>", s)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 0 {
		return ActivityKey{}, fmt.Errorf("activity key %q: invalid day index", s)
	}
	act, err := strconv.Atoi(actStr)
	if err != nil || act < 0 {
		return ActivityKey{}, fmt.Errorf("activity key %q: invalid activity index", s)
	}
	return ActivityKey{Day: day, Activity: act}, nil
}

// CompletionState maps activities to their done flag. A missing key means
// not done.
type CompletionState map[ActivityKey]bool

// Clone returns an independent copy. A nil state clones to an empty one.
func (s CompletionState) Clone() CompletionState {
	out := make(CompletionState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Done reports whether key is marked done.
func (s CompletionState) Done(key ActivityKey) bool {
	return s[key]
}

// Toggled returns a copy of s with key flipped.
func (s CompletionState) Toggled(key ActivityKey) CompletionState {
	out := s.Clone()
	out[key] = !s[key]
	return out
}

// Equal reports whether both states mark the same activities done.
// Explicit false entries are treated like missing ones.
func (s CompletionState) Equal(other CompletionState) bool {
	for k, v := range s {
		if v != other[k] {
			return false
		}
	}
	for k, v := range other {
		if v != s[k] {
			return false
		}
	}
	return true
}

// Keys returns the keys in (day, activity) order.
func (s CompletionState) Keys() []ActivityKey {
	keys := make([]ActivityKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Activity < keys[j].Activity
	})
	return keys
}

// WireMap converts the state to its JSON object form.
func (s CompletionState) WireMap() map[string]bool {
	out := make(map[string]bool, len(s))
	for k, v := range s {
		out[k.String()] = v
	}
	return out
}

// CompletionStateFromWire converts the JSON object form back, dropping keys
// that do not parse.
func CompletionStateFromWire(m map[string]bool) CompletionState {
	out := make(CompletionState, len(m))
	for raw, v := range m {
		k, err := ParseActivityKey(raw)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

func (s CompletionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.WireMap())
}

func (s *CompletionState) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = CompletionStateFromWire(m)
	return nil
}
