package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultMaxRecent = 5

// DesignSnapshot captures a computed design for the recent configurations list.
// Values is a flat map of every input and derived scalar; Inputs allows the
// design to be reloaded and recomputed.
type DesignSnapshot struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Inputs    BlastDesignInputs `json:"inputs"`
	Values    map[string]any    `json:"values"`
}

// NewDesignSnapshot stamps a snapshot with a fresh ID and the current time.
func NewDesignSnapshot(inputs BlastDesignInputs, values map[string]any) DesignSnapshot {
	return DesignSnapshot{
		ID:        uuid.New().String()[:8],
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Inputs:    inputs,
		Values:    copyValues(values),
	}
}

// RecentConfigs is a bounded list of snapshots, newest first.
// It is not safe for concurrent use.
type RecentConfigs struct {
	Items    []DesignSnapshot `json:"items"`
	MaxItems int              `json:"max_items"`
}

// NewRecentConfigs creates a list holding the five most recent designs.
func NewRecentConfigs() *RecentConfigs {
	return &RecentConfigs{
		Items:    []DesignSnapshot{},
		MaxItems: defaultMaxRecent,
	}
}

// Add inserts a snapshot at the front, evicting the oldest entry when full.
// It returns the display name of the stored configuration, which is always
// the first entry of Labels.
func (r *RecentConfigs) Add(s DesignSnapshot) string {
	limit := r.MaxItems
	if limit <= 0 {
		limit = defaultMaxRecent
	}
	if len(r.Items) >= limit {
		r.Items = r.Items[:limit-1]
	}
	r.Items = append([]DesignSnapshot{s}, r.Items...)
	return recentName(0)
}

// Get returns the snapshot at index i and true, or false if out of range.
func (r *RecentConfigs) Get(i int) (DesignSnapshot, bool) {
	if i < 0 || i >= len(r.Items) {
		return DesignSnapshot{}, false
	}
	return r.Items[i], true
}

// Len returns the number of stored snapshots.
func (r *RecentConfigs) Len() int {
	return len(r.Items)
}

// Clear removes all stored snapshots.
func (r *RecentConfigs) Clear() {
	r.Items = []DesignSnapshot{}
}

// Labels returns "Project N - timestamp" entries for listing.
func (r *RecentConfigs) Labels() []string {
	labels := make([]string, len(r.Items))
	for i, s := range r.Items {
		labels[i] = fmt.Sprintf("%s - %s", recentName(i), s.Timestamp)
	}
	return labels
}

func recentName(i int) string {
	return fmt.Sprintf("Project %d", i+1)
}

func copyValues(values map[string]any) map[string]any {
	cp := make(map[string]any, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return cp
}
