// Package query derives read-only views over a redeem collection: filtering,
// per-category and per-type counts, the redeemer leaderboard and the recent
// redeemer list. Nothing here mutates the collection.
package query

import (
	"sort"
	"strings"

	"streamraiser-backend/internal/features/redeem/models"
)

// StatusFilter narrows a view by lifecycle state. "active" means anything not
// yet completed, which includes paused timed redeems.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// Filter combines a case-insensitive substring search over reward name,
// redeemer and note (OR across fields) with an optional exact category match
// and a status filter (AND between the three). The result is a fresh slice
// sorted newest first; ties keep their original collection order.
func Filter(c models.Collection, q string, category models.RewardCategory, status StatusFilter) models.Collection {
	result := make(models.Collection, 0, len(c))
	needle := strings.ToLower(q)

	for _, r := range c {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.RewardName), needle) &&
			!strings.Contains(strings.ToLower(r.Redeemer), needle) &&
			!strings.Contains(strings.ToLower(r.Note), needle) {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		switch status {
		case StatusActive:
			if r.Completed() {
				continue
			}
		case StatusCompleted:
			if !r.Completed() {
				continue
			}
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// StatusCounts is a total/active/completed breakdown.
type StatusCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

func (s *StatusCounts) add(r *models.Redeem) {
	s.Total++
	if r.Completed() {
		s.Completed++
	} else {
		s.Active++
	}
}

// Totals counts the whole collection.
func Totals(c models.Collection) StatusCounts {
	var s StatusCounts
	for _, r := range c {
		s.add(r)
	}
	return s
}

// CountByCategory reports counts for every known category, including empty
// ones, over the full unfiltered collection.
func CountByCategory(c models.Collection) map[models.RewardCategory]StatusCounts {
	result := make(map[models.RewardCategory]StatusCounts, len(models.RewardCategories))
	for _, cat := range models.RewardCategories {
		result[cat] = StatusCounts{}
	}
	for _, r := range c {
		s := result[r.Category]
		s.add(r)
		result[r.Category] = s
	}
	return result
}

// CountByType reports counts for every variant, including empty ones.
func CountByType(c models.Collection) map[models.RedeemType]StatusCounts {
	result := make(map[models.RedeemType]StatusCounts, len(models.RedeemTypes))
	for _, t := range models.RedeemTypes {
		result[t] = StatusCounts{}
	}
	for _, r := range c {
		s := result[r.Type]
		s.add(r)
		result[r.Type] = s
	}
	return result
}

// LeaderboardEntry aggregates one redeemer's totals.
type LeaderboardEntry struct {
	Redeemer  string `json:"redeemer"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Active    int    `json:"active"`
}

// Leaderboard groups redeems by redeemer, case-insensitively, displaying the
// first-seen casing. Sorted by total descending, ties broken by redeemer name
// ascending.
func Leaderboard(c models.Collection) []LeaderboardEntry {
	index := make(map[string]int)
	entries := make([]LeaderboardEntry, 0)

	for _, r := range c {
		key := strings.ToLower(r.Redeemer)
		i, ok := index[key]
		if !ok {
			i = len(entries)
			index[key] = i
			entries = append(entries, LeaderboardEntry{Redeemer: r.Redeemer})
		}
		entries[i].Total++
		if r.Completed() {
			entries[i].Completed++
		} else {
			entries[i].Active++
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Redeemer < entries[j].Redeemer
	})
	return entries
}

// RecentRedeemers returns distinct redeemer names, most recent first. The
// collection is scanned in reverse creation order and the first occurrence
// per lowercased name decides the displayed casing.
func RecentRedeemers(c models.Collection) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for i := len(c) - 1; i >= 0; i-- {
		key := strings.ToLower(c[i].Redeemer)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c[i].Redeemer)
	}
	return result
}
