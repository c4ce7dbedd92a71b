package model

import (
	"strings"
	"time"
)

// Category identifies a group of statistics that can be reset together
type Category string

const (
	CategoryAll      Category = "ALL"
	CategoryCombat   Category = "COMBAT"
	CategoryBlocks   Category = "BLOCKS"
	CategoryPlaytime Category = "PLAYTIME"
	CategoryKills    Category = "KILLS"
	CategoryDeaths   Category = "DEATHS"
	CategoryDamage   Category = "DAMAGE"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryCombat,
		CategoryBlocks,
		CategoryPlaytime,
		CategoryKills,
		CategoryDeaths,
		CategoryDamage,
	}
}

var categoryDescriptions = map[Category]string{
	CategoryAll:      "all stats",
	CategoryCombat:   "combat stats (kills, deaths, damage)",
	CategoryBlocks:   "block stats (placed, broken)",
	CategoryPlaytime: "playtime",
	CategoryKills:    "kills (pvp and pve)",
	CategoryDeaths:   "deaths",
	CategoryDamage:   "damage dealt",
}

// Description returns a human-readable summary of what the category covers
func (c Category) Description() string {
	return categoryDescriptions[c]
}

// ParseCategory resolves a case-insensitive category name.
// Unknown names return ErrUnknownCategory.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := categoryDescriptions[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// resetFns maps each category to its reset strategy
var resetFns = map[Category]func(*StatRecord){
	CategoryAll: func(r *StatRecord) {
		r.CumulativePlaytimeSeconds = 0
		r.SessionStart = time.Time{}
		r.DamageDealt = 0
		r.PlayerKills = 0
		r.MobKills = 0
		r.DeathCount = 0
		r.BlocksPlaced = 0
		r.BlocksBroken = 0
	},
	CategoryCombat: func(r *StatRecord) {
		r.DamageDealt = 0
		r.PlayerKills = 0
		r.MobKills = 0
		r.DeathCount = 0
	},
	CategoryBlocks: func(r *StatRecord) {
		r.BlocksPlaced = 0
		r.BlocksBroken = 0
	},
	CategoryPlaytime: func(r *StatRecord) {
		r.CumulativePlaytimeSeconds = 0
	},
	CategoryKills: func(r *StatRecord) {
		r.PlayerKills = 0
		r.MobKills = 0
	},
	CategoryDeaths: func(r *StatRecord) {
		r.DeathCount = 0
	},
	CategoryDamage: func(r *StatRecord) {
		r.DamageDealt = 0
	},
}

// Reset zeroes the record fields covered by the category
func (c Category) Reset(r *StatRecord) {
	if fn, ok := resetFns[c]; ok {
		fn(r)
	}
}
