// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a rec-sports league run out of shared facilities:
//   - A Division is a cohort of Teams that share one weekly time slot at one facility
//   - Each Division plays a season of weeks (regular weeks plus playoff rounds)
//   - Each week contains Games between two Teams of the Division
//
// Weeks are NOT stored. The week sequence for a division is derived on every read from
// the division's season parameters and its games (see internal/schedule). Only divisions,
// teams, games, and users are persisted.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a UserRole
// where a WeekType is expected — while keeping the values human-readable in the database.

// UserRole represents a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"     // Full access: manage divisions, games, users
	UserRoleScheduler UserRole = "scheduler" // Can create and edit schedules for divisions
	UserRoleViewer    UserRole = "viewer"    // Read-only: dashboards and schedules
)

// WeekType describes what kind of week a game belongs to.
// Playoff weeks always follow the last regular week in ascending bracket order:
// quarterfinal → semifinal → final.
type WeekType string

const (
	WeekTypeRegular      WeekType = "regular"
	WeekTypeQuarterfinal WeekType = "quarterfinal"
	WeekTypeSemifinal    WeekType = "semifinal"
	WeekTypeFinal        WeekType = "final"
)

// GameState is the derived lifecycle state of a game. It is not a column — it is
// computed from the Started and Completed booleans (see Game.State below).
//
// The legacy wire format calls Completed "status", which reads as if it were this
// enum. Internally we keep the honest names and translate at the handler boundary.
type GameState string

const (
	GameStateScheduled GameState = "scheduled" // On the calendar, not started
	GameStateLive      GameState = "live"      // Live scoring has begun
	GameStateFinal     GameState = "final"     // Result is in; the game is locked
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: Division -> divisions, Game -> games, etc.

// User represents a registered person in the system.
// Users are created automatically the first time an authenticated request hits the API;
// the AuthID links our internal record to the identity provider.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthID      *string   `gorm:"uniqueIndex:idx_users_auth_id"` // Identity-provider user ID; pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Role        UserRole  `gorm:"type:user_role;not null;default:'viewer'"` // Synced from the identity provider's role claim
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Division is a cohort of teams sharing a weekly time slot and facility for one season.
//
// The facility booking is the (Location, Day, StartTime, EndTime) tuple. Two divisions
// conflict when they share Location and Day and their time ranges overlap — that check
// is advisory and lives in internal/schedule, not in the database.
//
// Active and Register are independent booleans, which yields four lifecycle states:
//   - finished          (active=false, register=false) — the season is over
//   - registration-only (active=false, register=true)  — signups open, play not started
//   - active-closed     (active=true,  register=false) — season underway, signups closed
//   - active-open       (active=true,  register=true)  — season underway, signups open
type Division struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Location  string    `gorm:"not null"`               // Facility name, e.g. "Eastside Fieldhouse"
	Day       string    `gorm:"not null"`               // Weekday of the slot, e.g. "Monday"
	StartTime string    `gorm:"not null"`               // Slot start, 24h "HH:MM"
	EndTime   string    `gorm:"not null"`               // Slot end, 24h "HH:MM"
	StartDate time.Time `gorm:"not null"`               // Date of week 1
	Active    bool      `gorm:"not null;default:false"` // Season currently being played
	Register  bool      `gorm:"not null;default:false"` // Registration open
	TeamCount int       `gorm:"not null;default:0"`     // Drives bracket size; kept as a column, not derived
	CreatedAt time.Time
	UpdatedAt time.Time
	Teams     []Team `gorm:"foreignKey:DivisionID"`
	Games     []Game `gorm:"foreignKey:DivisionID"`
}

// Lifecycle returns the human-readable lifecycle state derived from Active and Register.
func (d *Division) Lifecycle() string {
	switch {
	case d.Active && d.Register:
		return "active-open"
	case d.Active:
		return "active-closed"
	case d.Register:
		return "registration-only"
	default:
		return "finished"
	}
}

// Team represents one roster within a division. Teams are referenced by Games and by
// the per-week load counts; the scheduling engine never mutates them.
type Team struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DivisionID uuid.UUID `gorm:"type:uuid;not null"`
	Division   Division  `gorm:"foreignKey:DivisionID"`
	Name       string    `gorm:"not null"`            // Full display name, e.g. "Monday Mavericks"
	ShortName  string    `gorm:"not null;default:''"` // Abbreviated name for tight layouts
	Code       string    `gorm:"not null;default:''"` // Short code, e.g. "MAV"
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Game is one matchup between two teams of a division, placed in a numbered week.
//
// StartsAt is a single timestamp even though callers submit the calendar date and the
// time-of-day as separate fields; the scheduling service recombines them explicitly.
//
// Once Completed is true the game is locked: date, time, and teams are immutable through
// the general edit path (the dedicated result-entry flow is a different subsystem).
// Published is forced to true on every create and update through the scheduling API —
// there is no "unpublished draft" state reachable through this path.
type Game struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DivisionID uuid.UUID `gorm:"type:uuid;not null"`
	Division   Division  `gorm:"foreignKey:DivisionID"`
	Name       string    `gorm:"not null"` // Display name, e.g. "Mavericks vs Pistons"
	StartsAt   time.Time `gorm:"not null"` // Combined calendar date + time-of-day, local components
	HomeTeamID uuid.UUID `gorm:"type:uuid;not null"`
	HomeTeam   Team      `gorm:"foreignKey:HomeTeamID"`
	AwayTeamID uuid.UUID `gorm:"type:uuid;not null"`
	AwayTeam   Team      `gorm:"foreignKey:AwayTeamID"`
	HomeScore  int       `gorm:"not null;default:0"` // Meaningful only once Completed
	AwayScore  int       `gorm:"not null;default:0"` // Meaningful only once Completed
	Week       int       `gorm:"not null"`           // 1-based week number within the season
	WeekType   WeekType  `gorm:"type:week_type;not null;default:'regular'"`
	Published  bool      `gorm:"not null;default:true"`  // Visible to end users; forced true by this API
	Started    bool      `gorm:"not null;default:false"` // Live scoring has begun
	Completed  bool      `gorm:"not null;default:false"` // Result is final; the legacy wire name is "status"
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// State derives the three-state lifecycle from the stored booleans.
// Completed wins over Started: a game with both flags set is FINAL.
func (g *Game) State() GameState {
	switch {
	case g.Completed:
		return GameStateFinal
	case g.Started:
		return GameStateLive
	default:
		return GameStateScheduled
	}
}
