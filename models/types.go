package models

import "time"

// Meeting status constants
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Member roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Ballot fields, in display order
const (
	FieldAgenda = "agenda"
	FieldDate   = "date"
	FieldTime   = "time"
	FieldPlace  = "place"
)

var BallotFields = []string{FieldAgenda, FieldDate, FieldTime, FieldPlace}

// Teams a roster entry may belong to
var Teams = []string{"Jury Team", "Task Team", "Monitoring Team", "Data Team"}

// Weekdays a planned meeting may fall on
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Request types

type ConfigureMeetingRequest struct {
	MeetingID string   `json:"meeting_id"`
	Agendas   []string `json:"agendas"`
	Dates     []string `json:"dates"`
	Times     []string `json:"times"`
	Places    []string `json:"places"`
}

// Confirm is the acknowledgment half of the two-step finalize.
type FinalizeMeetingRequest struct {
	MeetingID string `json:"meeting_id"`
	Confirm   bool   `json:"confirm"`
}

// Name is only read for anonymous participants.
type SubmitBallotRequest struct {
	Name   string `json:"name,omitempty"`
	Agenda string `json:"agenda"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Place  string `json:"place"`
}

type SubmitAttendanceRequest struct {
	Name      string `json:"name,omitempty"`
	Attending bool   `json:"attending"`
	Reason    string `json:"reason,omitempty"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type PostNoticeRequest struct {
	Text string `json:"text"`
}

type CommentRequest struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

type AddTeamEntryRequest struct {
	Team    string `json:"team"`
	Name    string `json:"name"`
	Details string `json:"details"`
}

// Progress is a completion percentage, 0 to 100.
type AddPlanRequest struct {
	Plan     string `json:"plan"`
	Progress int    `json:"progress"`
}

// Date is YYYY-MM-DD and Time is HH:MM or HH:MM:SS. Day defaults to the
// weekday of Date.
type AddNextMeetingRequest struct {
	Organizer string `json:"organizer"`
	Date      string `json:"date"`
	Day       string `json:"day,omitempty"`
	Time      string `json:"time"`
	Agenda    string `json:"agenda"`
}

// Response types

type SubmitBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type SubmitAttendanceResponse struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

// Domain types

// MeetingConfig is the singleton current meeting. Generation is bumped on
// every reconfiguration.
type MeetingConfig struct {
	MeetingID  string     `json:"meeting_id"`
	Agendas    []string   `json:"agendas"`
	Dates      []string   `json:"dates"`
	Times      []string   `json:"times"`
	Places     []string   `json:"places"`
	Status     string     `json:"status"`
	Generation int        `json:"generation"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

// Options returns the configured option list for a ballot field.
func (c MeetingConfig) Options(field string) []string {
	switch field {
	case FieldAgenda:
		return c.Agendas
	case FieldDate:
		return c.Dates
	case FieldTime:
		return c.Times
	case FieldPlace:
		return c.Places
	}
	return nil
}

type Ballot struct {
	ID            string    `json:"id"`
	MeetingID     string    `json:"meeting_id"`
	IdentityKey   string    `json:"identity_key"`
	DisplayName   string    `json:"display_name"`
	Authenticated bool      `json:"authenticated"`
	Agenda        string    `json:"agenda"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Place         string    `json:"place"`
	SubmittedAt   time.Time `json:"submitted_at"`
	IPHash        string    `json:"ip_hash,omitempty"`
}

// Selection returns the ballot's value for a field.
func (b Ballot) Selection(field string) string {
	switch field {
	case FieldAgenda:
		return b.Agenda
	case FieldDate:
		return b.Date
	case FieldTime:
		return b.Time
	case FieldPlace:
		return b.Place
	}
	return ""
}

type AttendanceRecord struct {
	ID            string    `json:"id"`
	MeetingID     string    `json:"meeting_id"`
	IdentityKey   string    `json:"identity_key"`
	DisplayName   string    `json:"display_name"`
	Authenticated bool      `json:"authenticated"`
	Attending     bool      `json:"attending"`
	Reason        string    `json:"reason,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type AttendanceSummary struct {
	MeetingID string           `json:"meeting_id"`
	Attending int              `json:"attending"`
	Declining int              `json:"declining"`
	Declines  []DeclinedReason `json:"declines"`
}

type DeclinedReason struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MeetingResult is the archive written once per meeting at finalization.
type MeetingResult struct {
	MeetingID     string    `json:"meeting_id"`
	TotalVotes    int       `json:"total_votes"`
	WinningAgenda string    `json:"winning_agenda"`
	WinningDate   string    `json:"winning_date"`
	WinningTime   string    `json:"winning_time"`
	WinningPlace  string    `json:"winning_place"`
	FinalizedAt   time.Time `json:"finalized_at"`
}

// SameOutcome reports whether two archives record the same totals and winners.
func (r MeetingResult) SameOutcome(o MeetingResult) bool {
	return r.MeetingID == o.MeetingID &&
		r.TotalVotes == o.TotalVotes &&
		r.WinningAgenda == o.WinningAgenda &&
		r.WinningDate == o.WinningDate &&
		r.WinningTime == o.WinningTime &&
		r.WinningPlace == o.WinningPlace
}

// Tally types

type ValueCount struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// FieldTally holds counts in first-seen order.
type FieldTally struct {
	Field  string       `json:"field"`
	Values []ValueCount `json:"values"`
}

// Winner returns the value with the highest count. Ties go to the value seen
// first. ok is false when the field has no votes.
func (f FieldTally) Winner() (value string, ok bool) {
	best := -1
	for _, vc := range f.Values {
		if vc.Count > best {
			best = vc.Count
			value = vc.Value
		}
	}
	return value, best > 0
}

// Count returns the tally for a single value.
func (f FieldTally) Count(value string) int {
	for _, vc := range f.Values {
		if vc.Value == value {
			return vc.Count
		}
	}
	return 0
}

type Tally struct {
	MeetingID    string       `json:"meeting_id"`
	TotalBallots int          `json:"total_ballots"`
	NoData       bool         `json:"no_data"`
	Fields       []FieldTally `json:"fields"`
}

// Field returns the tally for one ballot field.
func (t Tally) Field(field string) FieldTally {
	for _, f := range t.Fields {
		if f.Field == field {
			return f
		}
	}
	return FieldTally{Field: field}
}

// Member, notice and team types

type Member struct {
	ID           string    `json:"id"`
	Mobile       string    `json:"mobile"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	IsApproved   bool      `json:"is_approved"`
	IsBlocked    bool      `json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
}

type Notice struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	PostedBy string    `json:"posted_by"`
	Pinned   bool      `json:"pinned"`
	Comments []Comment `json:"comments"`
	PostedAt time.Time `json:"posted_at"`
}

type Comment struct {
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}

type TeamEntry struct {
	ID        string    `json:"id"`
	Team      string    `json:"team"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Plan struct {
	ID        string    `json:"id"`
	Plan      string    `json:"plan"`
	Progress  int       `json:"progress"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NextMeeting is a planned meeting announcement, independent of the voted
// meeting configuration.
type NextMeeting struct {
	ID        string    `json:"id"`
	Organizer string    `json:"organizer"`
	Date      string    `json:"date"`
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Agenda    string    `json:"agenda"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Dashboard struct {
	TeamEntries       int `json:"team_entries"`
	AttendanceRecords int `json:"attendance_records"`
	MeetingsArchived  int `json:"meetings_archived"`
	NextMeetings      int `json:"next_meetings"`
}

type TeamCount struct {
	Team    string `json:"team"`
	Entries int    `json:"entries"`
}

// TeamReport counts roster entries per team, in Teams order.
type TeamReport struct {
	Teams []TeamCount `json:"teams"`
	Total int         `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
