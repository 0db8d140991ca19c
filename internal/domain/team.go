package domain

// Team is a named group of people. Names are unique across all teams.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamWithCount is a team annotated with its current member count.
type TeamWithCount struct {
	Team
	NumberOfMembers int64 `json:"number_of_members"`
}

// TeamPatch holds the team fields to change; nil fields are left untouched.
type TeamPatch struct {
	Name *string
}
