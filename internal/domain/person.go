package domain

// Person is an individual who may belong to any number of teams.
type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PersonWithTeams is a person together with the teams they belong to.
type PersonWithTeams struct {
	Person
	Teams []Team `json:"teams"`
}

// PersonPatch holds the person fields to change; nil fields are left untouched.
type PersonPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Apply copies every set field of the patch onto p.
func (pp PersonPatch) Apply(p *Person) {
	if pp.FirstName != nil {
		p.FirstName = *pp.FirstName
	}
	if pp.LastName != nil {
		p.LastName = *pp.LastName
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
}
