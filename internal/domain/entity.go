package domain

// EntityKind names the kind of record an identifier refers to.
type EntityKind string

// Entity kinds.
const (
	KindTeam   EntityKind = "team"
	KindPerson EntityKind = "person"
)

// IsValid checks if the kind is known.
func (k EntityKind) IsValid() bool {
	return k == KindTeam || k == KindPerson
}
