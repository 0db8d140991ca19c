package person

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
)

// Create inserts a new person and fills in the assigned ID.
func Create(exec repository.DBTX, p *domain.Person) error {
	query := `
		INSERT INTO people (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := exec.QueryRow(query, p.FirstName, p.LastName, p.Email).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// Get retrieves a person by ID.
func Get(exec repository.DBTX, personID int64) (*domain.Person, error) {
	query := `
		SELECT id, first_name, last_name, email
		FROM people
		WHERE id = $1
	`
	var p domain.Person
	err := exec.QueryRow(query, personID).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return &p, nil
}

// List returns all people ordered by ID.
func List(exec repository.DBTX) ([]domain.Person, error) {
	query := `
		SELECT id, first_name, last_name, email
		FROM people
		ORDER BY id
	`
	rows, err := exec.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	people := make([]domain.Person, 0)
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return people, nil
}

// Update overwrites first_name, last_name and email of an existing person.
func Update(exec repository.DBTX, p *domain.Person) error {
	query := `
		UPDATE people
		SET first_name = $1, last_name = $2, email = $3
		WHERE id = $4
	`
	result, err := exec.Exec(query, p.FirstName, p.LastName, p.Email, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a person. Membership links go with it through ON DELETE CASCADE.
func Delete(exec repository.DBTX, personID int64) error {
	result, err := exec.Exec(`DELETE FROM people WHERE id = $1`, personID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Exists checks if a person exists.
func Exists(exec repository.DBTX, personID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM people WHERE id = $1)`
	err := exec.QueryRow(query, personID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check person existence: %w", err)
	}
	return exists, nil
}

// ExistingIDs returns which of the given IDs belong to existing people.
func ExistingIDs(exec repository.DBTX, personIDs []int64) ([]int64, error) {
	rows, err := exec.Query(`SELECT id FROM people WHERE id = ANY($1)`, pq.Array(personIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to look up people: %w", err)
	}

	ids, err := repository.CollectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan person ids: %w", err)
	}
	return ids, nil
}

// TeamsByPeople loads the teams of every given person in a single query.
// People without teams map to an empty slice.
func TeamsByPeople(exec repository.DBTX, personIDs []int64) (map[int64][]domain.Team, error) {
	teams := make(map[int64][]domain.Team, len(personIDs))
	for _, id := range personIDs {
		teams[id] = make([]domain.Team, 0)
	}
	if len(personIDs) == 0 {
		return teams, nil
	}

	query := `
		SELECT tm.person_id, t.id, t.name
		FROM team_members tm
		JOIN teams t ON t.id = tm.team_id
		WHERE tm.person_id = ANY($1)
		ORDER BY tm.person_id, t.id
	`
	rows, err := exec.Query(query, pq.Array(personIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get teams of people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var personID int64
		var t domain.Team
		if err := rows.Scan(&personID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams[personID] = append(teams[personID], t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return teams, nil
}
