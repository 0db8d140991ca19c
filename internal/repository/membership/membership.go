// Package membership stores the links between teams and people.
package membership

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/lib/pq"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
)

// AddMembers links people to a team. Links that already exist are kept as is.
func AddMembers(exec repository.DBTX, teamID int64, personIDs []int64) error {
	ids := dedupe(personIDs)
	if len(ids) == 0 {
		return nil
	}

	query := `
		INSERT INTO team_members (team_id, person_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (team_id, person_id) DO NOTHING
	`
	if _, err := exec.Exec(query, teamID, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to add team members: %w", err)
	}
	return nil
}

// AddTeams links a person to teams. Links that already exist are kept as is.
func AddTeams(exec repository.DBTX, personID int64, teamIDs []int64) error {
	ids := dedupe(teamIDs)
	if len(ids) == 0 {
		return nil
	}

	query := `
		INSERT INTO team_members (team_id, person_id)
		SELECT unnest($1::bigint[]), $2
		ON CONFLICT (team_id, person_id) DO NOTHING
	`
	if _, err := exec.Exec(query, pq.Array(ids), personID); err != nil {
		return fmt.Errorf("failed to add person to teams: %w", err)
	}
	return nil
}

// Remove deletes a single link. Returns sql.ErrNoRows if the person is not
// a member of the team.
func Remove(exec repository.DBTX, teamID, personID int64) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND person_id = $2`
	result, err := exec.Exec(query, teamID, personID)
	if err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
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

// Members returns the people linked to a team ordered by ID.
func Members(exec repository.DBTX, teamID int64) ([]domain.Person, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.email
		FROM people p
		JOIN team_members tm ON tm.person_id = p.id
		WHERE tm.team_id = $1
		ORDER BY p.id
	`
	rows, err := exec.Query(query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make([]domain.Person, 0)
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// Member returns a person only if they are a member of the team.
// Returns sql.ErrNoRows otherwise.
func Member(exec repository.DBTX, teamID, personID int64) (*domain.Person, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.email
		FROM people p
		JOIN team_members tm ON tm.person_id = p.id
		WHERE tm.team_id = $1 AND tm.person_id = $2
	`
	var p domain.Person
	err := exec.QueryRow(query, teamID, personID).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &p, nil
}

// Teams returns the teams a person belongs to ordered by ID.
func Teams(exec repository.DBTX, personID int64) ([]domain.Team, error) {
	query := `
		SELECT t.id, t.name
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.person_id = $1
		ORDER BY t.id
	`
	rows, err := exec.Query(query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return teams, nil
}

// Team returns a team only if the person belongs to it.
// Returns sql.ErrNoRows otherwise.
func Team(exec repository.DBTX, personID, teamID int64) (*domain.Team, error) {
	query := `
		SELECT t.id, t.name
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.person_id = $1 AND tm.team_id = $2
	`
	var t domain.Team
	err := exec.QueryRow(query, personID, teamID).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person team: %w", err)
	}
	return &t, nil
}

func dedupe(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
