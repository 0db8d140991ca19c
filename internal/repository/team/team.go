package team

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mishasvintus/teams_api/internal/domain"
	"github.com/mishasvintus/teams_api/internal/repository"
)

// withCountQuery annotates each team with its member count in one aggregate
// pass instead of loading the member rows.
const withCountQuery = `
	SELECT t.id, t.name, COUNT(tm.person_id)
	FROM teams t
	LEFT JOIN team_members tm ON tm.team_id = t.id
`

// Create inserts a new team and returns it with its assigned id.
func Create(exec repository.DBTX, name string) (*domain.Team, error) {
	query := `INSERT INTO teams (name) VALUES ($1) RETURNING id, name`
	var t domain.Team
	if err := exec.QueryRow(query, name).Scan(&t.ID, &t.Name); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return &t, nil
}

// Get retrieves a team by ID.
func Get(exec repository.DBTX, teamID int64) (*domain.Team, error) {
	query := `SELECT id, name FROM teams WHERE id = $1`
	var t domain.Team
	err := exec.QueryRow(query, teamID).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

// GetWithCount retrieves a team by ID annotated with its member count.
func GetWithCount(exec repository.DBTX, teamID int64) (*domain.TeamWithCount, error) {
	query := withCountQuery + `
		WHERE t.id = $1
		GROUP BY t.id, t.name
	`
	var t domain.TeamWithCount
	err := exec.QueryRow(query, teamID).Scan(&t.ID, &t.Name, &t.NumberOfMembers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

// ListWithCount returns all teams ordered by ID, each annotated with its member count.
func ListWithCount(exec repository.DBTX) ([]domain.TeamWithCount, error) {
	query := withCountQuery + `
		GROUP BY t.id, t.name
		ORDER BY t.id
	`
	rows, err := exec.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	teams := make([]domain.TeamWithCount, 0)
	for rows.Next() {
		var t domain.TeamWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.NumberOfMembers); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return teams, nil
}

// Update renames a team and returns the updated row.
func Update(exec repository.DBTX, teamID int64, name string) (*domain.Team, error) {
	query := `UPDATE teams SET name = $1 WHERE id = $2 RETURNING id, name`
	var t domain.Team
	err := exec.QueryRow(query, name, teamID).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return &t, nil
}

// Delete removes a team. Membership links go with it through ON DELETE CASCADE.
func Delete(exec repository.DBTX, teamID int64) error {
	result, err := exec.Exec(`DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
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

// Exists checks if a team exists.
func Exists(exec repository.DBTX, teamID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)`
	err := exec.QueryRow(query, teamID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team existence: %w", err)
	}
	return exists, nil
}

// ExistingIDs returns which of the given IDs belong to existing teams.
func ExistingIDs(exec repository.DBTX, teamIDs []int64) ([]int64, error) {
	rows, err := exec.Query(`SELECT id FROM teams WHERE id = ANY($1)`, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to look up teams: %w", err)
	}

	ids, err := repository.CollectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan team ids: %w", err)
	}
	return ids, nil
}
