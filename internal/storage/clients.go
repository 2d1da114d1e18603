package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hallcrest/capitolflow/internal/common"
	"github.com/hallcrest/capitolflow/internal/model"
)

const clientColumns = `id, user_id, name, contract_period, status, practice_area,
	relationship_strength, conflict_risk, time_commitment, renewal_probability,
	strategic_fit, notes, primary_lobbyist, client_originator, lobbyist_team,
	interaction_frequency, relationship_intensity`

// FetchExistingByNames returns persisted clients matching the given names,
// keyed by lower-cased name. Matching is case-insensitive.
func (s *SQLiteStorage) FetchExistingByNames(ctx context.Context, userID string, names []string) (map[string]*model.Client, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	existing := make(map[string]*model.Client, len(names))
	if len(names) == 0 {
		return existing, nil
	}

	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(names)+1)
	args = append(args, userID)
	for _, name := range names {
		args = append(args, strings.ToLower(strings.TrimSpace(name)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE user_id = ? AND LOWER(name) IN (%s)`, clientColumns, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients by name: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		existing[strings.ToLower(client.Name)] = client
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	for _, client := range existing {
		if err := s.loadRevenue(ctx, s.db, client); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// ApplyBatch persists a reconciled import batch atomically. New clients
// receive uuid identifiers here; the engine never mints IDs. Revenue rows
// are replaced wholesale for every client in the batch.
func (s *SQLiteStorage) ApplyBatch(ctx context.Context, userID string, inserts, updates []*model.Client) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, client := range inserts {
		if err := validateClient(client); err != nil {
			return err
		}
		client.ID = uuid.NewString()
		client.UserID = userID

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clients (id, user_id, name, contract_period, status, practice_area,
				relationship_strength, conflict_risk, time_commitment, renewal_probability,
				strategic_fit, notes, primary_lobbyist, client_originator, lobbyist_team,
				interaction_frequency, relationship_intensity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			client.ID, client.UserID, client.Name, client.ContractPeriod, string(client.Status),
			joinList(client.PracticeArea), client.RelationshipStrength, string(client.ConflictRisk),
			client.TimeCommitment, client.RenewalProbability, client.StrategicFit, client.Notes,
			client.PrimaryLobbyist, client.ClientOriginator, joinList(client.LobbyistTeam),
			client.InteractionFrequency, client.RelationshipIntensity,
		); err != nil {
			return fmt.Errorf("failed to insert client %q: %w", client.Name, err)
		}

		if err := replaceRevenue(ctx, tx, client); err != nil {
			return err
		}
	}

	for _, client := range updates {
		if err := validateClient(client); err != nil {
			return err
		}
		if client.ID == "" {
			return fmt.Errorf("%w: update for %q has no id", ErrInvalidClient, client.Name)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE clients SET name = ?, contract_period = ?, status = ?, practice_area = ?,
				relationship_strength = ?, conflict_risk = ?, time_commitment = ?,
				renewal_probability = ?, strategic_fit = ?, notes = ?, primary_lobbyist = ?,
				client_originator = ?, lobbyist_team = ?, interaction_frequency = ?,
				relationship_intensity = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND user_id = ?`,
			client.Name, client.ContractPeriod, string(client.Status), joinList(client.PracticeArea),
			client.RelationshipStrength, string(client.ConflictRisk), client.TimeCommitment,
			client.RenewalProbability, client.StrategicFit, client.Notes, client.PrimaryLobbyist,
			client.ClientOriginator, joinList(client.LobbyistTeam), client.InteractionFrequency,
			client.RelationshipIntensity, client.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update client %q: %w", client.Name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update of client %q: %w", client.Name, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: client %q", common.ErrNotFound, client.Name)
		}

		if err := replaceRevenue(ctx, tx, client); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// replaceRevenue applies delete-then-insert semantics for a client's revenue
// rows within the batch transaction.
func replaceRevenue(ctx context.Context, tx *sql.Tx, client *model.Client) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM revenues WHERE client_id = ?`, client.ID); err != nil {
		return fmt.Errorf("failed to clear revenue for %q: %w", client.Name, err)
	}
	for year, amount := range client.Revenue {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO revenues (client_id, year, amount) VALUES (?, ?, ?)`,
			client.ID, year, amount,
		); err != nil {
			return fmt.Errorf("failed to insert revenue %d for %q: %w", year, client.Name, err)
		}
	}
	return nil
}

// ListClients returns every client in a user's portfolio with revenue
// loaded, ordered by name.
func (s *SQLiteStorage) ListClients(ctx context.Context, userID string) ([]*model.Client, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM clients WHERE user_id = ? ORDER BY name COLLATE NOCASE`, clientColumns)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	for _, client := range clients {
		if err := s.loadRevenue(ctx, s.db, client); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

// GetClientByName retrieves a single client by case-insensitive name.
func (s *SQLiteStorage) GetClientByName(ctx context.Context, userID, name string) (*model.Client, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM clients WHERE user_id = ? AND LOWER(name) = ?`, clientColumns)
	client, err := scanClient(s.db.QueryRowContext(ctx, query, userID, strings.ToLower(strings.TrimSpace(name))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: client %q", common.ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRevenue(ctx, s.db, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateEnhancements overwrites only the manually curated fields of an
// existing client. Contract and revenue data are untouched.
func (s *SQLiteStorage) UpdateEnhancements(ctx context.Context, client *model.Client) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClient(client); err != nil {
		return err
	}
	if client.ID == "" {
		return fmt.Errorf("%w: client %q has no id", ErrInvalidClient, client.Name)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET practice_area = ?, relationship_strength = ?, conflict_risk = ?,
			time_commitment = ?, renewal_probability = ?, strategic_fit = ?, notes = ?,
			primary_lobbyist = ?, client_originator = ?, lobbyist_team = ?,
			interaction_frequency = ?, relationship_intensity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		joinList(client.PracticeArea), client.RelationshipStrength, string(client.ConflictRisk),
		client.TimeCommitment, client.RenewalProbability, client.StrategicFit, client.Notes,
		client.PrimaryLobbyist, client.ClientOriginator, joinList(client.LobbyistTeam),
		client.InteractionFrequency, client.RelationshipIntensity, client.ID, client.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enhancements for %q: %w", client.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update for %q: %w", client.Name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: client %q", common.ErrNotFound, client.Name)
	}
	return nil
}

// DeleteClient removes a client; its revenue rows cascade.
func (s *SQLiteStorage) DeleteClient(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: client id %q", common.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStorage) loadRevenue(ctx context.Context, q queryable, client *model.Client) error {
	rows, err := q.QueryContext(ctx, `SELECT year, amount FROM revenues WHERE client_id = ?`, client.ID)
	if err != nil {
		return fmt.Errorf("failed to load revenue for %q: %w", client.Name, err)
	}
	defer func() { _ = rows.Close() }()

	client.Revenue = make(map[int]float64)
	for rows.Next() {
		var year int
		var amount float64
		if err := rows.Scan(&year, &amount); err != nil {
			return fmt.Errorf("failed to scan revenue for %q: %w", client.Name, err)
		}
		client.Revenue[year] = amount
	}
	return rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClient(sc scanner) (*model.Client, error) {
	var (
		client       model.Client
		status, risk string
		practice     string
		team         string
	)
	err := sc.Scan(
		&client.ID, &client.UserID, &client.Name, &client.ContractPeriod, &status, &practice,
		&client.RelationshipStrength, &risk, &client.TimeCommitment, &client.RenewalProbability,
		&client.StrategicFit, &client.Notes, &client.PrimaryLobbyist, &client.ClientOriginator,
		&team, &client.InteractionFrequency, &client.RelationshipIntensity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	client.Status = model.ContractStatus(status)
	client.ConflictRisk = model.ConflictRisk(risk)
	client.PracticeArea = splitList(practice)
	client.LobbyistTeam = splitList(team)
	return &client, nil
}

func joinList(items []string) string {
	return strings.Join(items, ";")
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ";")
}
