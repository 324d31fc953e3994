package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"mepquote/internal/model"

	_ "github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET google_id=$1, email=$2, name=$3, access_token=$4,
		refresh_token=$5, token_expiry=$6, updated_at=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.ID)
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres email repository implementation. Attachments are stored as a JSON
// column since they are only ever read back whole.
type PostgresEmailRepository struct {
	db *sql.DB
}

func NewPostgresEmailRepository(db *sql.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

func (r *PostgresEmailRepository) Create(ctx context.Context, userID string, email *model.NormalizedEmail) error {
	attachments, err := json.Marshal(email.Attachments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO emails (user_id, message_id, thread_id, subject, from_email, from_name,
			body_text, snippet, attachments, received_at, is_unread, relevance_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())`
	_, err = r.db.ExecContext(ctx, query,
		userID, email.ID, email.ThreadID, email.Subject, email.FromEmail, email.FromName,
		email.BodyText, email.Snippet, attachments, email.ReceivedAt, email.IsUnread,
		email.RelevanceScore)
	return err
}

func (r *PostgresEmailRepository) FindByUserID(ctx context.Context, userID string) ([]*model.NormalizedEmail, error) {
	query := `
		SELECT message_id, thread_id, subject, from_email, from_name, body_text, snippet,
			attachments, received_at, is_unread, relevance_score
		FROM emails WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*model.NormalizedEmail
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *PostgresEmailRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.NormalizedEmail, error) {
	query := `
		SELECT message_id, thread_id, subject, from_email, from_name, body_text, snippet,
			attachments, received_at, is_unread, relevance_score
		FROM emails WHERE user_id = $1 AND message_id = $2`
	rows, err := r.db.QueryContext(ctx, query, userID, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("email not found")
	}
	return scanEmail(rows)
}

func scanEmail(rows *sql.Rows) (*model.NormalizedEmail, error) {
	email := &model.NormalizedEmail{}
	var attachments []byte
	err := rows.Scan(
		&email.ID, &email.ThreadID, &email.Subject, &email.FromEmail, &email.FromName,
		&email.BodyText, &email.Snippet, &attachments, &email.ReceivedAt, &email.IsUnread,
		&email.RelevanceScore)
	if err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &email.Attachments); err != nil {
			return nil, err
		}
	}
	return email, nil
}

func (r *PostgresEmailRepository) Delete(ctx context.Context, userID, messageID string) error {
	query := `DELETE FROM emails WHERE user_id = $1 AND message_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, messageID)
	return err
}

// Postgres quotation repository implementation
type PostgresQuotationRepository struct {
	db *sql.DB
}

func NewPostgresQuotationRepository(db *sql.DB) *PostgresQuotationRepository {
	return &PostgresQuotationRepository{db: db}
}

func (r *PostgresQuotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	query := `
		INSERT INTO quotations (id, user_id, message_id, client_name, client_email, subject, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		quotation.ID, quotation.UserID, quotation.MessageID, quotation.ClientName,
		quotation.ClientEmail, quotation.Subject, quotation.Status, quotation.Notes,
		quotation.CreatedAt, quotation.UpdatedAt)
	return err
}

func (r *PostgresQuotationRepository) FindByID(ctx context.Context, id string) (*model.Quotation, error) {
	query := `SELECT id, user_id, message_id, client_name, client_email, subject, status, notes, created_at, updated_at FROM quotations WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	quotation := &model.Quotation{}
	err := row.Scan(
		&quotation.ID, &quotation.UserID, &quotation.MessageID, &quotation.ClientName,
		&quotation.ClientEmail, &quotation.Subject, &quotation.Status, &quotation.Notes,
		&quotation.CreatedAt, &quotation.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("quotation not found")
		}
		return nil, err
	}
	return quotation, nil
}

func (r *PostgresQuotationRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Quotation, error) {
	query := `SELECT id, user_id, message_id, client_name, client_email, subject, status, notes, created_at, updated_at FROM quotations WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []*model.Quotation
	for rows.Next() {
		quotation := &model.Quotation{}
		err := rows.Scan(
			&quotation.ID, &quotation.UserID, &quotation.MessageID, &quotation.ClientName,
			&quotation.ClientEmail, &quotation.Subject, &quotation.Status, &quotation.Notes,
			&quotation.CreatedAt, &quotation.UpdatedAt)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, quotation)
	}
	return quotations, rows.Err()
}

func (r *PostgresQuotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	query := `
		UPDATE quotations SET client_name=$1, client_email=$2, subject=$3, status=$4, notes=$5, updated_at=NOW()
		WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		quotation.ClientName, quotation.ClientEmail, quotation.Subject,
		quotation.Status, quotation.Notes, quotation.ID)
	return err
}

func (r *PostgresQuotationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM quotations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// InitializeDatabase creates the tables if they do not exist yet.
func InitializeDatabase(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		google_id TEXT UNIQUE NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		access_token TEXT,
		refresh_token TEXT,
		token_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS emails (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message_id TEXT NOT NULL,
		thread_id TEXT,
		subject TEXT,
		from_email TEXT,
		from_name TEXT,
		body_text TEXT,
		snippet TEXT,
		attachments JSONB,
		received_at TIMESTAMPTZ,
		is_unread BOOLEAN NOT NULL DEFAULT FALSE,
		relevance_score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, message_id)
	);

	CREATE TABLE IF NOT EXISTS quotations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message_id TEXT NOT NULL,
		client_name TEXT,
		client_email TEXT,
		subject TEXT,
		status TEXT NOT NULL,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`
	_, err := db.Exec(schema)
	return err
}
