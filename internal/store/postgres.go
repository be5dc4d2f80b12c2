package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voicehub/voicehub/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Users ---

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, hashed_password, full_name, role, is_active, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, hashed_password, full_name, role, is_active, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// --- Brand Voices ---

const brandVoiceColumns = `id, tenant_id, name, description, version, voice_metadata, dos, donts,
	 source_content, status, created_by_id, created_at, updated_at, published_at`

func scanBrandVoice(row pgx.Row) (*models.BrandVoice, error) {
	var v models.BrandVoice
	err := row.Scan(&v.ID, &v.TenantID, &v.Name, &v.Description, &v.Version, &v.VoiceMetadata,
		&v.Dos, &v.Donts, &v.SourceContent, &v.Status, &v.CreatedByID,
		&v.CreatedAt, &v.UpdatedAt, &v.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *PostgresStore) CreateBrandVoice(ctx context.Context, voice *models.BrandVoice) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO brand_voices (id, tenant_id, name, description, version, voice_metadata, dos, donts,
		   source_content, status, created_by_id, created_at, updated_at, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		voice.ID, voice.TenantID, voice.Name, voice.Description, voice.Version, voice.VoiceMetadata,
		voice.Dos, voice.Donts, voice.SourceContent, voice.Status, voice.CreatedByID,
		voice.CreatedAt, voice.UpdatedAt, voice.PublishedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create brand voice: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBrandVoice(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.BrandVoice, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+brandVoiceColumns+` FROM brand_voices WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	v, err := scanBrandVoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand voice: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) ListBrandVoices(ctx context.Context, filter VoiceFilter) ([]*models.BrandVoice, int, error) {
	// Build WHERE clause dynamically
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.TenantID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("tenant_id = $%d", argIdx))
		args = append(args, filter.TenantID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	// Count query
	var total int
	countQuery := "SELECT COUNT(*) FROM brand_voices WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count brand voices: %w", err)
	}

	// Normalize pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	dataQuery := fmt.Sprintf(
		`SELECT `+brandVoiceColumns+` FROM brand_voices WHERE %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list brand voices: %w", err)
	}
	defer rows.Close()

	var voices []*models.BrandVoice
	for rows.Next() {
		v, err := scanBrandVoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan brand voice: %w", err)
		}
		voices = append(voices, v)
	}
	return voices, total, rows.Err()
}

func (s *PostgresStore) UpdateBrandVoice(ctx context.Context, voice *models.BrandVoice, snapshot *models.BrandVoiceVersion) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update brand voice: %w", err)
	}
	defer tx.Rollback(ctx)

	if snapshot != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO brand_voice_versions (id, brand_voice_id, version_number, name, description,
			   voice_metadata, dos, donts, status, created_by_id, created_at, published_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			snapshot.ID, snapshot.BrandVoiceID, snapshot.VersionNumber, snapshot.Name, snapshot.Description,
			snapshot.VoiceMetadata, snapshot.Dos, snapshot.Donts, snapshot.Status,
			snapshot.CreatedByID, snapshot.CreatedAt, snapshot.PublishedAt)
		if err != nil {
			if isDuplicateKeyError(err) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("insert voice version: %w", err)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE brand_voices SET name = $1, description = $2, version = $3, voice_metadata = $4,
		   dos = $5, donts = $6, source_content = $7, status = $8, updated_at = $9, published_at = $10
		 WHERE id = $11 AND tenant_id = $12`,
		voice.Name, voice.Description, voice.Version, voice.VoiceMetadata,
		voice.Dos, voice.Donts, voice.SourceContent, voice.Status, voice.UpdatedAt, voice.PublishedAt,
		voice.ID, voice.TenantID)
	if err != nil {
		return fmt.Errorf("update brand voice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// --- Voice Versions ---

const versionColumns = `id, brand_voice_id, version_number, name, description, voice_metadata,
	 dos, donts, status, created_by_id, created_at, published_at`

func scanVersion(row pgx.Row) (*models.BrandVoiceVersion, error) {
	var v models.BrandVoiceVersion
	err := row.Scan(&v.ID, &v.BrandVoiceID, &v.VersionNumber, &v.Name, &v.Description,
		&v.VoiceMetadata, &v.Dos, &v.Donts, &v.Status, &v.CreatedByID, &v.CreatedAt, &v.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *PostgresStore) ListVersions(ctx context.Context, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM brand_voice_versions WHERE brand_voice_id = $1`, voiceID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count voice versions: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := s.pool.Query(ctx,
		`SELECT `+versionColumns+` FROM brand_voice_versions
		 WHERE brand_voice_id = $1 ORDER BY version_number DESC LIMIT $2 OFFSET $3`,
		voiceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list voice versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.BrandVoiceVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan voice version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, total, rows.Err()
}

func (s *PostgresStore) GetVersion(ctx context.Context, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM brand_voice_versions
		 WHERE brand_voice_id = $1 AND version_number = $2`, voiceID, versionNumber)
	v, err := scanVersion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get voice version: %w", err)
	}
	return v, nil
}

// --- Content Analyses ---

func (s *PostgresStore) CreateAnalysis(ctx context.Context, analysis *models.ContentAnalysis) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO content_analyses (id, tenant_id, brand_voice_id, voice_version, provider, model, report,
		   overall_score, personality_score, tonality_score, dos_alignment, donts_alignment,
		   issue_count, suggestion_count, created_by_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		analysis.ID, analysis.TenantID, analysis.BrandVoiceID, analysis.VoiceVersion,
		analysis.Provider, analysis.Model, analysis.Report,
		analysis.OverallScore, analysis.PersonalityScore, analysis.TonalityScore,
		analysis.DosAlignment, analysis.DontsAlignment,
		analysis.IssueCount, analysis.SuggestionCount, analysis.CreatedByID, analysis.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create analysis: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAnalysesByVoice(ctx context.Context, voiceID uuid.UUID, tenantID uuid.UUID, limit int) ([]*models.ContentAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, brand_voice_id, voice_version, provider, model, report,
		   overall_score, personality_score, tonality_score, dos_alignment, donts_alignment,
		   issue_count, suggestion_count, created_by_id, created_at
		 FROM content_analyses WHERE brand_voice_id = $1 AND tenant_id = $2
		 ORDER BY created_at DESC LIMIT $3`, voiceID, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.ContentAnalysis
	for rows.Next() {
		var a models.ContentAnalysis
		if err := rows.Scan(&a.ID, &a.TenantID, &a.BrandVoiceID, &a.VoiceVersion, &a.Provider, &a.Model,
			&a.Report, &a.OverallScore, &a.PersonalityScore, &a.TonalityScore,
			&a.DosAlignment, &a.DontsAlignment, &a.IssueCount, &a.SuggestionCount,
			&a.CreatedByID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, &a)
	}
	return analyses, rows.Err()
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
