package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"skillsense-go/internal/model"
)

// PostgresStore PostgreSQL存储实现
// 表: skill_profiles / validated_skills / skill_timeline
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore 连接数据库并验证连通性
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close 关闭数据库连接
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveProfile 插入一行新档案，每次生成一行
func (s *PostgresStore) SaveProfile(ctx context.Context, userID string, profile *model.SkillProfile) (string, error) {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}

	query := `
	INSERT INTO skill_profiles (id, user_id, profile_data, created_at)
	VALUES ($1, $2, $3, NOW())
	`
	if _, err := s.db.ExecContext(ctx, query, profile.ID, userID, profileJSON); err != nil {
		return "", fmt.Errorf("failed to save profile: %w", err)
	}
	return profile.ID, nil
}

// LoadProfile 读取用户最新的一份档案，没有时返回nil
func (s *PostgresStore) LoadProfile(ctx context.Context, userID string) (*model.SkillProfile, error) {
	query := `
	SELECT profile_data
	FROM skill_profiles
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT 1
	`

	var profileJSON []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&profileJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile model.SkillProfile
	if err := json.Unmarshal(profileJSON, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &profile, nil
}

// ClearProfile 删除用户的所有档案
func (s *PostgresStore) ClearProfile(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM skill_profiles WHERE user_id = $1`, userID)
	return err
}

// InsertValidation 追加确认记录，一次确认动作一行
func (s *PostgresStore) InsertValidation(ctx context.Context, record *model.ValidatedSkill) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	originalEvidence, err := json.Marshal(record.OriginalEvidence)
	if err != nil {
		return err
	}
	editedEvidence, err := json.Marshal(record.EditedEvidence)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO validated_skills
		(id, user_id, skill_name, category, status,
		 original_confidence, edited_confidence,
		 original_evidence, edited_evidence, user_feedback, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.SkillName, record.Category, string(record.Status),
		record.OriginalConfidence, record.EditedConfidence,
		originalEvidence, editedEvidence, nullableString(record.UserFeedback),
	)
	if err != nil {
		return fmt.Errorf("failed to insert validation: %w", err)
	}
	return nil
}

// ReplaceTimeline 重建用户的时间线记录
func (s *PostgresStore) ReplaceTimeline(ctx context.Context, userID string, entries []model.TimelineEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM skill_timeline WHERE user_id = $1`, userID); err != nil {
		return err
	}

	query := `
	INSERT INTO skill_timeline
		(user_id, skill_name, category, first_observed_date, last_observed_date, milestones)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, entry := range entries {
		milestones, err := json.Marshal(entry.Milestones)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			userID, entry.SkillName, entry.Category,
			entry.FirstObservedDate, entry.LastObservedDate, milestones,
		); err != nil {
			return fmt.Errorf("failed to insert timeline entry: %w", err)
		}
	}

	return tx.Commit()
}

// LoadTimeline 按首次观测日期降序读取时间线
func (s *PostgresStore) LoadTimeline(ctx context.Context, userID string) ([]model.TimelineEntry, error) {
	query := `
	SELECT skill_name, category, first_observed_date, last_observed_date, milestones
	FROM skill_timeline
	WHERE user_id = $1
	ORDER BY first_observed_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimelineEntry
	for rows.Next() {
		entry := model.TimelineEntry{UserID: userID}
		var milestones []byte
		if err := rows.Scan(&entry.SkillName, &entry.Category,
			&entry.FirstObservedDate, &entry.LastObservedDate, &milestones); err != nil {
			return nil, err
		}
		if len(milestones) > 0 {
			if err := json.Unmarshal(milestones, &entry.Milestones); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
