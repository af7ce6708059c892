package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"skillsense-go/internal/model"
)

// ProfileStore 档案存储能力，注入到需要读写档案的组件
// 服务端存储是唯一权威来源
type ProfileStore interface {
	// SaveProfile 保存一份新生成的档案，返回分配的档案ID
	SaveProfile(ctx context.Context, userID string, profile *model.SkillProfile) (string, error)
	// LoadProfile 读取用户最新的档案，不存在时返回nil
	LoadProfile(ctx context.Context, userID string) (*model.SkillProfile, error)
	// ClearProfile 清除用户的档案
	ClearProfile(ctx context.Context, userID string) error

	// InsertValidation 追加一条技能确认记录，永不修改已有记录
	InsertValidation(ctx context.Context, record *model.ValidatedSkill) error

	// ReplaceTimeline 替换用户的时间线记录
	ReplaceTimeline(ctx context.Context, userID string, entries []model.TimelineEntry) error
	// LoadTimeline 读取用户的时间线记录
	LoadTimeline(ctx context.Context, userID string) ([]model.TimelineEntry, error)
}

// MemoryStore 内存实现（用于测试或未配置数据库时）
type MemoryStore struct {
	mu          sync.RWMutex
	profiles    map[string]*model.SkillProfile
	validations []model.ValidatedSkill
	timelines   map[string][]model.TimelineEntry
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]*model.SkillProfile),
		timelines: make(map[string][]model.TimelineEntry),
	}
}

// SaveProfile 保存档案
func (s *MemoryStore) SaveProfile(ctx context.Context, userID string, profile *model.SkillProfile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	s.profiles[userID] = profile
	return profile.ID, nil
}

// LoadProfile 读取档案
func (s *MemoryStore) LoadProfile(ctx context.Context, userID string) (*model.SkillProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profiles[userID], nil
}

// ClearProfile 清除档案
func (s *MemoryStore) ClearProfile(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, userID)
	return nil
}

// InsertValidation 追加确认记录
func (s *MemoryStore) InsertValidation(ctx context.Context, record *model.ValidatedSkill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.validations = append(s.validations, *record)
	return nil
}

// Validations 全部确认记录（测试用）
func (s *MemoryStore) Validations(userID string) []model.ValidatedSkill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.ValidatedSkill
	for _, v := range s.validations {
		if v.UserID == userID {
			result = append(result, v)
		}
	}
	return result
}

// ReplaceTimeline 替换时间线
func (s *MemoryStore) ReplaceTimeline(ctx context.Context, userID string, entries []model.TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timelines[userID] = entries
	return nil
}

// LoadTimeline 读取时间线
func (s *MemoryStore) LoadTimeline(ctx context.Context, userID string) ([]model.TimelineEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.timelines[userID], nil
}
