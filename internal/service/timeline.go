package service

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"skillsense-go/internal/model"
)

const (
	maxMilestones       = 3
	maxDescriptionLen   = 150
	fallbackYearsBack   = 2
	milestoneDateLayout = "2006-01-02"
)

// 按优先级排列的日期模式：月份+年份、ISO日期、纯年份
var (
	monthYearRe = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* (\d{4})\b`)
	isoDateRe   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	bareYearRe  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var sourcePrefixRe = regexp.MustCompile(`(?i)^From (CV|GitHub|LinkedIn):\s*`)

// GenerateTimeline 从技能证据中提取日期，为每项技能生成一条时间线记录
// 纯函数，不做持久化
func GenerateTimeline(profile *model.SkillProfile, userID string) []model.TimelineEntry {
	return generateTimelineAt(profile, userID, time.Now())
}

func generateTimelineAt(profile *model.SkillProfile, userID string, now time.Time) []model.TimelineEntry {
	if profile == nil {
		return nil
	}

	var entries []model.TimelineEntry

	for category, skills := range profile.Categories {
		for _, skill := range skills {
			dates := extractDates(skill.Evidence)
			sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

			var firstObserved, lastObserved time.Time
			if len(dates) > 0 {
				firstObserved = dates[0]
				lastObserved = dates[len(dates)-1]
			} else {
				// 证据里没有日期时合成一个2年窗口，只是估计不是真实观测
				firstObserved = now.AddDate(-fallbackYearsBack, 0, 0)
				lastObserved = now
			}

			entries = append(entries, model.TimelineEntry{
				UserID:            userID,
				SkillName:         skill.Name,
				Category:          category,
				FirstObservedDate: firstObserved.Format(milestoneDateLayout),
				LastObservedDate:  lastObserved.Format(milestoneDateLayout),
				Milestones:        buildMilestones(skill.Evidence, dates, firstObserved),
			})
		}
	}

	log.Printf("[Timeline] Generated %d entries for user %s", len(entries), userID)
	return entries
}

// extractDates 扫描所有证据文本中嵌入的日期
func extractDates(evidence []string) []time.Time {
	var dates []time.Time

	for _, text := range evidence {
		for _, m := range monthYearRe.FindAllStringSubmatch(text, -1) {
			if d, err := time.Parse("Jan 2006", m[1]+" "+m[2]); err == nil {
				dates = append(dates, d)
			}
		}
		for _, m := range isoDateRe.FindAllString(text, -1) {
			if d, err := time.Parse(milestoneDateLayout, m); err == nil {
				dates = append(dates, d)
			}
		}
		for _, m := range bareYearRe.FindAllString(text, -1) {
			if year, err := strconv.Atoi(m); err == nil {
				dates = append(dates, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
			}
		}
	}

	return dates
}

// buildMilestones 从前几条证据构建里程碑
func buildMilestones(evidence []string, dates []time.Time, firstObserved time.Time) []model.Milestone {
	var milestones []model.Milestone

	for i, text := range evidence {
		if i >= maxMilestones {
			break
		}

		description := sourcePrefixRe.ReplaceAllString(text, "")
		// 按字符截断，不能按字节截，否则会切断多字节rune
		if runes := []rune(description); len(runes) > maxDescriptionLen {
			description = string(runes[:maxDescriptionLen]) + "..."
		}

		date := firstObserved
		if i < len(dates) {
			date = dates[i]
		}

		milestones = append(milestones, model.Milestone{
			Date:        date.Format(milestoneDateLayout),
			Source:      inferSource(text),
			Description: description,
		})
	}

	return milestones
}

// inferSource 按子串匹配推断证据来源，默认CV
func inferSource(evidence string) string {
	lower := strings.ToLower(evidence)
	switch {
	case strings.Contains(lower, "github"):
		return "GitHub"
	case strings.Contains(lower, "linkedin"):
		return "LinkedIn"
	default:
		return "CV"
	}
}
