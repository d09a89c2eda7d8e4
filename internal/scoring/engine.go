package scoring

import (
	"math"

	"go-jobportal-backend/internal/domain"
)

// Component weights. They sum to 100 so the total is directly a percentage.
const (
	WeightSkills     = 50
	WeightExperience = 30
	WeightKeywords   = 10
	WeightEducation  = 10
)

// Overqualified candidates keep most of the experience credit
const overqualifiedScore = 25

// Result carries the final score and its auditable breakdown
type Result struct {
	Score     int
	Breakdown domain.ScoreBreakdown
}

// Evaluate combines an extracted feature bundle with the job's required
// experience range into a 0-100 score. Sub-scores are computed as floats and
// only rounded for the breakdown; the total rounds the unrounded sum.
func Evaluate(f Features, required domain.ExperienceRange) Result {
	skillsScore := 0.0
	if total := len(f.MatchedSkills) + len(f.UnmatchedSkills); total > 0 {
		skillsScore = float64(WeightSkills) * float64(len(f.MatchedSkills)) / float64(total)
	}

	experienceScore := experienceComponent(f.ExperienceYears, required)

	keywordScore := 0.0
	if f.TotalKeywords > 0 {
		keywordScore = float64(WeightKeywords) * float64(f.KeywordMatches) / float64(f.TotalKeywords)
	}

	educationScore := 0.0
	switch f.Education {
	case EducationStrong:
		educationScore = float64(WeightEducation)
	case EducationWeak:
		educationScore = float64(WeightEducation) / 2
	}

	total := math.Round(skillsScore + experienceScore + keywordScore + educationScore)
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Result{
		Score: int(total),
		Breakdown: domain.ScoreBreakdown{
			SkillsScore:        int(math.Round(skillsScore)),
			SkillsWeight:       WeightSkills,
			MatchedSkills:      f.MatchedSkills,
			UnmatchedSkills:    f.UnmatchedSkills,
			ExperienceScore:    int(math.Round(experienceScore)),
			ExperienceWeight:   WeightExperience,
			FoundExperience:    f.ExperienceYears,
			RequiredExperience: required,
			KeywordScore:       int(math.Round(keywordScore)),
			KeywordWeight:      WeightKeywords,
			KeywordMatches:     f.KeywordMatches,
			TotalKeywords:      f.TotalKeywords,
			ProfileScore:       int(math.Round(educationScore)),
			ProfileWeight:      WeightEducation,
			EducationEvidence:  f.EducationEvidence,
		},
	}
}

// experienceComponent grades found experience against the required range:
// full credit inside the range, a fixed reduced credit when overqualified,
// proportional credit below the minimum. The proportional branch only runs
// when min > 0; min == 0 is always covered by the in-range test.
func experienceComponent(years float64, required domain.ExperienceRange) float64 {
	switch {
	case years >= float64(required.Min) && years <= float64(required.Max):
		return float64(WeightExperience)
	case years > float64(required.Max):
		return overqualifiedScore
	case required.Min > 0:
		score := float64(WeightExperience) * years / float64(required.Min)
		if score < 0 {
			return 0
		}
		if score > float64(WeightExperience) {
			return float64(WeightExperience)
		}
		return score
	default:
		return 0
	}
}

// ErrorResult is the degraded outcome used when a feature source fails, for
// example when the external resume-text fetch errors out. Submission must
// not block on an unscoreable resume, so the application gets a zero score
// with the failure recorded on the breakdown.
func ErrorResult(required domain.ExperienceRange, err error) Result {
	return Result{
		Score: 0,
		Breakdown: domain.ScoreBreakdown{
			SkillsWeight:       WeightSkills,
			ExperienceWeight:   WeightExperience,
			RequiredExperience: required,
			KeywordWeight:      WeightKeywords,
			ProfileWeight:      WeightEducation,
			Error:              err.Error(),
		},
	}
}
