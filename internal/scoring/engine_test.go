package scoring_test

import (
	"errors"
	"fmt"
	"testing"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSkillsComponent(t *testing.T) {
	rng := domain.ExperienceRange{Min: 0, Max: 10}

	tests := []struct {
		matched, unmatched int
		want               int
	}{
		{0, 0, 0}, // job requires no skills: no credit, no division by zero
		{0, 4, 0},
		{1, 3, 13}, // round(50*1/4)
		{2, 2, 25},
		{1, 2, 17}, // round(50/3)
		{3, 0, 50},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.matched, tt.matched+tt.unmatched), func(t *testing.T) {
			f := scoring.Features{}
			for i := 0; i < tt.matched; i++ {
				f.MatchedSkills = append(f.MatchedSkills, fmt.Sprintf("m%d", i))
			}
			for i := 0; i < tt.unmatched; i++ {
				f.UnmatchedSkills = append(f.UnmatchedSkills, fmt.Sprintf("u%d", i))
			}
			res := scoring.Evaluate(f, rng)
			assert.Equal(t, tt.want, res.Breakdown.SkillsScore)
		})
	}
}

func TestEvaluateSkillsExampleFromDocs(t *testing.T) {
	job := &domain.Job{
		Title:  "Frontend Developer",
		Skills: []string{"React", "Node.js"},
	}
	profile := &domain.CandidateProfile{
		About:  "experienced with Node.js",
		Skills: []string{"react"},
	}

	res := scoring.Evaluate(scoring.ExtractFeatures(profile, job), domain.ExperienceRange{Min: 0, Max: 10})
	assert.Equal(t, 50, res.Breakdown.SkillsScore)
}

func TestEvaluateExperienceComponent(t *testing.T) {
	tests := []struct {
		name  string
		years float64
		rng   domain.ExperienceRange
		want  int
	}{
		{"inside range", 3.0, domain.ExperienceRange{Min: 2, Max: 5}, 30},
		{"at minimum", 2.0, domain.ExperienceRange{Min: 2, Max: 5}, 30},
		{"at maximum", 5.0, domain.ExperienceRange{Min: 2, Max: 5}, 30},
		{"overqualified", 7.0, domain.ExperienceRange{Min: 2, Max: 5}, 25},
		{"below minimum proportional", 1.0, domain.ExperienceRange{Min: 2, Max: 5}, 15},
		{"well below minimum", 1.0, domain.ExperienceRange{Min: 4, Max: 8}, 8},
		{"zero experience", 0.0, domain.ExperienceRange{Min: 2, Max: 5}, 0},
		{"zero minimum in range", 0.0, domain.ExperienceRange{Min: 0, Max: 5}, 30},
		{"zero minimum overqualified", 6.0, domain.ExperienceRange{Min: 0, Max: 5}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoring.Evaluate(scoring.Features{ExperienceYears: tt.years}, tt.rng)
			assert.Equal(t, tt.want, res.Breakdown.ExperienceScore)
		})
	}
}

func TestEvaluateKeywordComponent(t *testing.T) {
	rng := domain.ExperienceRange{Min: 0, Max: 10}

	res := scoring.Evaluate(scoring.Features{KeywordMatches: 3, TotalKeywords: 4}, rng)
	assert.Equal(t, 8, res.Breakdown.KeywordScore) // round(10*3/4)

	res = scoring.Evaluate(scoring.Features{KeywordMatches: 0, TotalKeywords: 0}, rng)
	assert.Equal(t, 0, res.Breakdown.KeywordScore)
}

func TestEvaluateEducationComponent(t *testing.T) {
	rng := domain.ExperienceRange{Min: 1, Max: 10}

	res := scoring.Evaluate(scoring.Features{Education: scoring.EducationStrong}, rng)
	assert.Equal(t, 10, res.Breakdown.ProfileScore)

	res = scoring.Evaluate(scoring.Features{Education: scoring.EducationWeak}, rng)
	assert.Equal(t, 5, res.Breakdown.ProfileScore)

	res = scoring.Evaluate(scoring.Features{Education: scoring.EducationNone}, rng)
	assert.Equal(t, 0, res.Breakdown.ProfileScore)
}

func TestEvaluateTotalScoreBounds(t *testing.T) {
	t.Run("all zero", func(t *testing.T) {
		res := scoring.Evaluate(scoring.Features{
			UnmatchedSkills: []string{"Go", "SQL"},
			TotalKeywords:   3,
		}, domain.ExperienceRange{Min: 2, Max: 5})
		assert.Equal(t, 0, res.Score)
	})

	t.Run("perfect match", func(t *testing.T) {
		res := scoring.Evaluate(scoring.Features{
			MatchedSkills:   []string{"Go", "SQL"},
			ExperienceYears: 3.0,
			KeywordMatches:  4,
			TotalKeywords:   4,
			Education:       scoring.EducationStrong,
		}, domain.ExperienceRange{Min: 2, Max: 5})
		assert.Equal(t, 100, res.Score)
	})

	t.Run("total rounds the unrounded sum", func(t *testing.T) {
		// skills 50/3=16.67, keywords 10/3=3.33 -> total round(20.0)=20,
		// while rounding the rounded parts would give 17+3=20 as well; use a
		// case where they differ: skills 1/4 (12.5) + keywords 1/4 (2.5)
		res := scoring.Evaluate(scoring.Features{
			MatchedSkills:   []string{"a"},
			UnmatchedSkills: []string{"b", "c", "d"},
			KeywordMatches:  1,
			TotalKeywords:   4,
		}, domain.ExperienceRange{Min: 2, Max: 5})
		// 12.5 + 0 + 2.5 + 0 = 15
		assert.Equal(t, 15, res.Score)
		assert.Equal(t, 13, res.Breakdown.SkillsScore)
		assert.Equal(t, 3, res.Breakdown.KeywordScore)
	})
}

func TestEvaluateBreakdownContract(t *testing.T) {
	f := scoring.Features{
		MatchedSkills:     []string{"Go"},
		UnmatchedSkills:   []string{"Rust"},
		ExperienceYears:   4.5,
		KeywordMatches:    2,
		TotalKeywords:     5,
		Education:         scoring.EducationStrong,
		EducationEvidence: "education entries present",
	}
	rng := domain.ExperienceRange{Min: 2, Max: 5}

	res := scoring.Evaluate(f, rng)
	b := res.Breakdown

	assert.Equal(t, 50, b.SkillsWeight)
	assert.Equal(t, 30, b.ExperienceWeight)
	assert.Equal(t, 10, b.KeywordWeight)
	assert.Equal(t, 10, b.ProfileWeight)
	assert.Equal(t, []string{"Go"}, b.MatchedSkills)
	assert.Equal(t, []string{"Rust"}, b.UnmatchedSkills)
	assert.Equal(t, 4.5, b.FoundExperience)
	assert.Equal(t, rng, b.RequiredExperience)
	assert.Equal(t, 2, b.KeywordMatches)
	assert.Equal(t, 5, b.TotalKeywords)
	assert.Equal(t, "education entries present", b.EducationEvidence)
	assert.Empty(t, b.Error)
}

func TestErrorResult(t *testing.T) {
	rng := domain.ExperienceRange{Min: 1, Max: 3}
	res := scoring.ErrorResult(rng, errors.New("resume fetch failed"))

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, "resume fetch failed", res.Breakdown.Error)
	assert.Equal(t, rng, res.Breakdown.RequiredExperience)
	assert.Equal(t, 50, res.Breakdown.SkillsWeight)
}
