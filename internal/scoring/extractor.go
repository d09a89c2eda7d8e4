// Package scoring computes the candidate-job compatibility score: feature
// extraction over a profile (or free resume text) feeding a fixed-weight
// engine that yields a 0-100 score with an auditable breakdown.
package scoring

import (
	"math"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"
)

// EducationSignal grades the education evidence found on a profile
type EducationSignal int

const (
	EducationNone EducationSignal = iota
	EducationWeak
	EducationStrong
)

// Features is the comparable bundle both extractor variants produce.
// The engine consumes Features without knowing which variant built them.
type Features struct {
	MatchedSkills     []string
	UnmatchedSkills   []string
	ExperienceYears   float64
	KeywordMatches    int
	TotalKeywords     int
	Education         EducationSignal
	EducationEvidence string
}

// educationTerms are degree/university-style markers scanned for in free text
var educationTerms = []string{"degree", "university"}

// ExtractFeatures normalizes a structured candidate profile and a job posting
// into a feature bundle. Malformed input degrades to empty features rather
// than failing the scoring pipeline.
func ExtractFeatures(profile *domain.CandidateProfile, job *domain.Job) Features {
	var f Features
	if job == nil {
		return f
	}

	var headline, about string
	var skills []string
	if profile != nil {
		headline = strings.ToLower(profile.Headline)
		about = strings.ToLower(profile.About)
		skills = profile.Skills
	}

	// Skill matching: exact (case-insensitive) skill list hit, or substring
	// of the headline/about text
	for _, required := range job.Skills {
		requiredLower := strings.ToLower(required)
		matched := false
		for _, s := range skills {
			if strings.EqualFold(s, required) {
				matched = true
				break
			}
		}
		if !matched && requiredLower != "" {
			matched = strings.Contains(headline, requiredLower) || strings.Contains(about, requiredLower)
		}
		if matched {
			f.MatchedSkills = append(f.MatchedSkills, required)
		} else {
			f.UnmatchedSkills = append(f.UnmatchedSkills, required)
		}
	}

	if profile != nil {
		f.ExperienceYears = totalExperienceYears(profile.Experience, time.Now())
	}

	f.KeywordMatches, f.TotalKeywords = matchKeywords(jobKeywords(job), headline, about)

	f.Education, f.EducationEvidence = educationSignal(profile, about)

	return f
}

// totalExperienceYears sums whole-month spans across entries and converts to
// years rounded to one decimal. Open-ended entries run until now; inverted or
// unparseable date ranges contribute zero months, never negative.
func totalExperienceYears(entries []domain.WorkExperience, now time.Time) float64 {
	totalMonths := 0
	for _, exp := range entries {
		if exp.StartDate.IsZero() {
			continue
		}
		end := now
		if !exp.Current {
			if exp.EndDate == nil || exp.EndDate.IsZero() {
				continue
			}
			end = *exp.EndDate
		}
		months := (end.Year()-exp.StartDate.Year())*12 + int(end.Month()) - int(exp.StartDate.Month())
		if months > 0 {
			totalMonths += months
		}
	}
	return math.Round(float64(totalMonths)/12*10) / 10
}

// jobKeywords tokenizes the job title and location on whitespace, drops short
// tokens, and case-folds. Duplicate tokens are kept so the denominator
// matches what the posting repeats.
func jobKeywords(job *domain.Job) []string {
	var keywords []string
	for _, token := range strings.Fields(job.Title + " " + job.Location) {
		if len(token) <= 3 {
			continue
		}
		keywords = append(keywords, strings.ToLower(token))
	}
	return keywords
}

func matchKeywords(keywords []string, headline, about string) (matches, total int) {
	total = len(keywords)
	for _, kw := range keywords {
		if strings.Contains(headline, kw) || strings.Contains(about, kw) {
			matches++
		}
	}
	return matches, total
}

func educationSignal(profile *domain.CandidateProfile, aboutLower string) (EducationSignal, string) {
	if profile != nil && len(profile.Education) > 0 {
		return EducationStrong, "education entries present"
	}
	for _, term := range educationTerms {
		if strings.Contains(aboutLower, term) {
			return EducationWeak, "mentions " + term
		}
	}
	return EducationNone, ""
}
