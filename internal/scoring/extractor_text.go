package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"go-jobportal-backend/internal/domain"
)

// yearsPattern picks up "5 years", "5+ yrs" style claims in resume text
var yearsPattern = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// ExtractTextFeatures is the best-effort variant over free resume text from
// the external text-extraction collaborator. It produces the same Features
// bundle as ExtractFeatures so both feed one engine; it is less precise
// (regex year claims instead of dated entries, education capped at a weak
// textual signal).
func ExtractTextFeatures(resumeText string, job *domain.Job) Features {
	var f Features
	if job == nil {
		return f
	}

	text := strings.ToLower(resumeText)

	for _, required := range job.Skills {
		if requiredLower := strings.ToLower(required); requiredLower != "" && strings.Contains(text, requiredLower) {
			f.MatchedSkills = append(f.MatchedSkills, required)
		} else {
			f.UnmatchedSkills = append(f.UnmatchedSkills, required)
		}
	}

	f.ExperienceYears = maxClaimedYears(text)

	f.KeywordMatches, f.TotalKeywords = matchKeywords(jobKeywords(job), text, "")

	for _, term := range educationTerms {
		if strings.Contains(text, term) {
			f.Education = EducationWeak
			f.EducationEvidence = "mentions " + term
			break
		}
	}

	return f
}

// maxClaimedYears returns the largest "N years" claim found in the text
func maxClaimedYears(text string) float64 {
	var years float64
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil && float64(v) > years {
			years = float64(v)
		}
	}
	return years
}
