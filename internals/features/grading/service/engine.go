package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gradingModel "unitrack_backend/internals/features/grading/model"
)

// Error kinds surfaced by the conversion engine. Controllers map these to
// HTTP statuses; the engine never touches fiber.
var (
	ErrValidation     = errors.New("validation error")
	ErrUnknownGrade   = errors.New("unknown grade")
	ErrNoMatchingBand = errors.New("no matching band")
)

// GradeInput is the raw caller input: a letter grade, a numeric score, or
// both. Score wins when both are present.
type GradeInput struct {
	Grade *string
	Score *float64
}

// DerivedGrade is the read-side view of a canonical score. Label and GPA are
// nil when no band covers the score so display keeps working for a
// misconfigured system.
type DerivedGrade struct {
	Label  *string  `json:"label"`
	Gpa    *float64 `json:"gpa"`
	Passed bool     `json:"passed"`
}

// ResolveScore converts raw input to the canonical 0..100 score.
//
// A supplied score takes precedence and is range-checked as-is. A letter
// grade is matched case-insensitively against the system's bands and maps
// to the band midpoint — the stored model keeps no finer-grained value, so
// the midpoint is the representative score.
func ResolveScore(in GradeInput, sys gradingModel.GradingSystemModel) (float64, error) {
	if in.Score != nil {
		s := *in.Score
		if s < 0 || s > 100 {
			return 0, fmt.Errorf("%w: score %.2f outside [0,100]", ErrValidation, s)
		}
		return s, nil
	}

	if in.Grade == nil || strings.TrimSpace(*in.Grade) == "" {
		return 0, fmt.Errorf("%w: either grade or score is required", ErrValidation)
	}

	want := strings.TrimSpace(*in.Grade)
	for _, band := range sys.GradeScales {
		if strings.EqualFold(band.GradeScaleGrade, want) {
			return (band.GradeScaleMinimumScore + band.GradeScaleMaximumScore) / 2, nil
		}
	}
	return 0, fmt.Errorf("%w: grade %q not configured", ErrUnknownGrade, want)
}

// DeriveGrade maps a canonical score to label/GPA/pass-fail. Bands are
// scanned by minimum score descending; the first band whose minimum the
// score reaches wins, so boundary scores land in the higher band.
func DeriveGrade(score float64, sys gradingModel.GradingSystemModel) DerivedGrade {
	out := DerivedGrade{
		Passed: score >= sys.GradingSystemMinimumPassingScore,
	}

	bands := append([]gradingModel.GradeScaleModel(nil), sys.GradeScales...)
	sort.Slice(bands, func(i, j int) bool {
		return bands[i].GradeScaleMinimumScore > bands[j].GradeScaleMinimumScore
	})

	for _, band := range bands {
		if score >= band.GradeScaleMinimumScore && score <= maxBound(band, sys) {
			label := band.GradeScaleGrade
			gpa := band.GradeScaleGpaValue
			out.Label = &label
			out.Gpa = &gpa
			return out
		}
	}
	return out
}

// maxBound widens the top band to the system maximum so a score exactly at
// the ceiling still resolves.
func maxBound(band gradingModel.GradeScaleModel, sys gradingModel.GradingSystemModel) float64 {
	if band.GradeScaleMaximumScore >= sys.GradingSystemMaximumScore {
		return sys.GradingSystemMaximumScore
	}
	return band.GradeScaleMaximumScore
}

// ValidateSystem returns human-readable configuration issues instead of an
// error so pre-save validation surfaces can show all of them at once. The
// at-most-one-default rule needs the store and lives in the controller.
func ValidateSystem(sys gradingModel.GradingSystemModel) []string {
	var issues []string

	if sys.GradingSystemMaximumScore < 0 || sys.GradingSystemMaximumScore > 100 {
		issues = append(issues, fmt.Sprintf("maximum score %.2f outside [0,100]", sys.GradingSystemMaximumScore))
	}
	if sys.GradingSystemMinimumPassingScore < 0 || sys.GradingSystemMinimumPassingScore > 100 {
		issues = append(issues, fmt.Sprintf("minimum passing score %.2f outside [0,100]", sys.GradingSystemMinimumPassingScore))
	}
	if sys.GradingSystemMinimumPassingScore > sys.GradingSystemMaximumScore {
		issues = append(issues, fmt.Sprintf("minimum passing score %.2f exceeds maximum score %.2f",
			sys.GradingSystemMinimumPassingScore, sys.GradingSystemMaximumScore))
	}

	bands := append([]gradingModel.GradeScaleModel(nil), sys.GradeScales...)
	sort.Slice(bands, func(i, j int) bool {
		return bands[i].GradeScaleMinimumScore < bands[j].GradeScaleMinimumScore
	})

	for _, b := range bands {
		if b.GradeScaleMinimumScore > b.GradeScaleMaximumScore {
			issues = append(issues, fmt.Sprintf("band %q has minimum %.2f above maximum %.2f",
				b.GradeScaleGrade, b.GradeScaleMinimumScore, b.GradeScaleMaximumScore))
		}
		if b.GradeScaleMinimumScore < 0 || b.GradeScaleMaximumScore > sys.GradingSystemMaximumScore {
			issues = append(issues, fmt.Sprintf("band %q range [%.2f,%.2f] outside [0,%.2f]",
				b.GradeScaleGrade, b.GradeScaleMinimumScore, b.GradeScaleMaximumScore, sys.GradingSystemMaximumScore))
		}
		if b.GradeScaleGpaValue < 0 || b.GradeScaleGpaValue > 4 {
			issues = append(issues, fmt.Sprintf("band %q GPA %.2f outside [0,4]", b.GradeScaleGrade, b.GradeScaleGpaValue))
		}
	}

	// pairwise overlap; a shared boundary is fine (it resolves to the
	// higher band) but interior intersection is not
	for i := 0; i < len(bands); i++ {
		for j := i + 1; j < len(bands); j++ {
			a, b := bands[i], bands[j]
			if a.GradeScaleMinimumScore < b.GradeScaleMaximumScore &&
				b.GradeScaleMinimumScore < a.GradeScaleMaximumScore {
				issues = append(issues, fmt.Sprintf("bands %q and %q overlap", a.GradeScaleGrade, b.GradeScaleGrade))
			}
		}
	}

	// coverage gaps over [0, max]
	if len(bands) > 0 {
		if bands[0].GradeScaleMinimumScore > 0 {
			issues = append(issues, fmt.Sprintf("no band covers scores below %.2f", bands[0].GradeScaleMinimumScore))
		}
		for i := 1; i < len(bands); i++ {
			if bands[i].GradeScaleMinimumScore > bands[i-1].GradeScaleMaximumScore {
				issues = append(issues, fmt.Sprintf("gap between bands %q and %q",
					bands[i-1].GradeScaleGrade, bands[i].GradeScaleGrade))
			}
		}
		top := bands[len(bands)-1]
		if top.GradeScaleMaximumScore < sys.GradingSystemMaximumScore {
			issues = append(issues, fmt.Sprintf("no band covers scores above %.2f", top.GradeScaleMaximumScore))
		}
	} else {
		issues = append(issues, "system has no grade bands")
	}

	return issues
}
