package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	gradingModel "unitrack_backend/internals/features/grading/model"
)

func band(grade string, min, max, gpa float64) gradingModel.GradeScaleModel {
	return gradingModel.GradeScaleModel{
		GradeScaleGrade:        grade,
		GradeScaleMinimumScore: min,
		GradeScaleMaximumScore: max,
		GradeScaleGpaValue:     gpa,
	}
}

func letterSystem() gradingModel.GradingSystemModel {
	return gradingModel.GradingSystemModel{
		GradingSystemType:                gradingModel.GradingSystemTypeLetter,
		GradingSystemMinimumPassingScore: 60,
		GradingSystemMaximumScore:        100,
		GradeScales: []gradingModel.GradeScaleModel{
			band("A", 90, 100, 4.0),
			band("B", 80, 90, 3.0),
			band("C", 70, 80, 2.0),
			band("D", 60, 70, 1.0),
			band("F", 0, 60, 0.0),
		},
	}
}

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func TestResolveScore(t *testing.T) {
	sys := letterSystem()

	tests := []struct {
		name    string
		in      GradeInput
		want    float64
		wantErr error
	}{
		{name: "score wins over grade", in: GradeInput{Grade: sptr("F"), Score: fptr(95)}, want: 95},
		{name: "score used as-is", in: GradeInput{Score: fptr(72.5)}, want: 72.5},
		{name: "score below range", in: GradeInput{Score: fptr(-1)}, wantErr: ErrValidation},
		{name: "score above range", in: GradeInput{Score: fptr(100.01)}, wantErr: ErrValidation},
		{name: "grade maps to midpoint", in: GradeInput{Grade: sptr("B")}, want: 85},
		{name: "grade lookup is case-insensitive", in: GradeInput{Grade: sptr("b")}, want: 85},
		{name: "unknown grade", in: GradeInput{Grade: sptr("Z")}, wantErr: ErrUnknownGrade},
		{name: "neither grade nor score", in: GradeInput{}, wantErr: ErrValidation},
		{name: "blank grade", in: GradeInput{Grade: sptr("  ")}, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveScore(tt.in, sys)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveGradeBoundaries(t *testing.T) {
	sys := letterSystem()

	// 85 sits inside B; 90 is shared between A and B and must resolve to
	// the higher band
	got := DeriveGrade(85, sys)
	assert.Equal(t, "B", *got.Label)
	assert.Equal(t, 3.0, *got.Gpa)

	got = DeriveGrade(90, sys)
	assert.Equal(t, "A", *got.Label)
	assert.Equal(t, 4.0, *got.Gpa)

	got = DeriveGrade(100, sys)
	assert.Equal(t, "A", *got.Label)

	got = DeriveGrade(0, sys)
	assert.Equal(t, "F", *got.Label)
	assert.False(t, got.Passed)
}

func TestDeriveGradePassThreshold(t *testing.T) {
	sys := letterSystem()
	for score := 0.0; score <= 100; score += 0.5 {
		got := DeriveGrade(score, sys)
		assert.Equal(t, score >= sys.GradingSystemMinimumPassingScore, got.Passed, "score %v", score)
	}
}

func TestDeriveGradeFullCoverageNeverMisses(t *testing.T) {
	sys := letterSystem()
	for score := 0.0; score <= 100; score += 0.25 {
		got := DeriveGrade(score, sys)
		assert.NotNil(t, got.Label, "score %v has no band", score)
		assert.NotNil(t, got.Gpa, "score %v has no gpa", score)
	}
}

func TestDeriveGradeMisconfiguredSystemDegrades(t *testing.T) {
	sys := gradingModel.GradingSystemModel{
		GradingSystemMinimumPassingScore: 50,
		GradingSystemMaximumScore:        100,
		GradeScales: []gradingModel.GradeScaleModel{
			band("A", 90, 100, 4.0),
			// gap: nothing covers [0,90)
		},
	}
	got := DeriveGrade(45, sys)
	assert.Nil(t, got.Label)
	assert.Nil(t, got.Gpa)
	assert.False(t, got.Passed) // pass/fail still computed
}

func TestResolveDeriveRoundTrip(t *testing.T) {
	sys := letterSystem()
	for _, label := range []string{"A", "B", "C", "D", "F"} {
		score, err := ResolveScore(GradeInput{Grade: &label}, sys)
		assert.NoError(t, err)
		got := DeriveGrade(score, sys)
		assert.NotNil(t, got.Label)
		assert.Equal(t, label, *got.Label, "midpoint of %q must derive back to it", label)
	}
}

func TestValidateSystem(t *testing.T) {
	t.Run("well-formed system has no issues", func(t *testing.T) {
		assert.Empty(t, ValidateSystem(letterSystem()))
	})

	t.Run("overlapping bands are reported", func(t *testing.T) {
		sys := letterSystem()
		sys.GradeScales = append(sys.GradeScales, band("B+", 85, 95, 3.5))
		issues := ValidateSystem(sys)
		assert.NotEmpty(t, issues)
		joined := ""
		for _, s := range issues {
			joined += s + "\n"
		}
		assert.Contains(t, joined, "overlap")
	})

	t.Run("coverage gap is reported", func(t *testing.T) {
		sys := gradingModel.GradingSystemModel{
			GradingSystemMinimumPassingScore: 50,
			GradingSystemMaximumScore:        100,
			GradeScales: []gradingModel.GradeScaleModel{
				band("A", 70, 100, 4.0),
				band("F", 0, 40, 0.0),
			},
		}
		issues := ValidateSystem(sys)
		assert.NotEmpty(t, issues)
	})

	t.Run("inverted band and bad gpa are reported", func(t *testing.T) {
		sys := gradingModel.GradingSystemModel{
			GradingSystemMinimumPassingScore: 50,
			GradingSystemMaximumScore:        100,
			GradeScales: []gradingModel.GradeScaleModel{
				band("X", 80, 20, 5.0),
			},
		}
		issues := ValidateSystem(sys)
		assert.GreaterOrEqual(t, len(issues), 2)
	})

	t.Run("passing above maximum is reported", func(t *testing.T) {
		sys := letterSystem()
		sys.GradingSystemMinimumPassingScore = 101
		issues := ValidateSystem(sys)
		assert.NotEmpty(t, issues)
	})

	t.Run("empty system is reported", func(t *testing.T) {
		sys := gradingModel.GradingSystemModel{GradingSystemMaximumScore: 100}
		assert.Contains(t, ValidateSystem(sys), "system has no grade bands")
	})
}
