package metabolism

import (
	"math"
	"testing"
	"time"

	"github.com/lifeboard/internal/domain"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		age      int
		sex      domain.Sex
		expected float64
	}{
		{
			name:     "male 80kg 180cm 30y",
			weightKg: 80,
			heightCm: 180,
			age:      30,
			sex:      domain.SexMale,
			expected: 10*80 + 6.25*180 - 5*30 + 5, // 1780
		},
		{
			name:     "female 60kg 165cm 25y",
			weightKg: 60,
			heightCm: 165,
			age:      25,
			sex:      domain.SexFemale,
			expected: 10*60 + 6.25*165 - 5*25 - 161, // 1345.25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BMR(tt.weightKg, tt.heightCm, tt.age, tt.sex)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %.2f, got %.2f", tt.expected, got)
			}
		})
	}
}

func TestTDEE_ActivityMultipliers(t *testing.T) {
	bmr := BMR(80, 180, 30, domain.SexMale) // 1780

	tests := []struct {
		activity domain.ActivityLevel
		mult     float64
	}{
		{domain.ActivitySedentary, 1.2},
		{domain.ActivityLight, 1.375},
		{domain.ActivityModerate, 1.55},
		{domain.ActivityActive, 1.725},
		{domain.ActivityVeryActive, 1.9},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			got := TDEE(80, 180, 30, domain.SexMale, tt.activity, nil)
			want := int(math.Round(bmr * tt.mult))
			if got != want {
				t.Errorf("Expected %d, got %d", want, got)
			}
		})
	}
}

func TestTDEE_OverrideTakesPrecedence(t *testing.T) {
	override := 2500
	got := TDEE(80, 180, 30, domain.SexMale, domain.ActivitySedentary, &override)
	if got != 2500 {
		t.Errorf("Expected override 2500, got %d", got)
	}

	// Non-positive override is ignored
	zero := 0
	got = TDEE(80, 180, 30, domain.SexMale, domain.ActivitySedentary, &zero)
	if got == 0 {
		t.Error("Zero override should fall through to the formula")
	}
}

func TestEstimateBasicTDEE(t *testing.T) {
	if got := EstimateBasicTDEE(80); got != 2160 {
		t.Errorf("Expected 2160, got %d", got)
	}
	if got := EstimateBasicTDEE(74.5); got != 2012 { // 2011.5 rounds up
		t.Errorf("Expected 2012, got %d", got)
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"day before birthday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 33},
		{"on birthday", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 34},
		{"day after birthday", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), 34},
		{"end of year", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(birth, tt.today); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestReestimateTDEE_Dispatch(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	profile := &domain.UserProfile{
		HeightCm:      180,
		BirthDate:     time.Date(1994, 3, 1, 0, 0, 0, 0, time.UTC),
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityModerate,
	}

	// Profile without override: formula path, tracks the given weight
	withProfile := ReestimateTDEE(75, profile, today)
	want := TDEE(75, 180, 30, domain.SexMale, domain.ActivityModerate, nil)
	if withProfile != want {
		t.Errorf("Expected formula TDEE %d, got %d", want, withProfile)
	}

	// No profile: weight-only heuristic
	if got := ReestimateTDEE(75, nil, today); got != EstimateBasicTDEE(75) {
		t.Errorf("Expected basic estimate, got %d", got)
	}

	// Profile with override: override says nothing about drift, heuristic path
	override := 3000
	profile.TDEEOverride = &override
	if got := ReestimateTDEE(75, profile, today); got != EstimateBasicTDEE(75) {
		t.Errorf("Expected basic estimate with override present, got %d", got)
	}
}
