package services

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestJokeService_Categories(t *testing.T) {
	s := NewJokeService(seeded())
	assert.Equal(t, []string{"programming", "general", "knock-knock", "dad-joke"}, s.Categories())
}

func TestJokeService_RandomValidCategory(t *testing.T) {
	s := NewJokeService(seeded())

	for _, category := range s.Categories() {
		joke, err := s.Random(category)
		require.NoError(t, err)
		assert.Equal(t, category, joke.Category)
		assert.NotEmpty(t, joke.Text)
		assert.GreaterOrEqual(t, joke.Rating, 1)
		assert.LessOrEqual(t, joke.Rating, 5)
	}
}

func TestJokeService_RandomIsDeterministicForASeed(t *testing.T) {
	a, _ := NewJokeService(seeded()).Random("programming")
	b, _ := NewJokeService(seeded()).Random("programming")
	assert.Equal(t, a, b)
}

func TestJokeService_InvalidCategory(t *testing.T) {
	_, err := NewJokeService(nil).Random("invalid")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.ErrorContains(t, err, "Invalid category 'invalid'")
}

func TestWeatherService_CurrentIsCaseInsensitive(t *testing.T) {
	s := NewWeatherService(seeded())

	w, err := s.Current("  san FRANCISCO ")
	require.NoError(t, err)
	assert.Equal(t, Weather{Location: "San Francisco", Temperature: Temperature{62, "fahrenheit"}, Conditions: "Foggy"}, w)
}

func TestWeatherService_UnknownLocation(t *testing.T) {
	s := NewWeatherService(seeded())

	_, err := s.Current("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownLocation)
	assert.ErrorContains(t, err, "Weather data not available for 'Atlantis'")

	_, err = s.Forecast("Atlantis", 3)
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestWeatherService_ForecastClampsDays(t *testing.T) {
	s := NewWeatherService(seeded())

	tests := []struct {
		days, want int
	}{
		{3, 3}, {0, 1}, {-4, 1}, {7, 7}, {30, 7},
	}
	for _, tt := range tests {
		f, err := s.Forecast("London", tt.days)
		require.NoError(t, err)
		assert.Equal(t, "London", f.Location)
		assert.Len(t, f.Days, tt.want)
		for _, day := range f.Days {
			assert.Contains(t, forecastTemplates["Rainy"], day)
		}
	}
}
