package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

var ErrUnknownLocation = errors.New("unknown weather location")

const (
	MinForecastDays = 1
	MaxForecastDays = 7
)

type Temperature struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

type Weather struct {
	Location    string      `json:"location"`
	Temperature Temperature `json:"temperature"`
	Conditions  string      `json:"conditions"`
}

type Forecast struct {
	Location string   `json:"location"`
	Days     []string `json:"forecast"`
}

var weatherLocations = []Weather{
	{"San Francisco", Temperature{62, "fahrenheit"}, "Foggy"},
	{"New York", Temperature{55, "fahrenheit"}, "Partly Cloudy"},
	{"London", Temperature{12, "celsius"}, "Rainy"},
	{"Tokyo", Temperature{18, "celsius"}, "Clear"},
	{"Seattle", Temperature{50, "fahrenheit"}, "Rainy"},
	{"Miami", Temperature{82, "fahrenheit"}, "Sunny"},
}

var forecastTemplates = map[string][]string{
	"Foggy":         {"Foggy morning clearing to partly cloudy", "Continued fog with light winds", "Fog dissipating by midday"},
	"Partly Cloudy": {"Mostly sunny", "Increasing clouds", "Cloudy with chance of rain"},
	"Rainy":         {"Light rain continuing", "Heavy rain expected", "Rain tapering off", "Scattered showers"},
	"Clear":         {"Clear skies continuing", "Partly cloudy", "Mostly sunny", "Clear and pleasant"},
	"Sunny":         {"Sunny and warm", "Hot and sunny", "Clear skies", "Bright sunshine"},
}

// WeatherService returns synthetic weather for a fixed set of cities.
type WeatherService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWeatherService(rng *rand.Rand) *WeatherService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &WeatherService{rng: rng}
}

func (s *WeatherService) lookup(location string) (Weather, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	for _, w := range weatherLocations {
		if strings.ToLower(w.Location) == key {
			return w, nil
		}
	}
	return Weather{}, fmt.Errorf("%w: Weather data not available for '%s'. Try: San Francisco, New York, London, Tokyo, Seattle, or Miami.", ErrUnknownLocation, location)
}

// Current looks location up case-insensitively.
func (s *WeatherService) Current(location string) (Weather, error) {
	return s.lookup(location)
}

// Forecast draws one outlook per day from the location's current conditions.
// days is clamped to [MinForecastDays, MaxForecastDays].
func (s *WeatherService) Forecast(location string, days int) (Forecast, error) {
	w, err := s.lookup(location)
	if err != nil {
		return Forecast{}, err
	}
	days = min(max(days, MinForecastDays), MaxForecastDays)

	options := forecastTemplates[w.Conditions]
	if len(options) == 0 {
		options = []string{"Conditions vary"}
	}

	out := Forecast{Location: w.Location, Days: make([]string, 0, days)}
	s.mu.Lock()
	for i := 0; i < days; i++ {
		out.Days = append(out.Days, options[s.rng.IntN(len(options))])
	}
	s.mu.Unlock()
	return out, nil
}
