package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

var ErrInvalidCategory = errors.New("invalid joke category")

type Joke struct {
	Text     string `json:"joke_text"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

type jokeCategory struct {
	name  string
	jokes []Joke
}

var jokeCatalog = []jokeCategory{
	{"programming", []Joke{
		{Text: "Why do programmers prefer dark mode? Because light attracts bugs!", Rating: 4},
		{Text: "How many programmers does it take to change a light bulb? None, it's a hardware problem!", Rating: 3},
		{Text: "A SQL query walks into a bar, walks up to two tables and asks: 'Can I join you?'", Rating: 5},
		{Text: "There are 10 types of people in the world: those who understand binary and those who don't.", Rating: 4},
		{Text: "Why do Python programmers wear glasses? Because they can't C!", Rating: 3},
	}},
	{"general", []Joke{
		{Text: "Why don't scientists trust atoms? Because they make up everything!", Rating: 4},
		{Text: "What do you call a fake noodle? An impasta!", Rating: 3},
		{Text: "Why did the scarecrow win an award? He was outstanding in his field!", Rating: 3},
	}},
	{"knock-knock", []Joke{
		{Text: "Knock knock. Who's there? Interrupting cow. Interrupting cow w... MOOOOO!", Rating: 2},
		{Text: "Knock knock. Who's there? Tank. Tank who? You're welcome!", Rating: 3},
	}},
	{"dad-joke", []Joke{
		{Text: "I'm afraid for the calendar. Its days are numbered.", Rating: 4},
		{Text: "What do you call a bear with no teeth? A gummy bear!", Rating: 3},
		{Text: "Why don't eggs tell jokes? They'd crack each other up!", Rating: 3},
		{Text: "I used to hate facial hair, but then it grew on me.", Rating: 4},
	}},
}

// JokeService serves canned jokes for demonstrations.
type JokeService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJokeService uses rng for selection; nil seeds a fresh PCG source.
func NewJokeService(rng *rand.Rand) *JokeService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &JokeService{rng: rng}
}

// Categories returns the category names in catalog order.
func (s *JokeService) Categories() []string {
	names := make([]string, 0, len(jokeCatalog))
	for _, c := range jokeCatalog {
		names = append(names, c.name)
	}
	return names
}

// Random picks a joke from category.
func (s *JokeService) Random(category string) (Joke, error) {
	for _, c := range jokeCatalog {
		if c.name != category {
			continue
		}
		s.mu.Lock()
		i := s.rng.IntN(len(c.jokes))
		s.mu.Unlock()
		joke := c.jokes[i]
		joke.Category = c.name
		return joke, nil
	}
	return Joke{}, fmt.Errorf("%w: Invalid category '%s'. Use get_joke_categories to see available categories.", ErrInvalidCategory, category)
}
