package tools

import (
	"context"
	"fmt"
	"strings"
)

type TellJokeInput struct {
	Category string `json:"category" jsonschema:"description=Joke category: programming, general, knock-knock or dad-joke"`
}

type JokeCategoriesInput struct{}

func (t *Toolset) TellJoke(ctx context.Context, in *TellJokeInput) (*ToolOutput, error) {
	category := ""
	if in != nil {
		category = strings.TrimSpace(in.Category)
	}
	joke, err := t.jokes.Random(category)
	if err != nil {
		return failure(ctx, "tell_joke", category, "invalid_category", err), nil
	}
	out := fmt.Sprintf("%s\n\nCategory: %s | Rating: %d/5", joke.Text, joke.Category, joke.Rating)
	return success(ctx, "tell_joke", joke.Category, out), nil
}

func (t *Toolset) JokeCategories(ctx context.Context, _ *JokeCategoriesInput) (*ToolOutput, error) {
	out := "Available joke categories: " + strings.Join(t.jokes.Categories(), ", ")
	return success(ctx, "get_joke_categories", "", out), nil
}
