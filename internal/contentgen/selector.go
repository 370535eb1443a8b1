package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/WatsonMLDev/codele-backend/internal/llm"
)

// resolveTheme returns the theme for a batch. A forced theme is used
// verbatim with no uniqueness check. Otherwise the model picks one,
// avoiding both the most recent persisted themes and the themes already
// chosen by earlier batches in this run.
func (e *Engine) resolveTheme(ctx context.Context, forced string, sessionThemes []string) (string, error) {
	if forced != "" {
		return forced, nil
	}

	recent, err := e.themes.RecentThemes(ctx, e.cfg.RecentThemeLimit)
	if err != nil {
		return "", &GenerationError{Stage: "theme-pick", Err: err}
	}

	avoid := make([]string, 0, len(recent)+len(sessionThemes))
	avoid = append(avoid, recent...)
	avoid = append(avoid, sessionThemes...)

	ctx = llm.WithPurpose(ctx, "theme-pick")

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: themeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildThemeMessage(avoid)},
		},
		Schema:      ThemeSchema,
		MaxTokens:   e.cfg.ThemeMaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return "", &GenerationError{Stage: "theme-pick", Err: err}
	}

	var out themeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", &GenerationError{Stage: "theme-pick", Err: err}
	}

	theme := strings.TrimSpace(out.Theme)
	if theme == "" {
		return "", &GenerationError{Stage: "theme-pick", Err: errors.New("model returned an empty theme")}
	}

	// The picked theme is trusted as-is. Re-checking it against the
	// avoidance list would only reject runs the model already handled.
	return theme, nil
}
