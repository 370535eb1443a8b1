package contentgen

import (
	"fmt"
	"strings"
)

const themeSystemPrompt = `You are the content curator for a daily coding puzzle game.

Rules:
- Pick a single theme for the next run of daily problems.
- Themes are fully flexible: algorithmic topics, data structures, holidays, pop culture, wordplay, anything that can flavor a week of small JavaScript puzzles.
- The theme must be clearly different from every theme in the "themes to avoid" list. Do not pick a synonym or a minor variation of one.
- Answer with the theme name only, short and title-cased.`

const batchSystemPrompt = `You are a puzzle author creating daily JavaScript coding problems for a casual puzzle game.

Rules:
- Generate exactly the requested number of problems, all flavored by the given theme.
- Order problems easiest first; later problems in the batch should be harder.
- Each problem is solved by completing a single JavaScript function. Provide the function skeleton as starter code.
- Write the description in Markdown: state the task, the input/output contract, and one worked example.
- Each problem has exactly 6 test cases. Cover the basic path, edge cases, trickier logic, and one conciseness check.
- Inputs and expected values are JavaScript literals, exactly as they would appear in code.
- Every title must be distinct from every title in the "existing titles" list. Do not reuse or lightly rephrase one.
- Problems must be self-contained: no network, no file system, no randomness.`

// buildThemeMessage constructs the theme-pick user message.
func buildThemeMessage(avoid []string) string {
	var b strings.Builder
	b.WriteString("Themes to avoid:\n")
	b.WriteString(numberedList(avoid))
	return b.String()
}

// buildBatchMessage constructs the batch-generation user message. The
// existing-titles list is sent whole; dedup correctness beats prompt
// economy here.
func buildBatchMessage(theme string, count int, existingTitles []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Theme: %s\n", theme)
	fmt.Fprintf(&b, "Number of problems: %d\n", count)

	b.WriteString("\nExisting titles (never reuse any of these):\n")
	b.WriteString(numberedList(existingTitles))

	return b.String()
}

// numberedList formats items one per line, "None" when empty.
func numberedList(items []string) string {
	if len(items) == 0 {
		return "None"
	}

	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it)
	}
	return strings.TrimRight(b.String(), "\n")
}
