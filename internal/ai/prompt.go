package ai

import (
	"fmt"
	"strings"
)

// maxDiffLength bounds what a request carries. Providers reject huge
// payloads long before a bigger excerpt would improve quality.
const maxDiffLength = 10000

const commitInstruction = `You write git commit messages. Follow the Conventional Commits format: <type>[optional scope]: <description>

Requirements:
- Use an appropriate type: feat, fix, docs, style, refactor, perf, test, chore, or ci
- Keep it SHORT (50-72 characters total, single line only)
- Use imperative mood ("add feature", not "added feature")
- Describe what the diff actually changes
- Return ONLY a single line of plain text: no markdown, no code blocks, no quotes`

const mergeInstruction = `You write git merge commit messages.

Requirements:
- Produce a single line describing what the merged branch brings in
- Keep it under 72 characters
- Use imperative mood
- Return ONLY a single line of plain text: no markdown, no code blocks, no quotes`

const describeInstruction = `You summarize the state of a software repository for its developer.

Requirements:
- Write 2-4 plain sentences: what the project is and what has recently changed
- No markdown, no headings, no bullet points`

func commitRequest(diff string) string {
	return fmt.Sprintf("Generate a commit message for the following git diff:\n\n%s", truncateDiff(diff))
}

func mergeRequest(source, target, diff string, commits []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a merge commit message for merging branch %q into %q.", source, target)
	if len(commits) > 0 {
		b.WriteString("\n\nCommits being merged:\n")
		for _, subject := range commits {
			b.WriteString("- " + subject + "\n")
		}
	}
	b.WriteString("\nThe combined changes:\n\n")
	b.WriteString(truncateDiff(diff))
	return b.String()
}

func describeRequest(snapshot string) string {
	return fmt.Sprintf("Describe this repository based on the following snapshot:\n\n%s", truncateDiff(snapshot))
}

func truncateDiff(diff string) string {
	if len(diff) > maxDiffLength {
		return diff[:maxDiffLength] + "\n... (diff truncated)"
	}
	return diff
}

// stripMarkdownCodeBlocks removes fencing a model added despite the
// instructions.
func stripMarkdownCodeBlocks(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		if firstNewline := strings.Index(text, "\n"); firstNewline > 0 {
			text = text[firstNewline+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(text, "```")

	// Single backticks sometimes wrap the entire message.
	text = strings.Trim(text, "`")

	return strings.TrimSpace(text)
}

// CleanSubjectLine reduces a model response to a usable single-line
// subject: fencing and quoting stripped, first line taken, over-long
// lines truncated while keeping a leading "type:" prefix intact.
func CleanSubjectLine(text string) string {
	text = stripMarkdownCodeBlocks(text)
	text = strings.Trim(text, `"'`)

	firstLine := strings.TrimSpace(strings.Split(text, "\n")[0])
	if len(firstLine) <= 72 {
		return firstLine
	}

	if colonIdx := strings.Index(firstLine, ":"); colonIdx > 0 && colonIdx < 20 {
		prefix := firstLine[:colonIdx+1]
		description := strings.TrimSpace(firstLine[colonIdx+1:])
		maxDescLen := 72 - len(prefix) - 1
		if len(description) > maxDescLen {
			description = description[:maxDescLen-3] + "..."
		}
		return prefix + " " + description
	}

	return firstLine[:69] + "..."
}

// CleanDescription trims fencing from a multi-line response.
func CleanDescription(text string) string {
	return strings.TrimSpace(stripMarkdownCodeBlocks(text))
}
