package transcript

import (
	"fmt"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const defaultWrapWidth = 80

// View is a snapshot of the notebook state to draw.
type View struct {
	Identity    string
	Subject     domain.Subject
	Attachments []domain.Attachment
	Messages    []domain.Message
	State       domain.RequestState
}

type RenderOptions struct {
	// Markdown renders assistant answers through glamour. Off for pipes.
	Markdown bool
	// Style is a glamour standard style name; empty picks "dark".
	Style string
	Width int
	// HideSources drops the header and source list, leaving messages only.
	HideSources bool
}

func renderView(view View, opts RenderOptions, s styles) (string, error) {
	lines := make([]string, 0, 8)

	if !opts.HideSources {
		lines = append(lines,
			s.title.Render("Notebook · "+view.Subject.Label()),
			s.header.Render(identityLine(view.Identity)),
			renderTabs(view.Subject, s),
			s.section.Render(renderSources(view.Subject, view.Attachments, s)),
		)
	}

	messages, err := renderMessages(view.Messages, opts, s)
	if err != nil {
		return "", err
	}
	if messages != "" {
		if opts.HideSources {
			lines = append(lines, messages)
		} else {
			lines = append(lines, s.section.Render(messages))
		}
	}

	if view.State.Loading() {
		lines = append(lines, s.loading.Render("Thinking..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

func identityLine(identity string) string {
	if strings.TrimSpace(identity) == "" {
		return "not logged in"
	}

	return "user: " + identity
}

func renderTabs(active domain.Subject, s styles) string {
	tabs := make([]string, 0, len(domain.Subjects()))
	for _, subject := range domain.Subjects() {
		if subject == active {
			tabs = append(tabs, s.tabActive.Render("["+subject.Label()+"]"))
			continue
		}
		tabs = append(tabs, s.tab.Render(" "+subject.Label()+" "))
	}

	return strings.Join(tabs, " ")
}

func renderSources(subject domain.Subject, attachments []domain.Attachment, s styles) string {
	lines := []string{
		s.title.Render("Sources") + " " + s.counter.Render(fmt.Sprintf("%d added", len(attachments))),
	}

	if len(attachments) == 0 {
		lines = append(lines, s.empty.Render(fmt.Sprintf("No %s notes uploaded yet.", strings.ToLower(subject.Label()))))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, attachment := range attachments {
		lines = append(lines, "  "+s.source.Render(attachment.DisplayName)+" "+s.sourceID.Render(string(attachment.ID)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderMessages draws only the given messages, for incremental output in the
// chat loop.
func RenderMessages(messages []domain.Message, opts RenderOptions) (string, error) {
	return renderMessages(messages, opts, newStyles())
}

func renderMessages(messages []domain.Message, opts RenderOptions, s styles) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}

	var markdown *glamour.TermRenderer
	if opts.Markdown {
		renderer, err := newMarkdownRenderer(opts)
		if err != nil {
			return "", err
		}
		markdown = renderer
	}

	blocks := make([]string, 0, len(messages))
	for _, message := range messages {
		block, err := renderMessage(message, markdown, s)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

func renderMessage(message domain.Message, markdown *glamour.TermRenderer, s styles) (string, error) {
	switch message.Role {
	case domain.RoleUser:
		return s.user.Render("You") + "\n" + s.body.Render(message.Text), nil
	case domain.RoleSystem:
		return s.system.Render(message.Text), nil
	}

	text := message.Text
	if markdown != nil {
		rendered, err := markdown.Render(text)
		if err != nil {
			return "", fmt.Errorf("render answer markdown: %w", err)
		}
		text = strings.Trim(rendered, "\n")
	} else {
		text = s.body.Render(text)
	}

	lines := []string{s.assistant.Render("Notebook"), text}
	if message.HasCitation() {
		lines = append(lines, s.citation.Render("Ref: "+message.Citation)+"  "+s.confidence.Render("Confidence: "+message.Confidence))
	}

	return strings.Join(lines, "\n"), nil
}

func newMarkdownRenderer(opts RenderOptions) (*glamour.TermRenderer, error) {
	style := opts.Style
	if style == "" {
		style = "dark"
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWrapWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	return renderer, nil
}
