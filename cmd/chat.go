package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/notebook-cli/internal/adapters/render/transcript"
	"github.com/bnema/notebook-cli/internal/config"
	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const chatHelp = `Commands:
  /subject NAME        switch subject (physics, chemistry, biology)
  /upload PATH [NAME]  upload notes, optionally to another subject
  /studio KIND         generate mcq, short or summary
  /attachments         list notes of the current subject
  /rm ID               forget an attachment
  /copy                copy the last answer to the clipboard
  /logout              sign out and leave
  /help                show this help
  /quit                leave
Anything else is asked as a question.`

var errChatQuit = errors.New("quit chat")

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// scannerReader reads questions from a pipe; prompts are not echoed.
type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return r.scanner.Text(), nil
}

func (r *scannerReader) SetPrompt(string) {}

func (r *scannerReader) Close() error {
	return nil
}

type chatSession struct {
	cmd     *cobra.Command
	app     *app
	reader  lineReader
	printed int
}

func newChatCmd(app *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.notebook.Session().Authenticated() {
				return fmt.Errorf("%w: run nb login first", domain.ErrNotAuthenticated)
			}

			if err := selectSubject(app, subject); err != nil {
				return err
			}

			reader, err := newLineReader(cmd, promptFor(app.notebook.ActiveSubject()))
			if err != nil {
				return err
			}
			defer func() { _ = reader.Close() }()

			session := &chatSession{cmd: cmd, app: app, reader: reader}
			return session.run()
		},
	}

	addSubjectFlag(cmd, &subject, "Subject to start in (default physics)")

	return cmd
}

func newLineReader(cmd *cobra.Command, prompt string) (lineReader, error) {
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isTerminal(stdin) || !isTerminal(cmd.OutOrStdout()) {
		return &scannerReader{scanner: bufio.NewScanner(cmd.InOrStdin())}, nil
	}

	historyFile := ""
	if dir, err := config.Dir(); err == nil {
		historyFile = filepath.Join(dir, "chat_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		AutoComplete:      chatCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "/quit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start line editor: %w", err)
	}

	return rl, nil
}

func chatCompleter() *readline.PrefixCompleter {
	subjects := make([]readline.PrefixCompleterInterface, 0, len(domain.Subjects()))
	for _, subject := range domain.Subjects() {
		subjects = append(subjects, readline.PcItem(string(subject)))
	}

	kinds := make([]readline.PrefixCompleterInterface, 0, len(domain.ArtifactKinds()))
	for _, kind := range domain.ArtifactKinds() {
		kinds = append(kinds, readline.PcItem(string(kind)))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("/subject", subjects...),
		readline.PcItem("/upload"),
		readline.PcItem("/studio", kinds...),
		readline.PcItem("/attachments"),
		readline.PcItem("/rm"),
		readline.PcItem("/copy"),
		readline.PcItem("/logout"),
		readline.PcItem("/help"),
		readline.PcItem("/quit"),
	)
}

func promptFor(subject domain.Subject) string {
	return fmt.Sprintf("%s> ", subject)
}

func (s *chatSession) run() error {
	if err := s.printHeader(); err != nil {
		return err
	}
	s.println("Type /help for commands.")

	for {
		line, err := s.reader.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if strings.TrimSpace(line) == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.handle(line); err != nil {
			if errors.Is(err, errChatQuit) {
				return nil
			}
			s.app.logger.Debug("chat command failed", zap.String("line", line), zap.Error(err))
			s.println(describeRequestError(err))
		}
	}
}

func (s *chatSession) handle(line string) error {
	if !strings.HasPrefix(line, "/") {
		return s.ask(line)
	}

	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "/quit", "/exit":
		return errChatQuit
	case "/help":
		s.println(chatHelp)
		return nil
	case "/subject":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage /subject NAME", domain.ErrValidation)
		}
		if err := selectSubject(s.app, args[0]); err != nil {
			return err
		}
		s.reader.SetPrompt(promptFor(s.app.notebook.ActiveSubject()))
		s.printed = 0
		return s.printHeader()
	case "/upload":
		return s.upload(args)
	case "/studio":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage /studio mcq|short|summary", domain.ErrValidation)
		}
		return s.studio(args[0])
	case "/attachments", "/sources":
		return s.printHeader()
	case "/rm":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage /rm ID", domain.ErrValidation)
		}
		if err := s.app.notebook.RemoveAttachment(s.cmd.Context(), domain.AttachmentID(args[0])); err != nil {
			return err
		}
		s.println("Removed " + args[0])
		return nil
	case "/copy":
		return s.copyLastAnswer()
	case "/logout":
		if err := s.app.notebook.Logout(s.cmd.Context()); err != nil {
			return err
		}
		s.println("Logged out.")
		return errChatQuit
	default:
		return fmt.Errorf("%w: unknown command %s (try /help)", domain.ErrValidation, command)
	}
}

func (s *chatSession) ask(question string) error {
	err := runWithSpinner(s.cmd.Context(), s.cmd.ErrOrStderr(), "Thinking...", func(ctx context.Context) error {
		_, err := s.app.notebook.Ask(ctx, question)
		return err
	})
	if err != nil {
		return err
	}

	return s.flush()
}

func (s *chatSession) studio(raw string) error {
	kind, err := domain.ParseArtifactKind(raw)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Generating %s...", kind.Label())
	err = runWithSpinner(s.cmd.Context(), s.cmd.ErrOrStderr(), label, func(ctx context.Context) error {
		_, err := s.app.notebook.GenerateArtifact(ctx, kind)
		return err
	})
	if err != nil {
		return err
	}

	return s.flush()
}

func (s *chatSession) upload(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: usage /upload PATH [SUBJECT]", domain.ErrValidation)
	}

	var subject domain.Subject
	if len(args) == 2 {
		parsed, err := domain.ParseSubject(args[1])
		if err != nil {
			return err
		}
		subject = parsed
	}

	attachment, err := uploadFile(s.cmd, s.app, args[0], subject)
	if err != nil {
		return err
	}

	if attachment.Subject != s.app.notebook.ActiveSubject() {
		s.println(fmt.Sprintf("%s added to %s notes.", attachment.DisplayName, attachment.Subject.Label()))
	}

	return s.flush()
}

func (s *chatSession) copyLastAnswer() error {
	messages := s.app.notebook.Transcript()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != domain.RoleAssistant {
			continue
		}
		if err := s.app.copy(messages[i].Text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		s.println("Copied last answer to the clipboard.")
		return nil
	}

	s.println("Nothing to copy yet.")
	return nil
}

// flush prints the transcript messages added since the last call.
func (s *chatSession) flush() error {
	messages := s.app.notebook.Transcript()
	if s.printed > len(messages) {
		s.printed = 0
	}
	if s.printed == len(messages) {
		return nil
	}

	fresh := messages[s.printed:]
	s.printed = len(messages)

	opts := s.app.renderOptions(s.cmd.OutOrStdout())
	output, err := transcript.RenderMessages(fresh, opts)
	if err != nil {
		return err
	}

	s.println(output)
	return nil
}

func (s *chatSession) printHeader() error {
	snapshot := s.app.notebook.Snapshot()
	output, err := s.app.render(transcript.View{
		Identity:    snapshot.Session.Identity,
		Subject:     snapshot.Subject,
		Attachments: snapshot.Visible,
	}, s.app.renderOptions(s.cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	s.println(output)
	return nil
}

func (s *chatSession) println(text string) {
	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), text)
}
