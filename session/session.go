// Package session implements the interactive editor of a single client record.
//
// A Session loads one client from a Store, and then loops: it clears the
// display, renders the client and a lettered menu, and reads the operator's
// choice. Field choices prompt for a new value, which is applied to the
// in-memory record and then written through to the Store. The Store is closed
// when the Session ends, however it ends.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.vetclinic.dev/vetclient/clients"
	"go.vetclinic.dev/vetclient/metrics"
)

// Store is the record store used by a Session.
type Store interface {
	// SeedDefault inserts the sample client unless it already exists.
	SeedDefault(ctx context.Context) (bool, error)
	// Fetch the client having |id|, or return clients.ErrNotFound.
	Fetch(ctx context.Context, id int64) (clients.Record, error)
	// UpdateField durably sets Field |f| of the client having |id|.
	UpdateField(ctx context.Context, id int64, f clients.Field, value string) error
	// Close the Store.
	Close() error
}

// Config configures a Session.
type Config struct {
	ClientID int64 `long:"client-id" env:"CLIENT_ID" default:"50" description:"ID of the client to edit"`
	NoSeed   bool  `long:"no-seed" env:"NO_SEED" description:"Don't seed the sample client into the store"`
}

// Messages written to the operator.
const (
	msgNotFound      = "Client not found!"
	msgSaved         = "Information saved successfully."
	msgInvalidChoice = "Invalid choice! Please try again."
	msgInvalidField  = "Invalid field!"
	msgGoodbye       = "Exiting... Goodbye!"
)

// menu is written after each rendering of the client.
const menu = `
Choose:
A: change first name
B: change last name
C: change phone number
D: change email
E: change address
F: change city
G: change postal code
I: update information
Q: quit
> `

// fieldChoices maps menu choices to the Field they edit.
var fieldChoices = map[string]clients.Field{
	"a": clients.FirstName,
	"b": clients.LastName,
	"c": clients.PhoneNum,
	"d": clients.Email,
	"e": clients.Address,
	"f": clients.City,
	"g": clients.PostalCode,
}

// Session is an interactive editing session of one client.
type Session struct {
	cfg     Config
	store   Store
	in      io.Reader
	out     io.Writer
	clearer Clearer

	record clients.Record
	notice string // Shown with the next render.

	lines    chan string
	linesErr error         // Set before |lines| is closed.
	done     chan struct{} // Closed when Run returns.
}

// New returns a Session which edits the configured client of |store|, reading
// operator input from |in| and rendering to |out|. The Session owns |store|,
// and closes it when Run returns.
func New(cfg Config, store Store, in io.Reader, out io.Writer, clearer Clearer) *Session {
	if clearer == nil {
		clearer = NopClearer
	}
	return &Session{
		cfg:     cfg,
		store:   store,
		in:      in,
		out:     out,
		clearer: clearer,
	}
}

// Record returns the Session's in-memory client record.
func (s *Session) Record() clients.Record { return s.record }

// Run the Session until the operator quits, input ends, or |ctx| is done.
// A client which can't be found ends the Session without error. Errors of
// the Store are returned, and the Store is closed on every return path.
func (s *Session) Run(ctx context.Context) (err error) {
	s.lines, s.done = make(chan string), make(chan struct{})
	defer close(s.done)

	defer func() {
		if cErr := s.store.Close(); cErr != nil && err == nil {
			err = errors.WithMessage(cErr, "closing store")
		}
	}()

	if !s.cfg.NoSeed {
		if _, err = s.store.SeedDefault(ctx); err != nil {
			return err
		}
	}

	s.record, err = s.store.Fetch(ctx, s.cfg.ClientID)
	if errors.Cause(err) == clients.ErrNotFound {
		log.WithField("id", s.cfg.ClientID).Warn("client not found")
		fmt.Fprintln(s.out, msgNotFound)
		return nil
	} else if err != nil {
		return err
	}

	go s.scanLines()

	for {
		s.render()

		var line, ok, err = s.readLine(ctx)
		if err != nil {
			return err
		} else if !ok {
			log.Debug("input ended at menu")
			return nil
		}

		var choice = firstToken(line)
		if f, isField := fieldChoices[choice]; isField {
			metrics.MenuChoicesTotal.WithLabelValues(choice).Inc()

			if done, err := s.editField(ctx, f); err != nil || done {
				return err
			}
			continue
		}

		switch choice {
		case "i":
			metrics.MenuChoicesTotal.WithLabelValues(choice).Inc()
			s.notice = msgSaved
		case "q":
			metrics.MenuChoicesTotal.WithLabelValues(choice).Inc()
			fmt.Fprintln(s.out, msgGoodbye)
			return nil
		default:
			metrics.MenuChoicesTotal.WithLabelValues(metrics.Invalid).Inc()
			log.WithField("input", line).Debug("invalid menu choice")
			s.notice = msgInvalidChoice
		}
	}
}

// editField prompts for and applies a new value of Field |f|. It returns
// true if input ended before a value was read.
func (s *Session) editField(ctx context.Context, f clients.Field) (bool, error) {
	fmt.Fprintf(s.out, "Enter new %s: ", f.Label())

	var value, ok, err = s.readLine(ctx)
	if err != nil {
		return true, err
	} else if !ok {
		log.WithField("field", f.String()).Debug("input ended before a value was read")
		fmt.Fprintln(s.out)
		return true, nil
	}

	if err = s.record.Update(f, value); err == nil {
		err = s.store.UpdateField(ctx, s.record.ID, f, value)
	}
	if errors.Cause(err) == clients.ErrInvalidField {
		log.WithFields(log.Fields{"field": int(f), "err": err}).Warn("rejected update")
		s.notice = msgInvalidField
		return false, nil
	} else if err != nil {
		return true, err
	}

	s.notice = fmt.Sprintf("%s updated to: %s", f.Title(), value)
	return false, nil
}

func (s *Session) render() {
	if err := s.clearer.Clear(s.out); err != nil {
		log.WithField("err", err).Debug("failed to clear display")
	}
	_ = s.record.Display(s.out)

	if s.notice != "" {
		fmt.Fprintf(s.out, "\n%s\n", s.notice)
		s.notice = ""
	}
	fmt.Fprint(s.out, menu)
}

// scanLines delivers lines of input to |lines| until input ends, so that
// reads may be abandoned when the Session's context is done. Lines are of
// unbounded length.
func (s *Session) scanLines() {
	var br = bufio.NewReader(s.in)
	for {
		var line, err = br.ReadString('\n')
		if line != "" {
			select {
			case s.lines <- strings.TrimSuffix(line, "\n"):
			case <-s.done:
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				s.linesErr = err
			}
			close(s.lines)
			return
		}
	}
}

func (s *Session) readLine(ctx context.Context) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-s.lines:
		if !ok && s.linesErr != nil {
			return "", false, errors.WithMessage(s.linesErr, "reading input")
		}
		return strings.TrimRight(line, "\r"), ok, nil
	}
}

func firstToken(line string) string {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
