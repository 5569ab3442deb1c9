package prompt

import (
	"address-book/internal/addressbook"
	"address-book/internal/model"
	"address-book/internal/templating"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type fieldPrompt struct {
	label string
	rule  Rule
	set   func(*model.Contact, string)
}

var contactPrompts = []fieldPrompt{
	{"Enter first name: ", NonBlank("Invalid first name."), func(c *model.Contact, v string) { c.FirstName = v }},
	{"Enter last name: ", NonBlank("Invalid last name."), func(c *model.Contact, v string) { c.LastName = v }},
	{"Enter street address: ", NonBlank("Invalid street address."), func(c *model.Contact, v string) { c.Street = v }},
	{"Enter city: ", NonBlank("Invalid city."), func(c *model.Contact, v string) { c.City = v }},
	{"Enter state: ", NonBlank("Invalid state."), func(c *model.Contact, v string) { c.State = v }},
	{"Enter country: ", NonBlank("Invalid country."), func(c *model.Contact, v string) { c.Country = v }},
	{"Enter mobile number: ", Digits("Invalid mobile number."), func(c *model.Contact, v string) { c.Mobile = v }},
	{"Enter email: ", EmailLike("Invalid email."), func(c *model.Contact, v string) { c.Email = v }},
}

var searchLabels = map[model.Field]string{
	model.FieldFirstName: "Enter first name to search: ",
	model.FieldLastName:  "Enter last name to search: ",
	model.FieldStreet:    "Enter street address to search: ",
}

// Session is the interactive menu over a Book.
type Session struct {
	book    *addressbook.Book
	prompts *Prompter
	views   *templating.Engine
	out     io.Writer
	logger  *zap.Logger
}

func NewSession(book *addressbook.Book, prompts *Prompter, views *templating.Engine, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{book: book, prompts: prompts, views: views, out: out, logger: logger}
}

// Run shows the menu until the user exits or input ends.
func (s *Session) Run() error {
	for {
		if err := s.views.Render(s.out, templating.ViewMenu, nil); err != nil {
			return err
		}
		option, err := s.prompts.Line("Enter option number: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "\nExiting.")
			return nil
		}
		if err != nil {
			return err
		}

		switch option {
		case "1":
			err = s.AddContact()
		case "2":
			err = s.Summary()
		case "3":
			fmt.Fprintln(s.out, "Exiting.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option. Try again.")
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "\nExiting.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// AddContact asks for every field and adds the contact. Exhausting the
// retries for one field abandons this contact only.
func (s *Session) AddContact() error {
	var c model.Contact
	for _, fp := range contactPrompts {
		value, err := s.prompts.Ask(fp.label, fp.rule)
		if errors.Is(err, ErrMaxRetries) {
			return nil
		}
		if err != nil {
			return err
		}
		fp.set(&c, value)
	}

	status, err := s.book.AddContact(c)
	result := templating.Result{Added: status == addressbook.Added}
	switch {
	case errors.Is(err, addressbook.ErrDuplicateContact):
		result.Duplicate = true
	case errors.Is(err, addressbook.ErrPersistence):
		result.SaveError = err
	case err != nil:
		return err
	}
	return s.views.Render(s.out, templating.ViewResult, result)
}

// Summary asks for one search value per summary field and prints how often
// each occurs.
func (s *Session) Summary() error {
	values := make(map[model.Field]string, len(model.SummaryFields))
	for _, f := range model.SummaryFields {
		value, err := s.prompts.Ask(searchLabels[f], Any)
		if err != nil {
			return err
		}
		values[f] = value
	}
	return RenderSummary(s.views, s.out, s.book, values)
}

// RenderSummary prints the occurrence count for each field in values, in
// model.SummaryFields order.
func RenderSummary(views *templating.Engine, out io.Writer, book *addressbook.Book, values map[model.Field]string) error {
	rows := make([]templating.SummaryRow, 0, len(values))
	for _, f := range model.SummaryFields {
		value, ok := values[f]
		if !ok {
			continue
		}
		rows = append(rows, templating.SummaryRow{
			Field: f,
			Value: value,
			Count: book.CountOccurrences(f, value),
		})
	}
	return views.Render(out, templating.ViewSummary, rows)
}
