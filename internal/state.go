package internal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/mailtemplated/pkg/logger"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// messageState is the serialized form of a Message.
// Collaborators (template, provider, sender, logger) are not part of it.
type messageState struct {
	ID           string         `json:"id"`
	TemplateName string         `json:"template_name,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
	Format       section.Format `json:"format"`
	Email        mailer.Email   `json:"email"`
	Rendered     bool           `json:"rendered"`
	Cleaned      bool           `json:"cleaned"`
	PromotedHTML string         `json:"promoted_html,omitempty"`
	RenderedAlt  *int           `json:"rendered_alt,omitempty"`
}

// MarshalJSON encodes the message without its collaborators.
// The template is resolved again by name on the next render.
func (m *Message) MarshalJSON() ([]byte, error) {
	st := messageState{
		ID:           m.ID,
		TemplateName: m.TemplateName,
		Context:      m.Context,
		Format:       m.format,
		Email:        m.Email,
		Rendered:     m.rendered,
		Cleaned:      m.cleaned,
		PromotedHTML: m.promotedHTML,
	}
	if m.renderedAlt >= 0 {
		idx := m.renderedAlt
		st.RenderedAlt = &idx
	}
	return json.Marshal(st)
}

// UnmarshalJSON restores the message state. Provider, sender and logger
// already set on the receiver are kept; the loaded template is dropped.
func (m *Message) UnmarshalJSON(data []byte) error {
	var st messageState
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.Join(ErrInvalidState, err)
	}

	if st.Format == (section.Format{}) {
		st.Format = section.Default()
	}
	if _, err := section.For(st.Format); err != nil {
		return errors.Join(ErrInvalidState, err)
	}

	renderedAlt := -1
	if st.RenderedAlt != nil {
		if *st.RenderedAlt < 0 || *st.RenderedAlt >= len(st.Email.Alternatives) {
			return fmt.Errorf("%w: rendered alternative %d out of range", ErrInvalidState, *st.RenderedAlt)
		}
		renderedAlt = *st.RenderedAlt
	}

	m.Email = st.Email
	m.ID = st.ID
	m.TemplateName = st.TemplateName
	m.Context = st.Context
	m.format = st.Format
	m.rendered = st.Rendered
	m.cleaned = st.Cleaned
	m.promotedHTML = st.PromotedHTML
	m.renderedAlt = renderedAlt
	m.template = nil
	if m.logger == nil {
		m.logger = logger.NewNope()
	}
	return nil
}

// Restore decodes a message produced by MarshalJSON and binds the
// collaborators given as options. Field options override restored values.
func Restore(data []byte, opts ...Option) (*Message, error) {
	m := &Message{logger: logger.NewNope(), renderedAlt: -1}
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	c := &config{msg: m}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	if _, err := section.For(m.format); err != nil {
		return nil, err
	}

	if c.render || c.clean {
		if err := m.Render(); err != nil {
			return nil, err
		}
	}
	if c.clean {
		m.Clean()
	}
	return m, nil
}
