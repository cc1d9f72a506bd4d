package writeup

import "context"

// Opener hands a URI to the operating system or the application that
// handles its scheme.
type Opener interface {
	Open(ctx context.Context, uri string) error
}

// ContentPresenter makes note content available for manual copying when it
// is too long to travel inside a URI.
type ContentPresenter interface {
	Present(ctx context.Context, note *Note) error
}

// PublishResult describes how a note was handed to the application.
type PublishResult struct {
	// URI is the URI that was opened.
	URI string

	// Truncated is true when the content did not fit in the URI and was
	// handed to the ContentPresenter instead.
	Truncated bool
}

// Publisher opens notes in the note-taking application.
type Publisher struct {
	// Primary is tried first; Secondary, if set, when Primary fails.
	Primary   Opener
	Secondary Opener

	// Presenter receives notes whose URI exceeds MaxURILength.
	Presenter ContentPresenter

	// MaxURILength defaults to DefaultMaxURILength.
	MaxURILength int
}

// Publish opens note. When the full URI is longer than MaxURILength an
// empty file is created through the short URI and the content goes to the
// Presenter; the Presenter is called even if opening the short URI fails.
// Returns EUNAVAILABLE if no opener succeeded.
func (p *Publisher) Publish(ctx context.Context, note *Note) (PublishResult, error) {
	if note == nil {
		return PublishResult{}, Errorf(EINVALID, "note required")
	}

	uri := note.URI()
	if len(uri) <= p.maxURILength() {
		return PublishResult{URI: uri}, p.open(ctx, uri)
	}

	short := note.ShortURI()
	result := PublishResult{URI: short, Truncated: true}
	openErr := p.open(ctx, short)
	if p.Presenter != nil {
		if err := p.Presenter.Present(ctx, note); err != nil {
			return result, err
		}
	}
	return result, openErr
}

func (p *Publisher) maxURILength() int {
	if p.MaxURILength <= 0 {
		return DefaultMaxURILength
	}
	return p.MaxURILength
}

func (p *Publisher) open(ctx context.Context, uri string) error {
	if p.Primary == nil {
		return Errorf(EUNAVAILABLE, "no opener configured")
	}
	err := p.Primary.Open(ctx, uri)
	if err == nil {
		return nil
	}
	if p.Secondary != nil {
		if err = p.Secondary.Open(ctx, uri); err == nil {
			return nil
		}
	}
	return Errorf(EUNAVAILABLE, "unable to open note application: %v", err)
}
