package mail

import (
	"errors"
	"io"
	"strings"

	gomessage "github.com/emersion/go-message"
	gomail "github.com/emersion/go-message/mail"
)

// Attachment is the first image part found in a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExtractFirstImage walks the MIME parts of a raw message and returns the
// first image/* part, inline or attached. Returns nil when the message
// carries no image.
func ExtractFirstImage(raw io.Reader) (*Attachment, error) {
	mr, err := gomail.CreateReader(raw)
	if err != nil {
		// Unknown charsets and similar soft errors still yield a reader.
		if mr == nil || !gomessage.IsUnknownCharset(err) {
			return nil, err
		}
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var ctype, filename string
		switch h := part.Header.(type) {
		case *gomail.AttachmentHeader:
			ctype, _, _ = h.ContentType()
			filename, _ = h.Filename()
		case *gomail.InlineHeader:
			ctype, _, _ = h.ContentType()
		}
		if !strings.HasPrefix(ctype, "image/") {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}

		return &Attachment{
			Filename:    filename,
			ContentType: ctype,
			Data:        data,
		}, nil
	}

	return nil, nil
}
