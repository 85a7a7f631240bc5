package mail

import (
	"fmt"
	"log"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// inspectLimit bounds how many unseen messages one poll will look at.
const inspectLimit = 10

// Inbound is a gated, image-carrying email ready for OCR.
type Inbound struct {
	UID         uint32
	From        string
	Subject     string
	Filename    string
	ContentType string
	Image       []byte
}

// Fetcher polls one IMAP mailbox for bake-list photos.
type Fetcher struct {
	Addr     string
	User     string
	Password string

	AllowedSenders []string
	SubjectTrigger string
	SubjectPass    string
}

// FetchLatest connects, scans the newest unseen messages (newest first) and
// returns the first one that passes the sender and subject gates and carries
// an image, marking it seen. UIDs at or below lastUID are skipped. Returns
// (nil, nil) when nothing matches.
func (f *Fetcher) FetchLatest(lastUID uint32) (*Inbound, error) {
	if f.User == "" || f.Password == "" {
		return nil, nil
	}

	c, err := client.DialTLS(f.Addr, nil)
	if err != nil {
		return nil, fmt.Errorf("imap dial: %w", err)
	}
	defer c.Logout()

	if err := c.Login(f.User, f.Password); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}
	if _, err := c.Select("INBOX", false); err != nil {
		return nil, fmt.Errorf("imap select: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("imap search: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > inspectLimit {
		ids = ids[len(ids)-inspectLimit:]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope, imap.FetchUid}

	ch := make(chan *imap.Message, inspectLimit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, ch)
	}()

	var fetched []*imap.Message
	for msg := range ch {
		fetched = append(fetched, msg)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	// Newest first.
	for i := len(fetched) - 1; i >= 0; i-- {
		msg := fetched[i]
		if msg.Uid != 0 && msg.Uid <= lastUID {
			continue
		}

		from := ""
		subject := ""
		if msg.Envelope != nil {
			subject = msg.Envelope.Subject
			if len(msg.Envelope.From) > 0 {
				from = msg.Envelope.From[0].Address()
			}
		}

		if !SenderAllowed(from, f.AllowedSenders) {
			log.Printf("mail: sender not allowed: %s", from)
			continue
		}
		if !SubjectMatches(subject, f.SubjectTrigger, f.SubjectPass) {
			log.Printf("mail: subject does not match gates: %s", subject)
			continue
		}

		body := msg.GetBody(section)
		if body == nil {
			continue
		}

		att, err := ExtractFirstImage(body)
		if err != nil {
			log.Printf("mail: cannot parse message %d: %v", msg.SeqNum, err)
			continue
		}
		if att == nil {
			log.Printf("mail: no image attachment in: %s", subject)
			continue
		}

		f.markSeen(c, msg.SeqNum)

		return &Inbound{
			UID:         msg.Uid,
			From:        from,
			Subject:     subject,
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Image:       att.Data,
		}, nil
	}

	return nil, nil
}

func (f *Fetcher) markSeen(c *client.Client, seqNum uint32) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNum)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := c.Store(seqset, item, []interface{}{imap.SeenFlag}, nil); err != nil {
		log.Printf("mail: cannot mark message %d seen: %v", seqNum, err)
	}
}
