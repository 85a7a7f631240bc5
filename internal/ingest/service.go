package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frigiddesert/coffee-bakery-sign/internal/config"
	"github.com/frigiddesert/coffee-bakery-sign/internal/display"
	"github.com/frigiddesert/coffee-bakery-sign/internal/mail"
	"github.com/frigiddesert/coffee-bakery-sign/internal/ocr"
	"github.com/frigiddesert/coffee-bakery-sign/internal/reconcile"
)

// MailSource yields the next gated, image-carrying email, or nil.
type MailSource interface {
	FetchLatest(lastUID uint32) (*mail.Inbound, error)
}

// Archive stores inbound photos; optional.
type Archive interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Service runs the photo-to-bake-list pipeline: OCR, candidate extraction,
// fuzzy reconciliation, state update.
type Service struct {
	displaySvc *display.Service
	repo       display.Repository
	ocr        ocr.Client
	matcher    *reconcile.Matcher
	source     MailSource
	archive    Archive
	cfg        *config.Config
}

func NewService(
	displaySvc *display.Service,
	repo display.Repository,
	ocrClient ocr.Client,
	matcher *reconcile.Matcher,
	source MailSource,
	archive Archive,
	cfg *config.Config,
) *Service {
	return &Service{
		displaySvc: displaySvc,
		repo:       repo,
		ocr:        ocrClient,
		matcher:    matcher,
		source:     source,
		archive:    archive,
		cfg:        cfg,
	}
}

// ProcessImage OCRs a photo, reconciles the text against the menu and stores
// the result as today's bake list.
func (s *Service) ProcessImage(ctx context.Context, image []byte, sourceTag string) (int, error) {
	text, err := s.ocr.ExtractText(ctx, image)
	if err != nil {
		return 0, fmt.Errorf("ocr: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("ocr returned empty text")
	}

	candidates := reconcile.ExtractCandidates(text)
	log.Printf("ingest: %d candidates extracted", len(candidates))

	plan := s.matcher.Match(candidates)
	log.Printf("ingest: %d items resolved", len(plan))

	count, err := s.displaySvc.ApplyBake(ctx, plan, sourceTag)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ProcessOne picks at most one pending email and processes it. Failures are
// logged and swallowed so a bad message never kills the worker or bounces
// the email.
func (s *Service) ProcessOne(ctx context.Context) {
	if err := s.displaySvc.EnsureDailyReset(ctx); err != nil {
		log.Printf("ingest: reset check failed: %v", err)
	}

	ms, err := s.repo.LoadMailState(ctx)
	if err != nil {
		log.Printf("ingest: cannot load mail state: %v", err)
		return
	}

	inbound, err := s.source.FetchLatest(ms.LastUID)
	if err != nil {
		log.Printf("ingest: mail fetch failed: %v", err)
		return
	}
	if inbound == nil {
		return
	}

	log.Printf("ingest: processing email from %s subject %q file %s (%d bytes)",
		inbound.From, inbound.Subject, inbound.Filename, len(inbound.Image))

	s.archivePhoto(ctx, inbound)

	if _, err := s.ProcessImage(ctx, inbound.Image, "Email"); err != nil {
		log.Printf("ingest: pipeline failed for %q: %v", inbound.Subject, err)
	}

	if inbound.UID > ms.LastUID {
		ms.LastUID = inbound.UID
		if err := s.repo.SaveMailState(ctx, ms); err != nil {
			log.Printf("ingest: cannot save mail state: %v", err)
		}
	}
}

func (s *Service) archivePhoto(ctx context.Context, inbound *mail.Inbound) {
	if s.archive == nil {
		return
	}

	contentType := inbound.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf(
		"photos/%s/%s.jpg",
		display.TodayKey(s.cfg.Now()),
		uuid.New().String(),
	)

	url, err := s.archive.Upload(ctx, key, contentType, inbound.Image)
	if err != nil {
		log.Printf("ingest: photo archive failed: %v", err)
		return
	}
	log.Printf("ingest: photo archived at %s", url)
}

// RunMailWorker polls the mailbox until the context is cancelled.
func (s *Service) RunMailWorker(ctx context.Context) {
	interval := time.Duration(max(10, s.cfg.EmailPollSeconds)) * time.Second
	log.Printf("mail worker started (every %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ProcessOne(ctx)
		}
	}
}

// RunResetTicker runs the idempotent daily-reset check once a minute.
func (s *Service) RunResetTicker(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.displaySvc.EnsureDailyReset(ctx); err != nil {
				log.Printf("reset tick failed: %v", err)
			}
		}
	}
}
